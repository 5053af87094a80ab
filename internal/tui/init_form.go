package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/felixgeelhaar/buildplan/internal/domain"
	"github.com/felixgeelhaar/buildplan/internal/plugin"
)

// InitAnswers are the settings collected for a new build settings file.
// Numbers are kept as entered and checked by the form.
type InitAnswers struct {
	Plugins       []string
	Namespace     string
	ApplicationID string
	CompileSdk    string
	MinSdk        string
	TargetSdk     string
	VersionCode   string
	VersionName   string
	JvmTarget     string
	FlutterSource string
}

// DefaultInitAnswers returns the answers used when no questions are asked
func DefaultInitAnswers() *InitAnswers {
	return &InitAnswers{
		Plugins:       []string{"com.android.application"},
		Namespace:     "com.example.app",
		ApplicationID: "com.example.app",
		CompileSdk:    "34",
		MinSdk:        "24",
		TargetSdk:     "34",
		VersionCode:   "1",
		VersionName:   "1.0.0",
		JvmTarget:     "17",
	}
}

// NewInitForm builds the questions for a in place. Questions for plugin
// specific settings are hidden until the plugin is picked.
func NewInitForm(a *InitAnswers) *huh.Form {
	var options []huh.Option[string]
	for _, k := range plugin.Known() {
		coord := k.Coordinates()[0]
		options = append(options, huh.NewOption(coord, coord))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Plugins").
				Description("Space to toggle, enter to continue").
				Options(options...).
				Value(&a.Plugins).
				Validate(validatePlugins),
		),
		huh.NewGroup(
			huh.NewInput().Title("Namespace").Value(&a.Namespace).Validate(validatePackage),
			huh.NewInput().Title("Application ID").Value(&a.ApplicationID).Validate(validatePackage),
			huh.NewInput().Title("Version name").Value(&a.VersionName).Validate(required),
			huh.NewInput().Title("Version code").Value(&a.VersionCode).Validate(positiveInt),
		).Title("Application"),
		huh.NewGroup(
			huh.NewInput().Title("compileSdk").Value(&a.CompileSdk).Validate(positiveInt),
			huh.NewInput().Title("minSdk").Value(&a.MinSdk).Validate(positiveInt),
			huh.NewInput().Title("targetSdk").Value(&a.TargetSdk).Validate(positiveInt),
		).Title("SDK levels"),
		huh.NewGroup(
			huh.NewInput().Title("Kotlin JVM target").Value(&a.JvmTarget).Validate(required),
		).WithHideFunc(func() bool { return !a.uses("kotlin-android") }),
		huh.NewGroup(
			huh.NewInput().Title("Flutter source directory").Value(&a.FlutterSource).Validate(required),
		).WithHideFunc(func() bool { return !a.uses("flutter") }),
	)
}

// RunInit asks the init questions in the terminal
func RunInit(a *InitAnswers) error {
	if err := NewInitForm(a).Run(); err != nil {
		return fmt.Errorf("run init form: %w", err)
	}
	return nil
}

func (a *InitAnswers) uses(kindID string) bool {
	for _, decl := range a.Plugins {
		if k, err := plugin.Parse(decl); err == nil && k.ID() == kindID {
			return true
		}
	}
	return false
}

// Properties renders the answers as a key/value settings file
func (a *InitAnswers) Properties() []byte {
	values := map[string]string{
		"plugins":       strings.Join(a.Plugins, ", "),
		"namespace":     a.Namespace,
		"applicationId": a.ApplicationID,
		"compileSdk":    a.CompileSdk,
		"minSdk":        a.MinSdk,
		"targetSdk":     a.TargetSdk,
		"versionCode":   a.VersionCode,
		"versionName":   a.VersionName,
	}
	if a.uses("kotlin-android") {
		values["jvmTarget"] = a.JvmTarget
		values["javaVersion"] = a.JvmTarget
	}
	if a.uses("flutter") {
		values["flutterSource"] = a.FlutterSource
	}

	keys := make([]string, 0, len(values))
	for k, v := range values {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("# build-plan settings\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "%s = %s\n", k, values[k])
	}
	return []byte(b.String())
}

func validatePlugins(decls []string) error {
	if len(decls) == 0 {
		return fmt.Errorf("pick at least one plugin")
	}
	_, err := plugin.ParseList(decls)
	return err
}

func validatePackage(s string) error {
	if err := required(s); err != nil {
		return err
	}
	// a package name is a valid coordinate group
	if _, err := domain.NewLibraryName(s + ":x"); err != nil {
		return fmt.Errorf("%q is not a valid package name", s)
	}
	return nil
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("this field is required")
	}
	return nil
}
