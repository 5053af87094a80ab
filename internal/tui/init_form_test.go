package tui

import (
	"strings"
	"testing"

	"github.com/felixgeelhaar/buildplan/internal/config"
	"github.com/felixgeelhaar/buildplan/internal/fileformat"
)

func TestDefaultInitAnswersLoad(t *testing.T) {
	a := DefaultInitAnswers()
	a.Plugins = append(a.Plugins, "org.jetbrains.kotlin.android")

	data := a.Properties()
	raw, err := config.Parse("build-plan.properties", fileformat.KeyValue, data)
	if err != nil {
		t.Fatalf("Parse() error = %v\n%s", err, data)
	}
	cfg, err := config.Load(raw, config.DefaultSchema())
	if err != nil {
		t.Fatalf("Load() error = %v\n%s", err, data)
	}

	if got, _ := cfg.Int("minSdk"); got != 24 {
		t.Errorf("minSdk = %d, want 24", got)
	}
	if got := cfg.String("jvmTarget"); got != "17" {
		t.Errorf("jvmTarget = %q, want 17", got)
	}
}

func TestPropertiesOmitsUnusedPluginSettings(t *testing.T) {
	data := string(DefaultInitAnswers().Properties())

	if strings.Contains(data, "jvmTarget") {
		t.Errorf("jvmTarget written without the Kotlin plugin:\n%s", data)
	}
	if strings.Contains(data, "flutterSource") {
		t.Errorf("flutterSource written without the Flutter plugin:\n%s", data)
	}
	if !strings.Contains(data, "plugins = com.android.application\n") {
		t.Errorf("plugins line missing:\n%s", data)
	}
}

func TestInitValidators(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"package ok", validatePackage("com.example.app"), false},
		{"package empty", validatePackage(" "), true},
		{"package invalid", validatePackage("com example"), true},
		{"int ok", positiveInt("34"), false},
		{"int zero", positiveInt("0"), true},
		{"int text", positiveInt("thirty"), true},
		{"plugins ok", validatePlugins([]string{"com.android.application", "kotlin-android"}), false},
		{"plugins empty", validatePlugins(nil), true},
		{"plugins missing requirement", validatePlugins([]string{"kotlin-android"}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", tt.err, tt.wantErr)
			}
		})
	}
}

func TestNewInitForm(t *testing.T) {
	if NewInitForm(DefaultInitAnswers()) == nil {
		t.Fatal("NewInitForm() returned nil")
	}
}
