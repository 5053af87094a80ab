package plugin

import "github.com/felixgeelhaar/buildplan/internal/domain"

// Task IDs shared between plugin kinds and the assembler's core tasks.
const (
	TaskPrepare             = "prepare"
	TaskResolveDependencies = "resolve-dependencies"
	TaskAssemble            = "assemble"

	TaskGenerateManifest      = "generate-manifest"
	TaskCompileJava           = "compile-java"
	TaskCompileKotlin         = "compile-kotlin"
	TaskDex                   = "dex"
	TaskMinifyRelease         = "minify-release"
	TaskSignRelease           = "sign-release"
	TaskPackageRelease        = "package-release"
	TaskProcessGoogleServices = "process-google-services"
	TaskFlutterBuild          = "flutter-build"
)

// AndroidApplication is com.android.application.
type AndroidApplication struct{}

func (AndroidApplication) ID() string { return "android-application" }

func (AndroidApplication) Coordinates() []string { return []string{"com.android.application"} }

func (AndroidApplication) Requires() []string { return nil }

func (AndroidApplication) RequiredSettings() []string {
	return []string{"namespace", "applicationId", "compileSdk", "minSdk", "targetSdk", "versionCode", "versionName"}
}

// Tasks follows the release build type: minification and signing are only
// planned when their settings ask for them.
func (AndroidApplication) Tasks(s Settings) []TaskTemplate {
	compileSettings := []string{"compileSdk"}
	if s.Has("javaVersion") {
		compileSettings = append(compileSettings, "javaVersion")
	}
	dexSettings := []string{"minSdk"}
	if s.Has("multiDexEnabled") {
		dexSettings = append(dexSettings, "multiDexEnabled")
	}

	tasks := []TaskTemplate{
		{
			ID:        TaskGenerateManifest,
			DependsOn: []string{TaskPrepare},
			Action:    "manifest",
			Settings:  []string{"namespace", "applicationId", "minSdk", "targetSdk", "versionCode", "versionName"},
		},
		{
			ID:        TaskCompileJava,
			DependsOn: []string{TaskGenerateManifest, TaskResolveDependencies},
			Action:    "compile",
			Settings:  compileSettings,
			Consumes:  []domain.Scope{domain.ScopeCompile},
		},
		{
			ID:        TaskDex,
			DependsOn: []string{TaskCompileJava},
			Action:    "dex",
			Settings:  dexSettings,
		},
	}

	last := TaskDex
	if s.Bool("minifyEnabled") {
		settings := []string{"minifyEnabled"}
		if s.Has("proguardFiles") {
			settings = append(settings, "proguardFiles")
		}
		tasks = append(tasks, TaskTemplate{
			ID:        TaskMinifyRelease,
			DependsOn: []string{last},
			Action:    "minify",
			Settings:  settings,
		})
		last = TaskMinifyRelease
	}

	packageDeps := []string{last}
	if s.Has("signingConfig") {
		tasks = append(tasks, TaskTemplate{
			ID:        TaskSignRelease,
			DependsOn: []string{last},
			Action:    "sign",
			Settings:  []string{"signingConfig"},
		})
		packageDeps = []string{TaskSignRelease}
	}

	tasks = append(tasks, TaskTemplate{
		ID:        TaskPackageRelease,
		DependsOn: packageDeps,
		Action:    "package",
		Settings:  []string{"applicationId", "versionName", "versionCode"},
		Consumes:  []domain.Scope{domain.ScopeCompile, domain.ScopeRuntime},
	})
	return tasks
}

func (AndroidApplication) sealed() {}

// KotlinAndroid is org.jetbrains.kotlin.android.
type KotlinAndroid struct{}

func (KotlinAndroid) ID() string { return "kotlin-android" }

func (KotlinAndroid) Coordinates() []string {
	return []string{"org.jetbrains.kotlin.android", "kotlin-android"}
}

func (KotlinAndroid) Requires() []string { return []string{"android-application"} }

func (KotlinAndroid) RequiredSettings() []string { return []string{"jvmTarget"} }

func (KotlinAndroid) Tasks(Settings) []TaskTemplate {
	return []TaskTemplate{{
		ID:        TaskCompileKotlin,
		DependsOn: []string{TaskGenerateManifest, TaskResolveDependencies},
		Before:    []string{TaskCompileJava},
		Action:    "compile",
		Settings:  []string{"jvmTarget"},
		Consumes:  []domain.Scope{domain.ScopeCompile},
	}}
}

func (KotlinAndroid) sealed() {}

// GoogleServices is com.google.gms.google-services.
type GoogleServices struct{}

func (GoogleServices) ID() string { return "google-services" }

func (GoogleServices) Coordinates() []string { return []string{"com.google.gms.google-services"} }

func (GoogleServices) Requires() []string { return []string{"android-application"} }

func (GoogleServices) RequiredSettings() []string { return []string{"applicationId"} }

func (GoogleServices) Tasks(Settings) []TaskTemplate {
	return []TaskTemplate{{
		ID:        TaskProcessGoogleServices,
		DependsOn: []string{TaskPrepare},
		Before:    []string{TaskGenerateManifest},
		Action:    "generate-resources",
		Settings:  []string{"applicationId"},
	}}
}

func (GoogleServices) sealed() {}

// Flutter is dev.flutter.flutter-gradle-plugin.
type Flutter struct{}

func (Flutter) ID() string { return "flutter" }

func (Flutter) Coordinates() []string { return []string{"dev.flutter.flutter-gradle-plugin"} }

func (Flutter) Requires() []string { return []string{"android-application"} }

func (Flutter) RequiredSettings() []string { return []string{"flutterSource"} }

func (Flutter) Tasks(Settings) []TaskTemplate {
	return []TaskTemplate{{
		ID:        TaskFlutterBuild,
		DependsOn: []string{TaskPrepare, TaskResolveDependencies},
		Before:    []string{TaskPackageRelease},
		Action:    "flutter-build",
		Settings:  []string{"flutterSource", "versionName"},
	}}
}

func (Flutter) sealed() {}
