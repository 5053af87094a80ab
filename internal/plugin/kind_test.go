package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	builderrors "github.com/felixgeelhaar/buildplan/internal/errors"
)

type fakeSettings map[string]any

func (f fakeSettings) Has(name string) bool {
	_, ok := f[name]
	return ok
}

func (f fakeSettings) Bool(name string) bool {
	b, _ := f[name].(bool)
	return b
}

func TestParse(t *testing.T) {
	tests := []struct {
		declaration string
		want        string
	}{
		{"android-application", "android-application"},
		{"com.android.application", "android-application"},
		{"org.jetbrains.kotlin.android", "kotlin-android"},
		{"kotlin-android", "kotlin-android"},
		{" com.google.gms.google-services ", "google-services"},
		{"dev.flutter.flutter-gradle-plugin", "flutter"},
	}

	for _, tt := range tests {
		t.Run(tt.declaration, func(t *testing.T) {
			k, err := Parse(tt.declaration)
			require.NoError(t, err)
			assert.Equal(t, tt.want, k.ID())
		})
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("com.example.custom")
	require.ErrorIs(t, err, builderrors.ErrUnknownPlugin)
	assert.Contains(t, err.Error(), "com.example.custom")
}

func TestParseListCanonicalOrderAndDedup(t *testing.T) {
	kinds, err := ParseList([]string{
		"dev.flutter.flutter-gradle-plugin",
		"com.android.application",
		"",
		"android-application",
		"org.jetbrains.kotlin.android",
	})
	require.NoError(t, err)

	ids := make([]string, 0, len(kinds))
	for _, k := range kinds {
		ids = append(ids, k.ID())
	}
	assert.Equal(t, []string{"android-application", "kotlin-android", "flutter"}, ids)
}

func TestParseListMissingRequirement(t *testing.T) {
	_, err := ParseList([]string{"flutter"})
	require.ErrorIs(t, err, builderrors.ErrPluginRequirement)
	assert.Contains(t, err.Error(), `"android-application"`)
}

func TestAndroidApplicationTasks(t *testing.T) {
	t.Run("debug-like settings", func(t *testing.T) {
		tasks := AndroidApplication{}.Tasks(fakeSettings{})
		ids := templateIDs(tasks)
		assert.Equal(t, []string{TaskGenerateManifest, TaskCompileJava, TaskDex, TaskPackageRelease}, ids)
		assert.Equal(t, []string{TaskDex}, tasks[3].DependsOn)
	})

	t.Run("minified and signed release", func(t *testing.T) {
		tasks := AndroidApplication{}.Tasks(fakeSettings{
			"minifyEnabled": true,
			"proguardFiles": "proguard-rules.pro",
			"signingConfig": "debug",
		})
		ids := templateIDs(tasks)
		assert.Equal(t, []string{
			TaskGenerateManifest, TaskCompileJava, TaskDex, TaskMinifyRelease, TaskSignRelease, TaskPackageRelease,
		}, ids)
		assert.Equal(t, []string{TaskDex}, tasks[3].DependsOn)
		assert.Equal(t, []string{"minifyEnabled", "proguardFiles"}, tasks[3].Settings)
		assert.Equal(t, []string{TaskMinifyRelease}, tasks[4].DependsOn)
		assert.Equal(t, []string{TaskSignRelease}, tasks[5].DependsOn)
	})

	t.Run("minify disabled", func(t *testing.T) {
		tasks := AndroidApplication{}.Tasks(fakeSettings{"minifyEnabled": false})
		assert.NotContains(t, templateIDs(tasks), TaskMinifyRelease)
	})
}

func TestKnownIsClosedSet(t *testing.T) {
	assert.Equal(t, []string{"android-application", "kotlin-android", "google-services", "flutter"}, KnownIDs())

	// mutating the returned slice must not change the set
	k := Known()
	k[0] = Flutter{}
	assert.Equal(t, "android-application", Known()[0].ID())
}

func templateIDs(tasks []TaskTemplate) []string {
	ids := make([]string, 0, len(tasks))
	for _, tt := range tasks {
		ids = append(ids, tt.ID)
	}
	return ids
}
