package domain

import "testing"

func TestParseScope(t *testing.T) {
	tests := []struct {
		in      string
		want    Scope
		wantErr bool
	}{
		{in: "", want: ScopeCompile},
		{in: "compile", want: ScopeCompile},
		{in: "implementation", want: ScopeCompile},
		{in: "RuntimeOnly", want: ScopeRuntime},
		{in: "runtime", want: ScopeRuntime},
		{in: "platform", want: ScopePlatform},
		{in: "bom", want: ScopePlatform},
		{in: "test", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseScope(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseScope(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseScope(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestScopeMerge(t *testing.T) {
	if got := ScopeRuntime.Merge(ScopeCompile); got != ScopeCompile {
		t.Errorf("runtime.Merge(compile) = %s, want compile", got)
	}
	if got := ScopeCompile.Merge(ScopeRuntime); got != ScopeCompile {
		t.Errorf("compile.Merge(runtime) = %s, want compile", got)
	}
	if got := ScopeRuntime.Merge(ScopeRuntime); got != ScopeRuntime {
		t.Errorf("runtime.Merge(runtime) = %s, want runtime", got)
	}
}

func TestScopeValidate(t *testing.T) {
	if err := Scope("provided").Validate(); err == nil {
		t.Error("unknown scope should fail validation")
	}
	if err := ScopePlatform.Validate(); err != nil {
		t.Errorf("platform scope should validate: %v", err)
	}
}
