package resolve

import (
	"context"
	"fmt"
	"testing"

	"github.com/Masterminds/semver/v3"
	"pgregory.net/rapid"

	"github.com/felixgeelhaar/buildplan/internal/domain"
)

func genVersion() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		return fmt.Sprintf("%d.%d.%d",
			rapid.IntRange(0, 3).Draw(t, "major"),
			rapid.IntRange(0, 5).Draw(t, "minor"),
			rapid.IntRange(0, 5).Draw(t, "patch"))
	})
}

func genConstraint() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		op := rapid.SampledFrom([]string{"", "^", "~", ">=", "<"}).Draw(t, "op")
		return op + genVersion().Draw(t, "version")
	})
}

// TestResolveProperties checks that the selection is deterministic,
// satisfies every constraint and is the highest such candidate.
func TestResolveProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := domain.LibraryName("com.example:lib")
		listed := rapid.SliceOfNDistinct(genVersion(), 1, 12, rapid.ID[string]).Draw(t, "listed")
		constraints := rapid.SliceOfN(genConstraint(), 1, 3).Draw(t, "constraints")

		repo := NewStaticRepository(map[domain.LibraryName][]string{name: listed})
		specs := make([]DependencySpec, 0, len(constraints))
		for _, c := range constraints {
			specs = append(specs, DependencySpec{Name: name, Constraint: c})
		}

		first, err1 := Resolve(context.Background(), repo, specs)
		second, err2 := Resolve(context.Background(), repo, specs)
		if (err1 == nil) != (err2 == nil) {
			t.Fatalf("non-deterministic outcome: %v vs %v", err1, err2)
		}

		var best *semver.Version
		for _, s := range listed {
			v := semver.MustParse(s)
			ok, err := Satisfies(s, constraints)
			if err != nil {
				t.Fatalf("Satisfies(%s): %v", s, err)
			}
			if ok && (best == nil || v.GreaterThan(best)) {
				best = v
			}
		}

		if err1 != nil {
			if best != nil {
				t.Fatalf("resolution failed but %s satisfies %v: %v", best, constraints, err1)
			}
			return
		}
		if first[0].Version != second[0].Version {
			t.Fatalf("non-deterministic selection: %s vs %s", first[0].Version, second[0].Version)
		}
		if best == nil || first[0].Version != best.Original() {
			t.Fatalf("selected %s, want highest satisfying %v", first[0].Version, best)
		}
	})
}
