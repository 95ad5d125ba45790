package normalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/preston-bernstein/cfp-rankings-service/internal/domain/season"
)

func TestLookupPrefersFirstPresentKey(t *testing.T) {
	f := Field{Name: "team", Keys: []string{"team", "name", "school"}, Default: "?"}
	cases := []struct {
		name string
		in   Entity
		want any
	}{
		{name: "first key", in: Entity{"team": "A", "name": "B"}, want: "A"},
		{name: "alternate key", in: Entity{"school": "C"}, want: "C"},
		{name: "null skipped", in: Entity{"team": nil, "name": "B"}, want: "B"},
		{name: "blank skipped", in: Entity{"team": "  ", "name": "B"}, want: "B"},
		{name: "default", in: Entity{}, want: "?"},
		{name: "nil entity", in: nil, want: "?"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Lookup(tc.in, f); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestTextFormatsNumbers(t *testing.T) {
	if got := Text(Entity{"pf": 410.0}, FieldPointsFor); got != "410" {
		t.Fatalf("expected integer text, got %q", got)
	}
	if got := Text(Entity{"pf": 4.5}, FieldPointsFor); got != "4.5" {
		t.Fatalf("expected decimal text, got %q", got)
	}
	if got := Text(Entity{}, FieldRecord); got != season.Placeholder {
		t.Fatalf("expected placeholder default, got %q", got)
	}
	if got := Text(Entity{"record": map[string]any{}}, FieldRecord); got != season.Placeholder {
		t.Fatalf("expected placeholder for non-text value, got %q", got)
	}
}

func TestIntParsesDecoratedText(t *testing.T) {
	cases := []struct {
		in   any
		want *int
	}{
		{in: 7.0, want: intPtr(7)},
		{in: "#12", want: intPtr(12)},
		{in: "+2", want: intPtr(2)},
		{in: "▲3", want: intPtr(3)},
		{in: "↓4", want: intPtr(-4)},
		{in: "n/a", want: nil},
		{in: true, want: nil},
	}
	for _, tc := range cases {
		got := OptionalInt(Entity{"delta": tc.in}, FieldDelta)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("%v: mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
	if got := Int(Entity{}, FieldSeed); got != 0 {
		t.Fatalf("expected zero default seed, got %d", got)
	}
}

func TestBoolAcceptsTextForms(t *testing.T) {
	for _, v := range []any{true, 1.0, "yes", "TRUE", "1"} {
		if !Bool(Entity{"conference_game": v}, FieldConfGame) {
			t.Fatalf("expected %v to be true", v)
		}
	}
	for _, v := range []any{false, 0.0, "no"} {
		if Bool(Entity{"conference_game": v}, FieldConfGame) {
			t.Fatalf("expected %v to be false", v)
		}
	}
}

func TestObjectsAndStrings(t *testing.T) {
	in := Entity{
		"rankings":     []any{map[string]any{"seed": 1.0}, "junk", map[string]any{"seed": 2.0}},
		"notable_wins": []any{"Texas", map[string]any{"team": "Penn State"}, 3.0, ""},
		"risks":        "Thin depth",
	}
	if got := Objects(in, FieldRankings); len(got) != 2 {
		t.Fatalf("expected non-objects skipped, got %d", len(got))
	}
	if diff := cmp.Diff([]string{"Texas", "Penn State", "3"}, Strings(in, FieldNotableWins)); diff != "" {
		t.Fatalf("strings mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Thin depth"}, Strings(in, FieldRiskFactors)); diff != "" {
		t.Fatalf("single string mismatch (-want +got):\n%s", diff)
	}
	if Object(in, FieldMeta) != nil {
		t.Fatalf("expected nil object when absent")
	}
}
