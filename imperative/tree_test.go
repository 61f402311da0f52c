package imperative

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nstehr/quartermaster/munitions"
)

func TestRetrieveWildcardFallback(t *testing.T) {
	tr := New()
	tr.Insert([]string{"Atlas", "any", "any"}, map[string]string{"AC/20": "Standard"})
	tr.Insert([]string{"any", "any", "any"}, map[string]string{"LRM": "Standard:Swarm"})

	tests := []struct {
		name string
		keys []string
		bin  string
		want []string
	}{
		{"exact chassis, wildcard model", []string{"Atlas", "AS7-D", "Hanse"}, "AC/20", []string{"Standard"}},
		{"unknown chassis", []string{"Catapult", "CPLT-C1", "any"}, "LRM-15", []string{"Standard", "Swarm"}},
		{"case-insensitive", []string{"ATLAS", "x", "y"}, "ac/20", []string{"Standard"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tr.Retrieve(tt.keys...)
			if n == nil {
				t.Fatal("Retrieve returned nil")
			}
			if got := n.PriorityListFor(tt.bin); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PriorityListFor(%q) = %v, want %v", tt.bin, got, tt.want)
			}
		})
	}
}

func TestRetrieveNoMatch(t *testing.T) {
	tr := New()
	tr.Insert([]string{"Atlas", "AS7-D", "any"}, map[string]string{"AC/20": "Standard"})
	if n := tr.Retrieve("Locust", "LCT-1V", "any"); n != nil {
		t.Error("expected nil without exact or wildcard child")
	}
}

func TestRetrieveBacktracksPastSiblingVariant(t *testing.T) {
	tr := New()
	tr.Insert([]string{"any", "any", "any"}, map[string]string{"LRM-15": "Fragmentation"})
	tr.Insert([]string{"Archer", "ARC-2R", "Kell"}, map[string]string{"LRM-15": "Artemis-capable"})

	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"overridden unit", []string{"Archer", "ARC-2R", "Kell"}, "Artemis-capable"},
		{"same variant, other pilot", []string{"Archer", "ARC-2R", "Steiner"}, "Fragmentation"},
		{"other variant", []string{"Archer", "ARC-2K", "any"}, "Fragmentation"},
		{"other chassis", []string{"Catapult", "CPLT-C1", "any"}, "Fragmentation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tr.Retrieve(tt.keys...)
			if n == nil {
				t.Fatal("Retrieve returned nil")
			}
			if got := n.PriorityListFor("LRM-15"); len(got) != 1 || got[0] != tt.want {
				t.Errorf("PriorityListFor = %v, want [%s]", got, tt.want)
			}
		})
	}
}

func TestCountsForDecodesOnce(t *testing.T) {
	tr := New()
	tr.Insert([]string{"any"}, map[string]string{"LRM-15": "A:A:B"})
	n := tr.Retrieve("whatever")

	first := n.CountsFor("LRM-15")
	want := map[string]int{"A": 2, "B": 1}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("CountsFor = %v, want %v", first, want)
	}
	// Mutating the cached map proves the second call returns the memoized value.
	first["marker"] = 1
	if second := n.CountsFor("LRM-15"); second["marker"] != 1 {
		t.Error("second query re-parsed instead of using the cache")
	}
}

func TestInsertInvalidatesCounts(t *testing.T) {
	tr := New()
	tr.Insert(nil, map[string]string{"SRM": "Inferno"})
	root := tr.Retrieve()
	_ = root.CountsFor("SRM")
	tr.Insert(nil, map[string]string{"SRM": "Standard:Standard"})
	if got := root.CountsFor("SRM"); got["Standard"] != 2 || got["Inferno"] != 0 {
		t.Errorf("CountsFor after rewrite = %v", got)
	}
}

func TestBinTypeCandidates(t *testing.T) {
	tr := New()
	tr.Insert(nil, map[string]string{"AC": "Precision", "LRM": "Standard", "AC/5": "Caseless"})
	root := tr.Retrieve()

	tests := []struct {
		bin  string
		want []string
	}{
		{"AC/5", []string{"Caseless"}},
		{"AC/20", []string{"Precision"}},
		{"L-AC/2", []string{"Precision"}},
		{"LAC/5", []string{"Precision"}},
		{"LRM-20", []string{"Standard"}},
		{"Narc", nil},
	}
	for _, tt := range tests {
		if got := root.PriorityListFor(tt.bin); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("PriorityListFor(%q) = %v, want %v", tt.bin, got, tt.want)
		}
	}
	if got := root.CountsFor("Narc"); len(got) != 0 {
		t.Errorf("unmatched bin type should yield empty counts, got %v", got)
	}
}

func TestMalformedTokensIgnored(t *testing.T) {
	tr := New()
	tr.Insert(nil, map[string]string{"SRM": "Inferno::Standard:"})
	root := tr.Retrieve()
	if got := root.CountsFor("SRM"); !reflect.DeepEqual(got, map[string]int{"Inferno": 1, "Standard": 1}) {
		t.Errorf("CountsFor = %v", got)
	}
	if got := root.PriorityListFor("SRM"); len(got) != 2 {
		t.Errorf("PriorityListFor = %v", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tr := New()
	tr.Insert([]string{"any", "any", "any"}, map[string]string{"LRM": "Standard"})
	c := tr.Clone()
	c.Insert([]string{"any", "any", "any"}, map[string]string{"LRM": "Swarm"})
	c.Insert([]string{"Atlas"}, map[string]string{"AC": "Standard"})

	if got := tr.Retrieve("x", "y", "z").PriorityListFor("LRM"); got[0] != "Standard" {
		t.Errorf("original mutated through clone: %v", got)
	}
	if tr.Len() == c.Len() {
		t.Error("clone insert should not grow the original arena")
	}
}

func TestStripSize(t *testing.T) {
	for in, want := range map[string]string{
		"ac/20":        "ac",
		"lrm-15":       "lrm",
		"mek mortar 4": "mek mortar",
		"narc":         "narc",
	} {
		if got := StripSize(in); got != want {
			t.Errorf("StripSize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadPresets(t *testing.T) {
	doc := `
presets:
  - chassis: Catapult
    model: CPLT-C1
    imperatives:
      LRM-15: "Swarm:Swarm:Thunder"
  - imperatives:
      SRM: "Inferno"
`
	tr := New()
	n, err := tr.LoadPresets(strings.NewReader(doc), munitions.DefaultCatalog())
	if err != nil {
		t.Fatalf("LoadPresets: %v", err)
	}
	if n != 2 {
		t.Errorf("loaded %d presets, want 2", n)
	}
	got := tr.Retrieve("Catapult", "CPLT-C1", "Bob").CountsFor("LRM-15")
	if got["Swarm"] != 2 || got["Thunder"] != 1 {
		t.Errorf("Catapult counts = %v", got)
	}
	if got := tr.Retrieve("Hunchback", "HBK-4G", "any").PriorityListFor("SRM-6"); len(got) != 1 || got[0] != "Inferno" {
		t.Errorf("wildcard preset = %v", got)
	}
}

func TestLoadPresetLines(t *testing.T) {
	src := `# comment
Atlas|AS7-D|any|AC/20|Armor-Piercing:Standard
bad line
any|any|any|LRM|Standard
`
	tr := New()
	n, err := tr.LoadPresetLines(strings.NewReader(src), nil)
	if err != nil {
		t.Fatalf("LoadPresetLines: %v", err)
	}
	if n != 2 {
		t.Errorf("loaded %d lines, want 2", n)
	}
	if got := tr.Retrieve("Atlas", "AS7-D", "any").PriorityListFor("AC/20"); len(got) != 2 {
		t.Errorf("Atlas list = %v", got)
	}
}

func TestParsePresetLineErrors(t *testing.T) {
	for _, line := range []string{"a|b|c", "a|b|c||Standard"} {
		if _, err := ParsePresetLine(line); err == nil {
			t.Errorf("ParsePresetLine(%q) expected error", line)
		}
	}
}
