package techniques

import (
	"sort"
	"testing"
)

func TestEveryTechniqueHasGroupAndName(t *testing.T) {
	for _, technique := range Manifest {
		if GroupFor(technique) == "" {
			t.Errorf("technique %q belongs to no skill group", technique)
		}
		if _, ok := DisplayNames[technique]; !ok {
			t.Errorf("technique %q has no display name", technique)
		}
	}
}

func TestGroupsOnlyReferenceKnownTechniques(t *testing.T) {
	seen := map[string]string{}
	for _, group := range SkillGroups {
		for _, technique := range group.Techniques {
			if !Known(technique) {
				t.Errorf("group %s references unknown technique %q", group.ID, technique)
			}
			if prev, dup := seen[technique]; dup {
				t.Errorf("technique %q in both %s and %s", technique, prev, group.ID)
			}
			seen[technique] = group.ID
		}
	}
}

func TestGroupOrdering(t *testing.T) {
	for i, group := range SkillGroups {
		if group.Order != i+1 {
			t.Errorf("group %s has Order %d at position %d", group.ID, group.Order, i)
		}
	}
}

func TestKnown(t *testing.T) {
	if !Known("slapPop") {
		t.Error("Known(slapPop) = false")
	}
	if Known("shredding") {
		t.Error("Known(shredding) = true")
	}
}

func TestDisplayNameFallback(t *testing.T) {
	if got := DisplayName("slapPop"); got != "Slap & Pop" {
		t.Errorf("DisplayName(slapPop) = %q", got)
	}
	if got := DisplayName("mystery"); got != "mystery" {
		t.Errorf("DisplayName(mystery) = %q", got)
	}
}

func TestSorted(t *testing.T) {
	sorted := Sorted()
	if len(sorted) != len(Manifest) {
		t.Fatalf("len = %d, want %d", len(sorted), len(Manifest))
	}
	if !sort.StringsAreSorted(sorted) {
		t.Error("Sorted() is not sorted")
	}
	// Manifest order must be left untouched.
	if Manifest[0] != "slides" {
		t.Errorf("Manifest[0] = %q, Sorted must copy", Manifest[0])
	}
}
