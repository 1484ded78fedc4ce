package core

import "testing"

func TestTaxonomyShape(t *testing.T) {
	mains := MainCategories()
	if len(mains) != 9 {
		t.Fatalf("expected 9 main categories, got %d", len(mains))
	}
	for _, main := range mains {
		subs := Subcategories(main)
		if len(subs) < 2 {
			t.Fatalf("category %q has too few subcategories: %d", main, len(subs))
		}
		last := subs[len(subs)-1]
		if main != "Other" && last != "Other" {
			t.Fatalf("category %q should end with the Other sentinel, got %q", main, last)
		}
	}
}

func TestSubcategoriesUnknownMain(t *testing.T) {
	if subs := Subcategories("Gardening"); subs != nil {
		t.Fatalf("expected nil for unknown main category, got %v", subs)
	}
}

func TestIsValidSubcategory(t *testing.T) {
	cases := []struct {
		main, sub string
		want      bool
	}{
		{"Development", "Backend", true},
		{"Development", "Other", true},
		{"Leave", "Sick Leave", true},
		{"Other", "Miscellaneous", true},
		{"Development", "UI Design", false},
		{"Development", "backend", false}, // case-sensitive
		{"Gardening", "Other", false},
		{"Meeting", "", false},
	}
	for i, tc := range cases {
		if got := IsValidSubcategory(tc.main, tc.sub); got != tc.want {
			t.Fatalf("case %d (%q/%q) expected %v, got %v", i, tc.main, tc.sub, tc.want, got)
		}
	}
}

func TestTaxonomyCopies(t *testing.T) {
	// Mutating a returned slice must not corrupt the static taxonomy.
	subs := Subcategories("Support")
	subs[0] = "mutated"
	if Subcategories("Support")[0] != "Customer Support" {
		t.Fatalf("taxonomy was mutated through a returned copy")
	}
	tax := Taxonomy()
	tax["Support"][0] = "mutated"
	if Subcategories("Support")[0] != "Customer Support" {
		t.Fatalf("taxonomy was mutated through Taxonomy()")
	}
}
