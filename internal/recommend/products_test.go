package recommend

import "testing"

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Alimentaire", "alimentaire"},
		{"ÉLECTRONIQUE", "électronique"},
		{"  Mode  ", "mode"},
		{"Santé/Bien-être", "santé/bien-être"},
	}
	for _, tt := range tests {
		if got := NormalizeCategory(tt.in); got != tt.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestForCategoriesMapped(t *testing.T) {
	recs := ForCategories(map[string]bool{"Électronique": true})

	if len(recs) != 1 {
		t.Fatalf("len(recs) = %d, want 1", len(recs))
	}
	rec := recs[0]
	if rec.Category != "Électronique" {
		t.Errorf("Category = %q, want the observed spelling Électronique", rec.Category)
	}
	if rec.Explanation == FallbackExplanation {
		t.Error("mapped category got the fallback explanation")
	}
	if len(rec.Programs) != 3 {
		t.Fatalf("len(Programs) = %d, want 3", len(rec.Programs))
	}
	// tiers and value_rewards come from the catalog, extended_warranty from
	// the supplemental table.
	ids := map[string]bool{}
	for _, p := range rec.Programs {
		ids[p.ProgramID] = true
		if p.Name == "" || len(p.Benefits) == 0 {
			t.Errorf("program %s missing display fields", p.ProgramID)
		}
	}
	for _, want := range []string{"tiers", "value_rewards", "extended_warranty"} {
		if !ids[want] {
			t.Errorf("program %s missing from recommendations: %v", want, ids)
		}
	}
}

func TestForCategoriesFallback(t *testing.T) {
	recs := ForCategories(map[string]bool{"Jardinage": true})

	if len(recs) != 1 {
		t.Fatalf("len(recs) = %d, want 1", len(recs))
	}
	rec := recs[0]
	if rec.Explanation != FallbackExplanation {
		t.Errorf("Explanation = %q, want the fallback text", rec.Explanation)
	}
	if len(rec.Programs) == 0 {
		t.Fatal("fallback recommendation has no programs")
	}
	if rec.Programs[0].ProgramID != "purchase_points" {
		t.Errorf("first fallback program = %s, want purchase_points", rec.Programs[0].ProgramID)
	}
}

func TestForCategoriesLexicalOrder(t *testing.T) {
	recs := ForCategories(map[string]bool{
		"Mode":        true,
		"Alimentaire": true,
		"Sport":       true,
	})

	want := []string{"Alimentaire", "Mode", "Sport"}
	if len(recs) != len(want) {
		t.Fatalf("len(recs) = %d, want %d", len(recs), len(want))
	}
	for i, rec := range recs {
		if rec.Category != want[i] {
			t.Errorf("recs[%d].Category = %q, want %q", i, rec.Category, want[i])
		}
	}
}
