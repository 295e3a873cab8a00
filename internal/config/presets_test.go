package config

import "testing"

func TestDefaultPresets(t *testing.T) {
	presets := DefaultPresets()
	if len(presets) != 3 {
		t.Fatalf("expected 3 presets, got %d", len(presets))
	}

	seen := map[string]bool{}
	for _, p := range presets {
		if err := p.Validate(); err != nil {
			t.Errorf("preset %s is invalid: %v", p.Name, err)
		}
		if seen[p.Name] {
			t.Errorf("duplicate preset %s", p.Name)
		}
		seen[p.Name] = true
		if p.MinTextChars != 100 {
			t.Errorf("preset %s: expected threshold 100, got %d", p.Name, p.MinTextChars)
		}
		if !p.Options.Deterministic() {
			t.Errorf("preset %s must decode deterministically", p.Name)
		}
	}

	if presets[0].Name != "distilbart" {
		t.Errorf("expected distilbart first, got %s", presets[0].Name)
	}
	for _, p := range presets {
		if p.Name == "t5" && p.Prefix != "summarize: " {
			t.Errorf("t5 must carry the task prefix, got %q", p.Prefix)
		}
	}
}
