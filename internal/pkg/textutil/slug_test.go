package textutil

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		// Basic normalization
		{"lowercase", "Anatomy", "anatomy"},
		{"spaces to hyphens", "upper limb", "upper-limb"},
		{"already a slug", "upper-limb", "upper-limb"},
		{"mixed case with numbers", "Intro to Anatomy!! 101", "intro-to-anatomy-101"},

		// Whitespace handling
		{"surrounding whitespace", "  cardiology  ", "cardiology"},
		{"internal runs", "cell   biology", "cell-biology"},
		{"tabs and newlines", "cell\tbiology\nnotes", "cell-biology-notes"},

		// Disallowed characters
		{"punctuation dropped", "nerves & vessels?", "nerves-vessels"},
		{"apostrophe dropped", "Wernicke's area", "wernickes-area"},
		{"parentheses dropped", "pharmacology (part 2)", "pharmacology-part-2"},
		{"unicode dropped", "café rounds", "caf-rounds"},

		// Separator folding
		{"underscores", "upper_limb_osteology", "upper-limb-osteology"},
		{"mixed separators", "upper _- limb", "upper-limb"},
		{"repeated hyphens", "upper--limb", "upper-limb"},
		{"edge hyphens", "--upper-limb--", "upper-limb"},

		// Edge cases
		{"empty", "", ""},
		{"only whitespace", "   ", ""},
		{"only punctuation", "!?!?", ""},
		{"digits survive", "top 10 mnemonics", "top-10-mnemonics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.input)
			if got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
