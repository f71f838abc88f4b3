package spelling

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"cat", "cat"},
		{" Cat ", "cat"},
		{"CAT", "cat"},
		{"\tdog\n", "dog"},
		{"ice-cream", "ice-cream"},
		{"New York", "new york"},
		{"", ""},
		{"   ", ""},
		{"Café", "café"},
	}

	for _, tc := range tests {
		got := Normalize(tc.input)
		if got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"", " Cat ", "CAT", "  MiXeD CaSe  ", " space ", "ÉCOLE", "a b  c"}
	for _, s := range inputs {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", s, once, twice)
		}
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		input  string
		target string
		want   bool
	}{
		{" Cat ", "cat", true},
		{"CAT", "cat", true},
		{"cat", "Cat", true},
		{"kat", "cat", false},
		{"cats", "cat", false},
		{"", "cat", false},
		{"c a t", "cat", false},
		{"cat.", "cat", false},
		{"cafe", "café", false},
	}

	for _, tc := range tests {
		got := Check(tc.input, tc.target)
		if got.Match != tc.want {
			t.Errorf("Check(%q, %q).Match = %v, want %v", tc.input, tc.target, got.Match, tc.want)
		}
	}
}

func TestCheck_ReportsNormalizedValues(t *testing.T) {
	r := Check("  Because ", "because")
	if r.Input != "because" {
		t.Errorf("Input = %q, want %q", r.Input, "because")
	}
	if r.Target != "because" {
		t.Errorf("Target = %q, want %q", r.Target, "because")
	}
}
