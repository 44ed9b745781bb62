package postgres

import "testing"

func TestEscapeILIKEPattern(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain text untouched", input: "conference", expected: "conference"},
		{name: "percent escaped", input: "100%", expected: `100\%`},
		{name: "underscore escaped", input: "go_lang", expected: `go\_lang`},
		{name: "backslash escaped first", input: `a\b`, expected: `a\\b`},
		{name: "mixed metacharacters", input: `%_\`, expected: `\%\_\\`},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := escapeILIKEPattern(tt.input)
			if got != tt.expected {
				t.Errorf("escapeILIKEPattern(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
