package sanitize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextRemovesAllHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "script tag",
			input:    `Conf <script>alert('xss')</script> 2026`,
			expected: `Conf  2026`,
		},
		{
			name:     "inline event handler",
			input:    `<div onclick="alert('xss')">Meetup Data</div>`,
			expected: `Meetup Data`,
		},
		{
			name:     "formatting stripped",
			input:    `<b>Workshop</b> <i>Cloud</i>`,
			expected: `Workshop Cloud`,
		},
		{
			name:     "plain text untouched",
			input:    `Conference Tech #42`,
			expected: `Conference Tech #42`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Text(tt.input))
		})
	}
}

func TestHTMLKeepsSafeFormatting(t *testing.T) {
	input := `<p>Talks on <b>Go</b></p><script>alert('xss')</script>`
	out := HTML(input)
	require.Contains(t, out, "<b>Go</b>")
	require.NotContains(t, out, "script")
}

func TestTextTrimsWhitespace(t *testing.T) {
	require.Equal(t, "Paris", Text("  Paris  "))
}
