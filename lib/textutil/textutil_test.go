package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubstitute(t *testing.T) {
	vars := map[string]string{
		"contest_id": "1879",
		"problem_id": "A",
	}

	testCases := []struct {
		template string
		expected string
	}{
		{template: "{%contest_id%}/{%problem_id%}", expected: "1879/A"},
		{template: "{%problem_id%}", expected: "A"},
		{template: "cf-{%contest_id%}{%problem_id%}-{%contest_id%}", expected: "cf-1879A-1879"},
		{template: "plain", expected: "plain"},
		{template: "{%unknown%}", expected: "{%unknown%}"},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, Substitute(test.template, vars))
	}
}

func TestBestMatch(t *testing.T) {
	candidates := []string{"GNU G++17 7.3.0", "Python 3.8.10", "Rust 1.75.0 (2021)"}

	match, ok := BestMatch("python 3", candidates)
	require.True(t, ok)
	require.Equal(t, "Python 3.8.10", match.Value)

	match, ok = BestMatch("rust", candidates)
	require.True(t, ok)
	require.Equal(t, "Rust 1.75.0 (2021)", match.Value)

	_, ok = BestMatch("anything", nil)
	require.False(t, ok)
}
