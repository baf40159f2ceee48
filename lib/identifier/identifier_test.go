package identifier

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		token    string
		expected ContestOrProblem
		err      error
	}{
		{token: "566", expected: ContestOrProblem{Contest: &Contest{ContestID: 566}}},
		{token: "0", expected: ContestOrProblem{Contest: &Contest{ContestID: 0}}},
		{token: "1879A", expected: ContestOrProblem{Problem: &Problem{ContestID: 1879, ProblemID: "A"}}},
		{token: "4A2", expected: ContestOrProblem{Problem: &Problem{ContestID: 4, ProblemID: "A2"}}},
		{token: "1900B1", expected: ContestOrProblem{Problem: &Problem{ContestID: 1900, ProblemID: "B1"}}},
		// anything after the first letter is kept verbatim
		{token: "12a-b c", expected: ContestOrProblem{Problem: &Problem{ContestID: 12, ProblemID: "a-b c"}}},
		{token: "A", err: ErrInvalidProblem},
		{token: "-1A", err: ErrInvalidProblem},
		{token: "", err: ErrInvalidContest},
		{token: "12-3", err: ErrInvalidContest},
		{token: "-5", err: ErrInvalidContest},
	}

	for _, test := range testCases {
		t.Run(test.token, func(t *testing.T) {
			result, err := Parse(test.token)
			if test.err != nil {
				require.ErrorIs(t, err, test.err)
				var parseErr *ParseError
				require.True(t, errors.As(err, &parseErr))
				require.Equal(t, test.token, parseErr.Token)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(test.expected, result); diff != "" {
				t.Fatalf("unexpected parse result (-want +got):\n%s", diff)
			}
			require.NotEqual(t, result.Contest == nil, result.Problem == nil, "exactly one variant must be set")
		})
	}
}

func TestParseContestOnlyDigits(t *testing.T) {
	for _, token := range []string{"1", "42", "1879", "18446744073709551615"} {
		cp, err := Parse(token)
		require.NoError(t, err)
		require.True(t, cp.IsContest())
		require.Equal(t, token, cp.String())
	}
}

func TestParseProblem(t *testing.T) {
	p, err := ParseProblem("1879A")
	require.NoError(t, err)
	require.Equal(t, Problem{ContestID: 1879, ProblemID: "A"}, p)
	require.Equal(t, "1879A", p.Key())
	require.Equal(t, Contest{ContestID: 1879}, p.Contest())

	_, err = ParseProblem("566")
	require.ErrorIs(t, err, ErrInvalidProblem)
}
