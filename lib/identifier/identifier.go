package identifier

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

var (
	ErrInvalidContest = errors.New("invalid contest id")
	ErrInvalidProblem = errors.New("invalid problem id")
)

type ParseError struct {
	Token string
	Kind  error
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %q: %s", e.Kind.Error(), e.Token, e.Err.Error())
	}
	return fmt.Sprintf("%s %q", e.Kind.Error(), e.Token)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

type Contest struct {
	ContestID uint64 `json:"contest_id"`
}

func (c Contest) String() string {
	return strconv.FormatUint(c.ContestID, 10)
}

type Problem struct {
	ContestID uint64 `json:"contest_id"`
	ProblemID string `json:"problem_id"`
}

// Key is the concatenation used for cache directory names, ex. "1879A".
func (p Problem) Key() string {
	return strconv.FormatUint(p.ContestID, 10) + p.ProblemID
}

func (p Problem) String() string {
	return p.Key()
}

func (p Problem) Contest() Contest {
	return Contest{ContestID: p.ContestID}
}

// ContestOrProblem holds exactly one non-nil field.
type ContestOrProblem struct {
	Contest *Contest
	Problem *Problem
}

func (cp ContestOrProblem) IsContest() bool {
	return cp.Contest != nil
}

func (cp ContestOrProblem) String() string {
	if cp.Contest != nil {
		return cp.Contest.String()
	}
	if cp.Problem != nil {
		return cp.Problem.String()
	}
	return ""
}

// Parse splits a token at its first letter. The part before it is the
// contest id, the rest (if any) is taken verbatim as the problem id.
func Parse(token string) (ContestOrProblem, error) {
	split := -1
	for i, r := range token {
		if unicode.IsLetter(r) {
			split = i
			break
		}
	}

	if split < 0 {
		id, err := strconv.ParseUint(token, 10, 64)
		if err != nil {
			return ContestOrProblem{}, &ParseError{Token: token, Kind: ErrInvalidContest, Err: err}
		}
		return ContestOrProblem{Contest: &Contest{ContestID: id}}, nil
	}

	id, err := strconv.ParseUint(token[:split], 10, 64)
	if err != nil {
		return ContestOrProblem{}, &ParseError{Token: token, Kind: ErrInvalidProblem, Err: err}
	}
	return ContestOrProblem{Problem: &Problem{
		ContestID: id,
		ProblemID: token[split:],
	}}, nil
}

// ParseProblem is Parse restricted to tokens naming a single problem.
func ParseProblem(token string) (Problem, error) {
	cp, err := Parse(token)
	if err != nil {
		return Problem{}, err
	}
	if cp.Problem == nil {
		return Problem{}, &ParseError{Token: token, Kind: ErrInvalidProblem}
	}
	return *cp.Problem, nil
}
