package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"cfcli/lib/identifier"
)

// AppState tracks what the user is currently working on, separate
// from the user-edited config.
type AppState struct {
	CurrentContest *identifier.Contest `json:"current_contest,omitempty"`
	CurrentProblem *identifier.Problem `json:"current_problem,omitempty"`
	Handle         string              `json:"handle,omitempty"`
}

// ReadState returns an empty state if the state file doesn't exist yet.
func ReadState(cfg Config) (AppState, error) {
	path := cfg.StatePath()
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return AppState{}, nil
	}
	if err != nil {
		return AppState{}, &ConfigError{Path: path, Err: err}
	}

	var state AppState
	err = json.Unmarshal(contents, &state)
	if err != nil {
		return AppState{}, &ConfigError{Path: path, Err: err}
	}
	return state, nil
}

func WriteState(cfg Config, state AppState) error {
	path := cfg.StatePath()
	serialized, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	err = os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	err = os.WriteFile(path, serialized, 0644)
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	return nil
}

// SetCurrent points the state at `cp`, a problem also sets its contest.
func (s *AppState) SetCurrent(cp identifier.ContestOrProblem) {
	if cp.Contest != nil {
		contest := *cp.Contest
		s.CurrentContest = &contest
		s.CurrentProblem = nil
		return
	}
	if cp.Problem != nil {
		problem := *cp.Problem
		contest := problem.Contest()
		s.CurrentContest = &contest
		s.CurrentProblem = &problem
	}
}
