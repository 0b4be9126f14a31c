package utils

import (
	"errors"
	"fmt"
)

// Stage names the pipeline step an error came from.
type Stage string

const (
	StageNetwork Stage = "network"
	StageParse   Stage = "parse"
	StageIO      Stage = "io"
)

var (
	ErrNetwork = errors.New("network error")
	ErrParse   = errors.New("parse error")
	ErrIO      = errors.New("io error")
)

// StageError tags an error with the stage that produced it. Every stage
// error is terminal for the run.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrNetwork) and friends match on the stage.
func (e *StageError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Stage == StageNetwork
	case ErrParse:
		return e.Stage == StageParse
	case ErrIO:
		return e.Stage == StageIO
	}
	return false
}

func NetworkError(format string, args ...any) error {
	return &StageError{Stage: StageNetwork, Err: fmt.Errorf(format, args...)}
}

func ParseError(format string, args ...any) error {
	return &StageError{Stage: StageParse, Err: fmt.Errorf(format, args...)}
}

func IOError(format string, args ...any) error {
	return &StageError{Stage: StageIO, Err: fmt.Errorf(format, args...)}
}

// StageOf returns the stage of the first StageError in err's chain.
func StageOf(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}
