package utils

import (
	"errors"
	"fmt"
	"testing"
)

func TestStageErrorMatching(t *testing.T) {
	tests := []struct {
		err   error
		want  error
		other error
		stage Stage
	}{
		{NetworkError("status %d", 503), ErrNetwork, ErrParse, StageNetwork},
		{ParseError("no cards"), ErrParse, ErrIO, StageParse},
		{IOError("disk full"), ErrIO, ErrNetwork, StageIO},
	}

	for _, tt := range tests {
		wrapped := fmt.Errorf("pipeline: %w", tt.err)
		if !errors.Is(wrapped, tt.want) {
			t.Errorf("errors.Is(%v, %v) = false; want true", wrapped, tt.want)
		}
		if errors.Is(wrapped, tt.other) {
			t.Errorf("errors.Is(%v, %v) = true; want false", wrapped, tt.other)
		}
		stage, ok := StageOf(wrapped)
		if !ok || stage != tt.stage {
			t.Errorf("StageOf(%v) = %q, %v; want %q", wrapped, stage, ok, tt.stage)
		}
	}
}

func TestStageOfPlainError(t *testing.T) {
	if _, ok := StageOf(errors.New("boom")); ok {
		t.Error("plain error should not report a stage")
	}
}
