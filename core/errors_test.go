package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorTaxonomy(t *testing.T) {
	cause := errors.New("unexpected EOF")
	tests := []struct {
		name            string
		err             error
		wantInput       bool
		wantUnavailable bool
	}{
		{name: "no seed", err: ErrNoSeed, wantInput: true},
		{name: "seed not found", err: NewSeedNotFoundError(999), wantInput: true},
		{name: "wrapped input error", err: fmt.Errorf("rank: %w", ErrNoSeed), wantInput: true},
		{name: "data unavailable", err: NewDataUnavailableError("movies.csv", cause), wantUnavailable: true},
		{name: "plain error", err: cause},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInputError(tt.err); got != tt.wantInput {
				t.Errorf("IsInputError = %v, want %v", got, tt.wantInput)
			}
			if got := IsDataUnavailable(tt.err); got != tt.wantUnavailable {
				t.Errorf("IsDataUnavailable = %v, want %v", got, tt.wantUnavailable)
			}
		})
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewDataUnavailableError("ratings.csv", cause)
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable via errors.Is")
	}
	if got := err.Error(); got != "dataset: ratings.csv unavailable: permission denied" {
		t.Errorf("Error() = %q", got)
	}
}
