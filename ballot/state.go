// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"fmt"
	"slices"

	"github.com/Sadiq-Teslim/ules-voting-sub000/models"
)

type State string

const (
	Selecting      State = models.StateSelecting
	ReadyToConfirm State = models.StateReadyToConfirm
	Confirming     State = models.StateConfirming
	Submitting     State = models.StateSubmitting
	Succeeded      State = models.StateSucceeded
	Failed         State = models.StateFailed
)

var transitions = map[State][]State{
	Selecting:      {ReadyToConfirm},
	ReadyToConfirm: {Confirming},
	Confirming:     {Submitting, Selecting},
	Submitting:     {Succeeded, Failed},
	Failed:         {Confirming, Selecting},
	Succeeded:      nil,
}

// CanTransition reports whether the lifecycle allows moving from s to next.
func (s State) CanTransition(next State) bool {
	return slices.Contains(transitions[s], next)
}

// Terminal reports whether the voter has to act before anything else happens.
func (s State) Terminal() bool {
	return s == Succeeded || s == Failed
}

func (s State) String() string {
	return string(s)
}

type TransitionError struct {
	From State
	To   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move ballot from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
