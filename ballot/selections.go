// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"maps"
	"slices"

	"github.com/Sadiq-Teslim/ules-voting-sub000/models"
)

// Selections is the in-progress ballot: one nominee per category.
// It is not safe for concurrent use; Machine guards it.
type Selections struct {
	choices map[string]string
}

func NewSelections() *Selections {
	return &Selections{choices: make(map[string]string)}
}

// Select records nomineeName for categoryID, replacing any earlier choice.
// Whether the nominee belongs to the category is the caller's concern.
func (s *Selections) Select(categoryID, nomineeName string) {
	s.choices[categoryID] = nomineeName
}

// IsComplete reports whether every one of categoryCount categories has a choice.
func (s *Selections) IsComplete(categoryCount int) bool {
	return len(s.choices) == categoryCount
}

func (s *Selections) Len() int {
	return len(s.choices)
}

func (s *Selections) Get(categoryID string) (string, bool) {
	name, ok := s.choices[categoryID]
	return name, ok
}

// Snapshot returns a copy of the current choices.
func (s *Selections) Snapshot() map[string]string {
	return maps.Clone(s.choices)
}

// Choices lists the selections ordered by category ID.
func (s *Selections) Choices() []models.Choice {
	ids := slices.Sorted(maps.Keys(s.choices))
	out := make([]models.Choice, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Choice{CategoryID: id, NomineeName: s.choices[id]})
	}
	return out
}
