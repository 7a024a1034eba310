package statemachine

import (
	"github.com/bikebay/server/internal/apperr"
	"github.com/bikebay/server/internal/models"
)

// Transition defines a valid booking status change
type Transition struct {
	From models.BookingStatus
	To   models.BookingStatus
}

// validTransitions is the authoritative state machine definition:
// pending -> confirmed | cancelled, confirmed -> cancelled, cancelled is terminal.
var validTransitions = []Transition{
	{From: models.BookingStatusPending, To: models.BookingStatusConfirmed},
	{From: models.BookingStatusPending, To: models.BookingStatusCancelled},
	{From: models.BookingStatusConfirmed, To: models.BookingStatusCancelled},
}

type transitionKey struct {
	From models.BookingStatus
	To   models.BookingStatus
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.BookingStatus) []models.BookingStatus {
	var nexts []models.BookingStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks whether a booking may move from one status to another
func CanTransition(from, to models.BookingStatus) error {
	if transitionMap[transitionKey{From: from, To: to}] {
		return nil
	}
	return apperr.Newf(apperr.CodeInvalid,
		"invalid status transition: %s -> %s (valid from %s: %s)",
		from, to, from, describeValidFrom(from))
}

func describeValidFrom(status models.BookingStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none, terminal state"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}
