package statemachine

import (
	"errors"

	"dinein-api/models"
)

// Actor names who may perform a transition
const (
	ActorChef   = "chef"
	ActorWaiter = "waiter"
	ActorSystem = "system"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string // "chef", "waiter", "system"
}

// validTransitions is the authoritative state machine definition.
// The lifecycle is strictly forward: pending → preparing → ready → served →
// paid. served → paid carries actor "system" because only the billing
// finalizer may perform it — no staff endpoint pays an order directly.
var validTransitions = []Transition{
	// Chef accepts the order and starts preparation
	{From: models.StatusPending, To: models.StatusPreparing, Actor: ActorChef},
	// The accepting chef marks the food ready
	{From: models.StatusPreparing, To: models.StatusReady, Actor: ActorChef},
	// Waiter confirms the order reached the table
	{From: models.StatusReady, To: models.StatusServed, Actor: ActorWaiter},
	// Payment finalization closes the order
	{From: models.StatusServed, To: models.StatusPaid, Actor: ActorSystem},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
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

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
