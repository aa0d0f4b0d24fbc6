package statemachine

import (
	"testing"

	"dinein-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []models.OrderStatus{
	models.StatusPending,
	models.StatusPreparing,
	models.StatusReady,
	models.StatusServed,
	models.StatusPaid,
}

var allActors = []string{ActorChef, ActorWaiter, ActorSystem}

func TestTransitionMatrix(t *testing.T) {
	allowed := map[[3]string]bool{
		{string(models.StatusPending), string(models.StatusPreparing), ActorChef}: true,
		{string(models.StatusPreparing), string(models.StatusReady), ActorChef}:   true,
		{string(models.StatusReady), string(models.StatusServed), ActorWaiter}:    true,
		{string(models.StatusServed), string(models.StatusPaid), ActorSystem}:     true,
	}

	// Every (from, to, actor) triple outside the whitelist must be rejected:
	// no backward moves, no skips, no actor confusion.
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			for _, actor := range allActors {
				err := CanTransition(from, to, actor)
				if allowed[[3]string{string(from), string(to), actor}] {
					assert.NoError(t, err, "%s -> %s by %s should be allowed", from, to, actor)
				} else {
					assert.Error(t, err, "%s -> %s by %s should be rejected", from, to, actor)
				}
			}
		}
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	assert.Equal(t, []models.OrderStatus{models.StatusPreparing}, ValidTransitionsFrom(models.StatusPending))
	assert.Equal(t, []models.OrderStatus{models.StatusReady}, ValidTransitionsFrom(models.StatusPreparing))
	assert.Equal(t, []models.OrderStatus{models.StatusServed}, ValidTransitionsFrom(models.StatusReady))
	assert.Equal(t, []models.OrderStatus{models.StatusPaid}, ValidTransitionsFrom(models.StatusServed))
	assert.Empty(t, ValidTransitionsFrom(models.StatusPaid), "paid is terminal")
}

func TestTransitionErrorIsDescriptive(t *testing.T) {
	err := CanTransition(models.StatusPending, models.StatusReady, ActorChef)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pending")
	assert.Contains(t, err.Error(), "ready")
	assert.Contains(t, err.Error(), "preparing", "error names the valid next state")

	err = CanTransition(models.StatusPaid, models.StatusPending, ActorWaiter)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal")
}

func TestPaidOnlyReachableBySystem(t *testing.T) {
	assert.Error(t, CanTransition(models.StatusServed, models.StatusPaid, ActorWaiter))
	assert.Error(t, CanTransition(models.StatusServed, models.StatusPaid, ActorChef))
	assert.NoError(t, CanTransition(models.StatusServed, models.StatusPaid, ActorSystem))
}
