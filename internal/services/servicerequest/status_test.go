package servicerequest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_TerminalStatesAdmitNoExits(t *testing.T) {
	terminals := []Status{StatusCompleted, StatusCancelled, StatusRejected}
	targets := []Status{StatusNew, StatusPending, StatusInProcess, StatusInProgress, StatusCompleted, StatusCancelled, StatusRejected}

	for _, from := range terminals {
		for _, to := range targets {
			if from == to {
				continue
			}
			assert.False(t, canTransition(from, to), "%s -> %s should be rejected", from, to)
		}
	}
}

func TestCanTransition_CompletedToInProgressRejected(t *testing.T) {
	assert.False(t, canTransition(StatusCompleted, StatusInProgress))
}

func TestCanTransition_SameStatusAllowed(t *testing.T) {
	for _, s := range []Status{StatusNew, StatusPending, StatusInProgress, StatusCompleted, StatusCancelled} {
		assert.True(t, canTransition(s, s), "%s -> %s should be a no-op", s, s)
	}
}

func TestCanTransition_LiveStatesReachTerminals(t *testing.T) {
	live := []Status{StatusNew, StatusPending, StatusInProcess, StatusInProgress}

	for _, from := range live {
		assert.True(t, canTransition(from, StatusCancelled), "%s -> cancelled", from)
		assert.True(t, canTransition(from, StatusRejected), "%s -> rejected", from)
		assert.True(t, canTransition(from, StatusCompleted), "%s -> completed", from)
	}
}

func TestCanTransition_RejectsUnknownStatuses(t *testing.T) {
	assert.False(t, canTransition(Status("archived"), StatusPending))
	assert.False(t, canTransition(StatusPending, Status("archived")))
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusInProgress.Terminal())
}
