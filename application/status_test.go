package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for raw, want := range map[string]Status{
		"PENDING":   StatusPending,
		"pending":   StatusPending,
		"In_Review": StatusInReview,
		"APPROVED":  StatusApproved,
		"rejected":  StatusRejected,
	} {
		got, err := ParseStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseStatus("SHIPPED")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusInReview.Terminal())
	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
}

func TestCanTransitionTable(t *testing.T) {
	statuses := []Status{StatusPending, StatusInReview, StatusApproved, StatusRejected}
	allowed := map[Status]map[Status]bool{
		StatusPending: {
			StatusInReview: true,
		},
		StatusInReview: {
			StatusInReview: true,
			StatusApproved: true,
			StatusRejected: true,
		},
		StatusApproved: {},
		StatusRejected: {},
	}

	for _, from := range statuses {
		for _, to := range statuses {
			err := from.CanTransition(to)
			if allowed[from][to] {
				assert.NoError(t, err, "%s -> %s", from, to)
				continue
			}
			require.Error(t, err, "%s -> %s", from, to)
			if from.Terminal() {
				assert.ErrorIs(t, err, ErrTerminalStatus, "%s -> %s", from, to)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", from, to)
			}
		}
	}
}

func TestTerminalErrorNamesCurrentStatus(t *testing.T) {
	err := StatusApproved.CanTransition(StatusInReview)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APPROVED")

	err = StatusRejected.CanTransition(StatusApproved)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REJECTED")
}
