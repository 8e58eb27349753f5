package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTransition(t *testing.T) {
	cases := []struct {
		from, to TicketStatus
		want     bool
	}{
		{TicketStatusPending, TicketStatusAssigned, true},
		{TicketStatusPending, TicketStatusCanceled, true},
		{TicketStatusPending, TicketStatusCompleted, false},
		{TicketStatusPending, TicketStatusInProgress, false},
		{TicketStatusAssigned, TicketStatusInProgress, true},
		{TicketStatusAssigned, TicketStatusPending, true},
		{TicketStatusAssigned, TicketStatusCompleted, false},
		{TicketStatusInProgress, TicketStatusCompleted, true},
		{TicketStatusInProgress, TicketStatusCanceled, true},
		{TicketStatusInProgress, TicketStatusPending, false},
		{TicketStatusCompleted, TicketStatusPending, false},
		{TicketStatusCanceled, TicketStatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsValidTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, IsTerminal(TicketStatusCompleted))
	assert.True(t, IsTerminal(TicketStatusCanceled))
	assert.False(t, IsTerminal(TicketStatusPending))
	assert.False(t, IsTerminal(TicketStatusAssigned))
	assert.False(t, IsTerminal(TicketStatusInProgress))
}

func TestLifecycleBuckets(t *testing.T) {
	assert.Equal(t, []TicketStatus{TicketStatusPending, TicketStatusAssigned, TicketStatusInProgress}, AssignableStatuses())
	assert.Equal(t, []TicketStatus{TicketStatusAssigned, TicketStatusInProgress}, SchedulableStatuses())
	assert.Equal(t, []TicketStatus{TicketStatusCompleted, TicketStatusCanceled}, HistoricalStatuses())
}

// Every status lands in exactly one of {Assignable minus Schedulable,
// Schedulable, Historical}, so the listing screens partition the tickets.
func TestLifecycleBucketsPartitionStatuses(t *testing.T) {
	schedulable := make(map[TicketStatus]bool)
	for _, status := range SchedulableStatuses() {
		schedulable[status] = true
	}

	seen := make(map[TicketStatus]int)
	for _, status := range AssignableStatuses() {
		if !schedulable[status] {
			seen[status]++
		}
	}
	for _, status := range SchedulableStatuses() {
		seen[status]++
	}
	for _, status := range HistoricalStatuses() {
		seen[status]++
	}

	for _, status := range AllTicketStatuses {
		assert.Equal(t, 1, seen[status], "status %s must be in exactly one partition", status)
	}
}

func TestAssignedStatusVisibility(t *testing.T) {
	assert.Contains(t, AssignableStatuses(), TicketStatusAssigned)
	assert.Contains(t, SchedulableStatuses(), TicketStatusAssigned)
	assert.NotContains(t, HistoricalStatuses(), TicketStatusAssigned)
}
