package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClassifyStatusName(t *testing.T) {
	tests := []struct {
		name string
		want StatusKind
	}{
		{name: "Pending", want: StatusPending},
		{name: "pending review", want: StatusPending},
		{name: "Approved", want: StatusApproved},
		{name: "Accepted", want: StatusApproved},
		{name: "Confirmed", want: StatusApproved},
		{name: "Rejected", want: StatusRejected},
		{name: "Declined", want: StatusRejected},
		{name: "Cancelled", want: StatusCancelled},
		{name: "CANCELED BY USER", want: StatusCancelled},
		{name: "Waitlisted", want: StatusOther},
		{name: "", want: StatusOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ClassifyStatusName(tt.name))
		})
	}
}

func TestClassifyStatusNamePrecedence(t *testing.T) {
	// cancel wins over reject, reject wins over approve
	require.Equal(t, StatusCancelled, ClassifyStatusName("approval cancelled"))
	require.Equal(t, StatusRejected, ClassifyStatusName("approval rejected"))
}

func TestCountsAgainstCapacity(t *testing.T) {
	counts := func(name string) bool {
		s := RegistrationStatus{Name: name, Kind: ClassifyStatusName(name)}
		return s.CountsAgainstCapacity()
	}
	require.True(t, counts("Pending"))
	require.True(t, counts("Approved"))
	require.True(t, counts("Waitlisted"))
	require.False(t, counts("Rejected"))
	require.False(t, counts("Declined"))
	require.False(t, counts("Cancelled"))
}

func TestEventRegistrationOpen(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	event := Event{}
	require.True(t, event.RegistrationOpen(now), "no deadline means always open")

	deadline := now.Add(time.Hour)
	event.RegistrationDeadline = &deadline
	require.True(t, event.RegistrationOpen(now))
	require.True(t, event.RegistrationOpen(deadline), "deadline moment itself is still open")
	require.False(t, event.RegistrationOpen(deadline.Add(time.Second)))
}

func TestEventHasCapacity(t *testing.T) {
	event := Event{}
	require.False(t, event.HasCapacity())

	zero := 0
	event.TotalSpots = &zero
	require.False(t, event.HasCapacity(), "non-positive spots mean unlimited")

	ten := 10
	event.TotalSpots = &ten
	require.True(t, event.HasCapacity())
}
