package orders

import (
	"testing"

	"github.com/ariefcatur/heritage-market/internal/auth"
	"github.com/stretchr/testify/require"
)

var allStatuses = []Status{
	StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCompleted, StatusCancelled,
}

func TestCanTransition(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusPending, StatusProcessing}:   true,
		{StatusPending, StatusCancelled}:    true,
		{StatusProcessing, StatusShipped}:   true,
		{StatusProcessing, StatusCancelled}: true,
		{StatusShipped, StatusDelivered}:    true,
		{StatusShipped, StatusCancelled}:    true,
		{StatusDelivered, StatusCompleted}:  true,
		{StatusDelivered, StatusCancelled}:  true,
	}
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			require.Equal(t, allowed[[2]Status{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalAndFulfilled(t *testing.T) {
	for _, s := range allStatuses {
		require.True(t, s.Valid())
		require.Equal(t, s == StatusCompleted || s == StatusCancelled, s.IsTerminal(), s)
		require.Equal(t, s == StatusDelivered || s == StatusCompleted, s.IsFulfilled(), s)
	}
	require.False(t, Status("confirmed").Valid())
}

func TestAllowedBuyer(t *testing.T) {
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := from == StatusPending && to == StatusCancelled
			require.Equal(t, want, Allowed(auth.RoleBuyer, from, to), "%s -> %s", from, to)
		}
	}
}

func TestAllowedSeller(t *testing.T) {
	path := []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCompleted}
	for i := 0; i+1 < len(path); i++ {
		require.True(t, Allowed(auth.RoleSeller, path[i], path[i+1]))
	}
	require.False(t, Allowed(auth.RoleSeller, StatusPending, StatusShipped), "no skipping")
	require.False(t, Allowed(auth.RoleSeller, StatusPending, StatusCancelled), "sellers do not cancel")
	require.False(t, Allowed(auth.RoleSeller, StatusShipped, StatusProcessing), "no going back")
	require.False(t, Allowed(auth.RoleSeller, StatusShipped, StatusCancelled))
}

func TestAllowedAdmin(t *testing.T) {
	for _, from := range allStatuses {
		require.Equal(t, !from.IsTerminal(), Allowed(auth.RoleAdmin, from, StatusCancelled), from)
		for _, to := range allStatuses {
			if to != StatusCancelled {
				require.False(t, Allowed(auth.RoleAdmin, from, to), "%s -> %s", from, to)
			}
		}
	}
}

// Every authorised move must be an edge of the lifecycle graph.
func TestAllowedStaysInsideGraph(t *testing.T) {
	for _, role := range []auth.Role{auth.RoleBuyer, auth.RoleSeller, auth.RoleAdmin} {
		for _, from := range allStatuses {
			for _, to := range allStatuses {
				if Allowed(role, from, to) {
					require.True(t, CanTransition(from, to), "%s: %s -> %s", role, from, to)
				}
			}
		}
	}
	require.True(t, Allowed(auth.RoleAdmin, StatusShipped, StatusCancelled))
	require.True(t, Allowed(auth.RoleAdmin, StatusDelivered, StatusCancelled))
}

func TestAllowedUnknownRole(t *testing.T) {
	require.False(t, Allowed(auth.Role("guest"), StatusPending, StatusCancelled))
}
