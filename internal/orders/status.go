package orders

import "github.com/ariefcatur/heritage-market/internal/auth"

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// validNext is the whole lifecycle graph. Cancelling a shipped or delivered
// order is the admin override; Allowed narrows every edge by role.
var validNext = map[Status]map[Status]bool{
	StatusPending:    {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing: {StatusShipped: true, StatusCancelled: true},
	StatusShipped:    {StatusDelivered: true, StatusCancelled: true},
	StatusDelivered:  {StatusCompleted: true, StatusCancelled: true},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func (s Status) Valid() bool {
	_, ok := validNext[s]
	return ok
}

func (s Status) IsTerminal() bool { return s == StatusCompleted || s == StatusCancelled }

// IsFulfilled reports whether the order reached a state that allows reviews.
func (s Status) IsFulfilled() bool { return s == StatusDelivered || s == StatusCompleted }

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// Allowed reports whether a caller holding role may move an order from -> to.
// Ownership is checked by the caller; this only encodes authority. Sellers
// walk the non-cancel edges, buyers cancel while pending and admins may
// cancel anything not yet terminal.
func Allowed(role auth.Role, from, to Status) bool {
	if !CanTransition(from, to) {
		return false
	}
	switch role {
	case auth.RoleBuyer:
		return from == StatusPending && to == StatusCancelled
	case auth.RoleSeller:
		return to != StatusCancelled
	case auth.RoleAdmin:
		return to == StatusCancelled
	}
	return false
}
