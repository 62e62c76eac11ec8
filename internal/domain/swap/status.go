package swap

import "errors"

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var (
	// ErrNotParty: the caller is neither requester nor target.
	ErrNotParty = errors.New("caller is not a party to this swap")
	// ErrInvalidTransition: the requested status is not reachable from the
	// current one, or the caller's role may not perform it.
	ErrInvalidTransition = errors.New("invalid status transition")
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal statuses have no outgoing transitions.
func (s Status) Terminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type roleSet uint8

const (
	byRequester roleSet = 1 << iota
	byTarget

	byEither = byRequester | byTarget
)

func (rs roleSet) allows(r Role) bool {
	switch r {
	case RoleRequester:
		return rs&byRequester != 0
	case RoleTarget:
		return rs&byTarget != 0
	}
	return false
}

// transitions is the whole lifecycle in one table: current status ->
// requested status -> roles permitted to make the move. Anything absent
// is forbidden, which covers terminal statuses and skipped states.
var transitions = map[Status]map[Status]roleSet{
	StatusPending: {
		StatusAccepted:  byTarget,
		StatusRejected:  byTarget,
		StatusCancelled: byEither,
	},
	StatusAccepted: {
		StatusCompleted: byEither,
		StatusCancelled: byEither,
	},
}

// Authorize validates a transition attempt as one unit: party membership
// first, then the transition table. A non-party caller always gets
// ErrNotParty, regardless of the statuses involved.
func Authorize(current, requested Status, role Role) error {
	if role == RoleNone {
		return ErrNotParty
	}
	allowed, ok := transitions[current][requested]
	if !ok || !allowed.allows(role) {
		return ErrInvalidTransition
	}
	return nil
}
