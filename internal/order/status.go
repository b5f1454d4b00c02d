package order

type Status string

const (
	StatusReceived  Status = "received"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusOnRoute   Status = "on_route"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// transitions is the single source of truth for the order lifecycle. Both
// transition validation and the staff action list (NextStatuses) derive from
// it, so they cannot drift apart.
var transitions = map[Status][]Status{
	StatusReceived:  {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusOnRoute, StatusCancelled},
	StatusOnRoute:   {StatusDelivered, StatusCancelled},
	StatusDelivered: nil,
	StatusCancelled: nil,
}

func ParseStatus(s string) (Status, bool) {
	if _, ok := transitions[Status(s)]; ok {
		return Status(s), true
	}
	return "", false
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the legal next statuses for a state, in table order.
// Terminal states return an empty slice.
func NextStatuses(from Status) []Status {
	return append([]Status(nil), transitions[from]...)
}

func (s Status) Terminal() bool {
	next, known := transitions[s]
	return known && len(next) == 0
}
