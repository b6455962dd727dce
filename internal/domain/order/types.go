package order

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// statusFlow is the linear fulfillment path; cancelled sits outside it and is
// reachable only from the first two states.
var statusFlow = []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// Next returns the following state on the linear path. Terminal and
// unrecognized states have no successor.
func (s Status) Next() (Status, bool) {
	if s.IsTerminal() {
		return "", false
	}
	for i, st := range statusFlow {
		if st == s {
			if i+1 < len(statusFlow) {
				return statusFlow[i+1], true
			}
			return "", false
		}
	}
	return "", false
}

func (s Status) CanCancel() bool {
	return s == StatusPending || s == StatusProcessing
}

func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsCompleted reports whether the order reached a final outcome, delivered or
// cancelled.
func (s Status) IsCompleted() bool {
	return s.IsTerminal()
}
