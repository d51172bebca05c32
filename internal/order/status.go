package order

// Status is the order lifecycle state. Forward-only, no skipping, with a
// cancellation edge out of the first two states.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

var validNext = map[Status]map[Status]bool{
	StatusPending:    {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing: {StatusShipped: true, StatusCancelled: true},
	StatusShipped:    {StatusDelivered: true},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

type edge struct {
	from, to Status
}

// allowedEdges is the role-scoped authorization table. One explicit policy
// instead of role checks scattered across handlers. ADMIN is handled as an
// escape hatch in AllowedFor and is absent here on purpose.
var allowedEdges = map[string]map[edge]bool{
	"SELLER": {
		{StatusPending, StatusProcessing}: true,
	},
	"AGENT": {
		{StatusProcessing, StatusShipped}: true,
		{StatusShipped, StatusDelivered}:  true,
	},
	"BUYER": {
		{StatusPending, StatusCancelled}: true,
	},
}

// AllowedFor reports whether the role may drive the from→to edge. ADMIN
// may drive any edge.
func AllowedFor(role string, from, to Status) bool {
	if role == "ADMIN" {
		return true
	}
	return allowedEdges[role][edge{from, to}]
}

// timestampColumn maps a target status to the orders column stamped on
// entry.
func timestampColumn(to Status) string {
	switch to {
	case StatusProcessing:
		return "processing_at"
	case StatusShipped:
		return "shipped_at"
	case StatusDelivered:
		return "delivered_at"
	case StatusCancelled:
		return "cancelled_at"
	}
	return ""
}
