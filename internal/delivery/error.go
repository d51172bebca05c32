package delivery

import "errors"

var (
	ErrAgentNotFound  = errors.New("delivery agent not found")
	ErrAgentInactive  = errors.New("delivery agent is not active")
	ErrOrderNotFound  = errors.New("order not found")
	ErrAlreadyClaimed = errors.New("order is already claimed")
	ErrNotClaimable   = errors.New("order is not ready for delivery")
)
