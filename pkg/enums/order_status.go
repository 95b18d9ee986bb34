package enums

import "fmt"

// OrderStatus tracks the fulfillment lifecycle of a placed order.
type OrderStatus string

const (
	OrderStatusPreparing  OrderStatus = "preparing"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDelivering OrderStatus = "delivering"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusDelivering,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (o OrderStatus) IsTerminal() bool {
	return o == OrderStatusCompleted || o == OrderStatusCancelled
}

// Next returns the forward fulfillment step, or false from a terminal status.
func (o OrderStatus) Next() (OrderStatus, bool) {
	switch o {
	case OrderStatusPreparing:
		return OrderStatusReady, true
	case OrderStatusReady:
		return OrderStatusDelivering, true
	case OrderStatusDelivering:
		return OrderStatusCompleted, true
	default:
		return "", false
	}
}

// CanTransitionTo reports whether moving to target is a legal status change.
// Forward steps advance one at a time; cancellation is allowed from any
// non-terminal status.
func (o OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if !o.IsValid() || !target.IsValid() || o.IsTerminal() {
		return false
	}
	if target == OrderStatusCancelled {
		return true
	}
	next, ok := o.Next()
	return ok && next == target
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
