// Customer orders and their lifecycle state machine.

package sim

import "fmt"

// OrderPriority is the customer-facing urgency of an order.
type OrderPriority string

const (
	PriorityLow    OrderPriority = "low"
	PriorityMedium OrderPriority = "medium"
	PriorityHigh   OrderPriority = "high"
	PriorityUrgent OrderPriority = "urgent"
)

// orderPriorities lists all priorities for uniform random selection.
var orderPriorities = []OrderPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// DeadlineMillis returns the fulfillment horizon granted to an order of
// this priority, in simulated milliseconds.
func (p OrderPriority) DeadlineMillis() int64 {
	const minute = 60 * 1000
	switch p {
	case PriorityUrgent:
		return 60 * minute
	case PriorityHigh:
		return 180 * minute
	case PriorityMedium:
		return 360 * minute
	default: // low
		return 480 * minute
	}
}

// TaskPriority maps the order priority onto the numeric task scale.
func (p OrderPriority) TaskPriority() int {
	switch p {
	case PriorityUrgent:
		return 10
	case PriorityHigh:
		return 7
	case PriorityMedium:
		return 5
	default: // low
		return 3
	}
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPicking   OrderStatus = "picking"
	OrderPacking   OrderStatus = "packing"
	OrderShipped   OrderStatus = "shipped"
	OrderCancelled OrderStatus = "cancelled"
)

// orderTransitions is the complete transition table. shipped and
// cancelled are terminal; cancellation is reachable from any live state
// even though no core policy currently triggers it.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderPicking, OrderCancelled},
	OrderPicking:   {OrderPacking, OrderCancelled},
	OrderPacking:   {OrderShipped, OrderCancelled},
	OrderShipped:   {},
	OrderCancelled: {},
}

// OrderLine is one (item, quantity) entry of an order.
type OrderLine struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// Order is one customer order. Orders enter the active set when
// generated and are never removed by the core; status tracks progress.
type Order struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customerId"`
	Lines      []OrderLine   `json:"items"`
	Priority   OrderPriority `json:"priority"`
	Deadline   int64         `json:"deadline"`
	CreatedAt  int64         `json:"createdAt"`
	Status     OrderStatus   `json:"status"`
}

// Transition moves the order to the requested status, enforcing the
// transition table.
func (o *Order) Transition(to OrderStatus) error {
	for _, allowed := range orderTransitions[o.Status] {
		if allowed == to {
			o.Status = to
			return nil
		}
	}
	return fmt.Errorf("order %s: illegal transition %s -> %s", o.ID, o.Status, to)
}

// cloneOrders deep-copies an order slice.
func cloneOrders(orders []Order) []Order {
	out := make([]Order, len(orders))
	copy(out, orders)
	for i := range out {
		if out[i].Lines != nil {
			lines := make([]OrderLine, len(out[i].Lines))
			copy(lines, out[i].Lines)
			out[i].Lines = lines
		}
	}
	return out
}
