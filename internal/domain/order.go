package domain

import "time"

// Order statuses.
const (
	OrderPending    = "Pending"
	OrderConfirmed  = "Confirmed"
	OrderInProgress = "In Progress"
	OrderCompleted  = "Completed"
	OrderCancelled  = "Cancelled"
)

var orderStatuses = []string{OrderPending, OrderConfirmed, OrderInProgress, OrderCompleted, OrderCancelled}

// Order describes a customer's cake order.
type Order struct {
	ID                  string
	UserID              string
	CakeType            string
	Size                string
	Flavor              string
	Message             string
	SpecialInstructions string
	DeliveryDate        time.Time
	DeliveryTime        string
	Status              string
	PriceCents          int64 // price is stored in cents
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}

func NewOrder(id, userID string) *Order {
	return &Order{
		ID:     id,
		UserID: userID,
		Status: OrderPending,
	}
}

// ValidOrderStatus reports whether status belongs to the allowed set.
func ValidOrderStatus(status string) bool {
	for _, s := range orderStatuses {
		if s == status {
			return true
		}
	}
	return false
}
