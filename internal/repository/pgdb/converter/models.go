package converter

import "time"

// ProductModel represents a row of the products table.
type ProductModel struct {
	ID           string     `db:"id"`
	Name         string     `db:"name"`
	Category     string     `db:"category"`
	Description  string     `db:"description"`
	BasePrice    int64      `db:"base_price"`
	Sizes        []string   `db:"sizes"`
	Flavors      []string   `db:"flavors"`
	Images       []string   `db:"images"`
	Customizable bool       `db:"customizable"`
	Active       bool       `db:"active"`
	Seq          int64      `db:"seq"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at"`
}

// UserModel represents a row of the users table.
type UserModel struct {
	ID           string     `db:"id"`
	Name         string     `db:"name"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Role         string     `db:"role"`
	Active       bool       `db:"active"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at"`
}

// OrderModel represents a row of the orders table.
type OrderModel struct {
	ID                  string     `db:"id"`
	UserID              string     `db:"user_id"`
	CakeType            string     `db:"cake_type"`
	Size                string     `db:"size"`
	Flavor              string     `db:"flavor"`
	Message             string     `db:"message"`
	SpecialInstructions string     `db:"special_instructions"`
	DeliveryDate        time.Time  `db:"delivery_date"`
	DeliveryTime        string     `db:"delivery_time"`
	Status              string     `db:"status"`
	Price               int64      `db:"price"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           *time.Time `db:"updated_at"`
}

// OutboxEventModel represents a row of the outbox_events table.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	EntityID    string     `db:"entity_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
