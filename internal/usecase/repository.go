package usecase

import (
	"context"

	"github.com/sweetslice/go-backend/internal/domain"
)

type ProductRepository interface {
	// List returns the page of matching active products plus the total match
	// count computed independent of the page window.
	List(ctx context.Context, q ProductQuery) ([]domain.Product, int64, error)
	// GetByID resolves an active product; inactive or missing ids return ErrProductNotFound.
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// GetAny resolves a product regardless of its active flag (admin visibility).
	GetAny(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, req UpdateProductReq) (*domain.Product, error)
	// Archive soft-deletes: sets active=false, never removes the row.
	Archive(ctx context.Context, id string) error
	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctSizes(ctx context.Context) ([]string, error)
	DistinctFlavors(ctx context.Context) ([]string, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, q UserQuery) ([]domain.User, int64, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// GetByUser resolves an order only when it belongs to userID.
	GetByUser(ctx context.Context, id, userID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, id, userID string) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	// GetProduct returns (nil, nil) on a cache miss.
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
	DeleteProducts(ctx context.Context, ids []string) error
}

// CartStore is the durable per-session key-value slot holding cart snapshots.
type CartStore interface {
	// Get returns the stored snapshot, or nil when nothing is stored.
	Get(ctx context.Context, sessionID string) ([]byte, error)
	Set(ctx context.Context, sessionID string, snapshot []byte) error
	Delete(ctx context.Context, sessionID string) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}
