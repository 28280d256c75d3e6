package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sweetslice/go-backend/internal/domain"
	"github.com/sweetslice/go-backend/pkg/e"
)

// CATALOG

// Sort fields accepted by the catalog listing. Anything else falls back to createdAt.
const (
	SortCreatedAt = "createdAt"
	SortName      = "name"
	SortBasePrice = "basePrice"
	SortCategory  = "category"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ProductQuery carries the recognized catalog filter/sort/pagination options.
// Zero values mean "absent".
type ProductQuery struct {
	Category      string
	Search        string
	MinPriceCents *int64
	MaxPriceCents *int64
	Customizable  *bool
	Sort          string
	Order         string
	Page          int
	Limit         int
}

// Normalize validates the query and fills in defaults.
// Negative page or limit is rejected; zero means "use the default".
// An unknown sort field falls back to createdAt, and a blank search string
// means "no filter", never "match nothing".
func (q ProductQuery) Normalize() (ProductQuery, error) {
	if q.Page < 0 {
		return q, e.NewValidationError("page", "page must be at least 1")
	}
	if q.Limit < 0 {
		return q, e.NewValidationError("limit", "limit must be at least 1")
	}

	if q.Page == 0 {
		q.Page = defaultPage
	}
	if q.Limit == 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}

	switch q.Sort {
	case SortCreatedAt, SortName, SortBasePrice, SortCategory:
	default:
		q.Sort = SortCreatedAt
	}

	// Absent order means descending; any explicit value other than "desc"
	// sorts ascending, mirroring the storefront's original behavior.
	if q.Order == "" {
		q.Order = "desc"
	} else if q.Order != "desc" {
		q.Order = "asc"
	}

	q.Search = strings.TrimSpace(q.Search)
	q.Category = strings.TrimSpace(q.Category)

	return q, nil
}

// Offset returns the slice offset for the normalized page window.
func (q ProductQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Pagination is the metadata block returned with every catalog page.
type Pagination struct {
	Total      int64
	Page       int
	Limit      int
	TotalPages int64
}

// NewPagination computes totalPages = ceil(total/limit). Limit must be >= 1,
// which Normalize guarantees.
func NewPagination(total int64, page, limit int) Pagination {
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}
}

// ProductList is the result of a catalog listing.
type ProductList struct {
	Items      []domain.Product
	Pagination Pagination
}

// CreateProductReq carries a new product. Customizable defaults to true when nil.
type CreateProductReq struct {
	Name           string
	Category       string
	Description    string
	BasePriceCents int64
	Sizes          []string
	Flavors        []string
	Images         []string
	Customizable   *bool
}

// UpdateProductReq carries a partial product update.
// Nil fields are left untouched; supplied fields are re-validated.
type UpdateProductReq struct {
	Name           *string
	Category       *string
	Description    *string
	BasePriceCents *int64
	Sizes          *[]string
	Flavors        *[]string
	Images         *[]string
	Customizable   *bool
	Active         *bool
}

// IsEmpty reports whether the update carries no fields at all.
func (u *UpdateProductReq) IsEmpty() bool {
	return u.Name == nil && u.Category == nil && u.Description == nil &&
		u.BasePriceCents == nil && u.Sizes == nil && u.Flavors == nil &&
		u.Images == nil && u.Customizable == nil && u.Active == nil
}

// BulkUpdateItem is one independent partial update in a bulk request.
type BulkUpdateItem struct {
	ID   string
	Data UpdateProductReq
}

// BulkUpdateFailure reports why one bulk item was not applied.
type BulkUpdateFailure struct {
	ID     string
	Reason string
}

// BulkUpdateRes reports best-effort bulk update results.
// Updated + len(Failures) == Attempted; nothing is rolled back.
type BulkUpdateRes struct {
	Attempted int
	Updated   int
	Failures  []BulkUpdateFailure
}

// ProductImage represents an image uploaded via multipart/form-data.
type ProductImage struct {
	Data     []byte // raw image bytes
	MimeType string // Content-Type from the multipart part (image/jpeg)
	Size     int64  // actual size in bytes
	Name     string // original file name (for logs)
}

// UploadImagesReq is a request to store product images.
type UploadImagesReq struct {
	Name   string
	Images []ProductImage
}

// UploadImagesRes holds object keys and public URLs of stored images.
type UploadImagesRes struct {
	ImagesKeys []string
	ImagesURLs []string
}

// CART

// AddToCartReq adds quantity of a product with a customization to a session cart.
type AddToCartReq struct {
	ProductID     string
	Quantity      int
	Customization domain.Customization
}

// CartView is the cart state returned to the client.
type CartView struct {
	Lines      []domain.CartLine
	TotalCents int64
	Count      int
}

func NewCartView(cart *domain.Cart) *CartView {
	return &CartView{
		Lines:      cart.Lines,
		TotalCents: cart.TotalCents(),
		Count:      cart.Count(),
	}
}

// AUTH / USERS

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

func (p *Principal) IsAdmin() bool {
	return p.Role == domain.RoleAdmin
}

type RegisterReq struct {
	Name     string
	Email    string
	Password string
}

type LoginReq struct {
	Email    string
	Password string
}

// UserInfo is the user DTO exposed to clients; it never carries the password hash.
type UserInfo struct {
	ID        string
	Name      string
	Email     string
	Role      string
	Active    bool
	CreatedAt time.Time
}

func NewUserInfo(u *domain.User) UserInfo {
	return UserInfo{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// AuthRes is returned by register and login.
type AuthRes struct {
	User  UserInfo
	Token string
}

// UpdateProfileReq updates the caller's own profile.
// Empty strings mean "leave unchanged"; changing the password requires
// the current one.
type UpdateProfileReq struct {
	Name            string
	Email           string
	Password        string
	CurrentPassword string
}

// UserQuery filters the admin user listing.
type UserQuery struct {
	Search string
	Page   int
	Limit  int
}

// Normalize fills defaults the same way the catalog query does.
func (q UserQuery) Normalize() (UserQuery, error) {
	if q.Page < 0 {
		return q, e.NewValidationError("page", "page must be at least 1")
	}
	if q.Limit < 0 {
		return q, e.NewValidationError("limit", "limit must be at least 1")
	}
	if q.Page == 0 {
		q.Page = defaultPage
	}
	if q.Limit == 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	q.Search = strings.TrimSpace(q.Search)
	return q, nil
}

func (q UserQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// UserList is the result of the admin user listing.
type UserList struct {
	Items      []UserInfo
	Pagination Pagination
}

// AdminUpdateUserReq is the admin's partial update of another user.
type AdminUpdateUserReq struct {
	Name   *string
	Email  *string
	Role   *string
	Active *bool
}

// ORDERS

type CreateOrderReq struct {
	CakeType            string
	Size                string
	Flavor              string
	Message             string
	SpecialInstructions string
	DeliveryDate        time.Time
	DeliveryTime        string
	PriceCents          int64
}

// UpdateOrderReq is a partial update of the caller's own order.
type UpdateOrderReq struct {
	CakeType            *string
	Size                *string
	Flavor              *string
	Message             *string
	SpecialInstructions *string
	DeliveryDate        *time.Time
	DeliveryTime        *string
	Status              *string
	PriceCents          *int64
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	ProductCreated  OutboxEventType = "product.created"
	ProductUpdated  OutboxEventType = "product.updated"
	ProductArchived OutboxEventType = "product.archived"
	OrderCreated    OutboxEventType = "order.created"
	OrderUpdated    OutboxEventType = "order.updated"
)

// OutboxEvent is a domain event recorded transactionally with the write that
// produced it, published to Kafka by the outbox worker.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	EntityID    string
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

func NewOutboxEvent(eventType OutboxEventType, entityID string, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		EntityID:  entityID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}
}

// WriteRawMessageReq is a pre-serialized message for the producer.
type WriteRawMessageReq struct {
	Key     string
	Payload []byte
}

func NewWriteRawMessageReq(key string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{Key: key, Payload: payload}
}
