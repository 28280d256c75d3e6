package usecase

import (
	"context"

	"github.com/sweetslice/go-backend/internal/domain"
)

type ProductUC interface {
	ListProducts(ctx context.Context, q ProductQuery) (*ProductList, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListSizes(ctx context.Context) ([]string, error)
	ListFlavors(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, req *UpdateProductReq) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	BulkUpdateProducts(ctx context.Context, items []BulkUpdateItem) (*BulkUpdateRes, error)
	UploadProductImages(ctx context.Context, id string, images []ProductImage) (*domain.Product, error)
}

type CartUC interface {
	GetCart(ctx context.Context, sessionID string) (*CartView, error)
	AddToCart(ctx context.Context, sessionID string, req *AddToCartReq) (*CartView, error)
	RemoveFromCart(ctx context.Context, sessionID, productID string, custom domain.Customization) (*CartView, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, custom domain.Customization, quantity int) (*CartView, error)
	ClearCart(ctx context.Context, sessionID string) error
}

type AuthUC interface {
	Register(ctx context.Context, req *RegisterReq) (*AuthRes, error)
	Login(ctx context.Context, req *LoginReq) (*AuthRes, error)
	Me(ctx context.Context, principal *Principal) (*UserInfo, error)
}

type UserUC interface {
	GetProfile(ctx context.Context, principal *Principal) (*UserInfo, error)
	UpdateProfile(ctx context.Context, principal *Principal, req *UpdateProfileReq) (*UserInfo, error)
	DeleteProfile(ctx context.Context, principal *Principal) error
	ListUsers(ctx context.Context, q UserQuery) (*UserList, error)
	GetUser(ctx context.Context, id string) (*UserInfo, error)
	UpdateUser(ctx context.Context, principal *Principal, id string, req *AdminUpdateUserReq) (*UserInfo, error)
	DeleteUser(ctx context.Context, principal *Principal, id string) error
	ChangeUserPassword(ctx context.Context, principal *Principal, id, newPassword string) error
}

type OrderUC interface {
	CreateOrder(ctx context.Context, principal *Principal, req *CreateOrderReq) (*domain.Order, error)
	ListOrders(ctx context.Context, principal *Principal) ([]domain.Order, error)
	UpdateOrder(ctx context.Context, principal *Principal, id string, req *UpdateOrderReq) (*domain.Order, error)
	DeleteOrder(ctx context.Context, principal *Principal, id string) error
}
