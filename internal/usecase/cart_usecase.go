package usecase

import (
	"context"
	"encoding/json"

	"github.com/sweetslice/go-backend/internal/domain"
	"github.com/sweetslice/go-backend/pkg/e"
	"github.com/sweetslice/go-backend/pkg/logger"
)

// CartUseCase maintains the consolidated cart of one session. Every mutation
// persists the full snapshot to the cart store; a corrupt or missing snapshot
// rehydrates as an empty cart, never as an error.
type CartUseCase struct {
	store       CartStore
	productRepo ProductRepository
	logger      logger.Logger
}

func NewCartUC(store CartStore, productRepo ProductRepository, logger logger.Logger) *CartUseCase {
	return &CartUseCase{
		store:       store,
		productRepo: productRepo,
		logger:      logger,
	}
}

// GetCart rehydrates the session's cart.
func (c *CartUseCase) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	return NewCartView(c.load(ctx, sessionID)), nil
}

// AddToCart merges quantity into the line with the same
// (product, customization) or appends a new line with the unit price
// snapshotted from the product's current base price.
func (c *CartUseCase) AddToCart(ctx context.Context, sessionID string, req *AddToCartReq) (*CartView, error) {
	const op = "CartUseCase.AddToCart"

	product, err := c.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	cart := c.load(ctx, sessionID)
	cart.Add(product.ID, product.Name, product.BasePriceCents, quantity, req.Customization)

	if err := c.save(ctx, sessionID, cart); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewCartView(cart), nil
}

// RemoveFromCart removes the exact matching line; removing an absent line is
// a no-op, not an error.
func (c *CartUseCase) RemoveFromCart(ctx context.Context, sessionID, productID string, custom domain.Customization) (*CartView, error) {
	const op = "CartUseCase.RemoveFromCart"

	cart := c.load(ctx, sessionID)
	cart.Remove(productID, custom)

	if err := c.save(ctx, sessionID, cart); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewCartView(cart), nil
}

// UpdateQuantity sets the quantity on the matching line. A quantity below 1
// removes the line.
func (c *CartUseCase) UpdateQuantity(ctx context.Context, sessionID, productID string, custom domain.Customization, quantity int) (*CartView, error) {
	const op = "CartUseCase.UpdateQuantity"

	cart := c.load(ctx, sessionID)
	cart.SetQuantity(productID, custom, quantity)

	if err := c.save(ctx, sessionID, cart); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewCartView(cart), nil
}

// ClearCart drops the session's cart entirely, e.g. after checkout.
func (c *CartUseCase) ClearCart(ctx context.Context, sessionID string) error {
	const op = "CartUseCase.ClearCart"

	if err := c.store.Delete(ctx, sessionID); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// load rehydrates the stored snapshot, failing open to an empty cart on any
// read or decode problem.
func (c *CartUseCase) load(ctx context.Context, sessionID string) *domain.Cart {
	const op = "CartUseCase.load"

	data, err := c.store.Get(ctx, sessionID)
	if err != nil {
		c.logger.Warnf("cart store read failed, starting empty: %v", e.Wrap(op, err))
		return domain.NewCart()
	}
	if data == nil {
		return domain.NewCart()
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		c.logger.Warnf("corrupt cart snapshot for session %s, starting empty: %v", sessionID, err)
		return domain.NewCart()
	}
	if cart.Lines == nil {
		cart.Lines = []domain.CartLine{}
	}

	return &cart
}

func (c *CartUseCase) save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	return c.store.Set(ctx, sessionID, data)
}
