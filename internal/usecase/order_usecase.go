package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sweetslice/go-backend/internal/domain"
	"github.com/sweetslice/go-backend/pkg/e"
	"github.com/sweetslice/go-backend/pkg/logger"
)

// OrderUseCase implements order management scoped to the order's owner.
// Creation and updates record an event in the outbox within the same
// transaction as the order write.
type OrderUseCase struct {
	orderRepo  OrderRepository
	outboxRepo OutboxRepository
	dbPool     transaction.Transactional
	logger     logger.Logger
}

func NewOrderUC(
	orderRepo OrderRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:  orderRepo,
		outboxRepo: outboxRepo,
		dbPool:     dbPool,
		logger:     logger,
	}
}

// CreateOrder validates and stores a new order owned by the caller.
func (o *OrderUseCase) CreateOrder(ctx context.Context, principal *Principal, req *CreateOrderReq) (*domain.Order, error) {
	const op = "OrderUseCase.CreateOrder"

	var err error
	if err = validateOrder(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	order := domain.NewOrder(uuid.NewString(), principal.UserID)
	order.CakeType = req.CakeType
	order.Size = req.Size
	order.Flavor = req.Flavor
	order.Message = req.Message
	order.SpecialInstructions = req.SpecialInstructions
	order.DeliveryDate = req.DeliveryDate
	order.DeliveryTime = req.DeliveryTime
	order.PriceCents = req.PriceCents

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, o.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	created, err := o.orderRepo.Create(ctx, order)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = o.recordOrderEvent(ctx, OrderCreated, created); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return created, nil
}

// ListOrders returns the caller's orders.
func (o *OrderUseCase) ListOrders(ctx context.Context, principal *Principal) ([]domain.Order, error) {
	const op = "OrderUseCase.ListOrders"

	orders, err := o.orderRepo.ListByUser(ctx, principal.UserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return orders, nil
}

// UpdateOrder applies a partial update to one of the caller's own orders.
// Orders belonging to someone else resolve as NotFound, not Forbidden.
func (o *OrderUseCase) UpdateOrder(ctx context.Context, principal *Principal, id string, req *UpdateOrderReq) (*domain.Order, error) {
	const op = "OrderUseCase.UpdateOrder"

	var err error
	order, err := o.orderRepo.GetByUser(ctx, id, principal.UserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = applyOrderUpdate(order, req); err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, o.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	updated, err := o.orderRepo.Update(ctx, order)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = o.recordOrderEvent(ctx, OrderUpdated, updated); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return updated, nil
}

// DeleteOrder removes one of the caller's own orders.
func (o *OrderUseCase) DeleteOrder(ctx context.Context, principal *Principal, id string) error {
	const op = "OrderUseCase.DeleteOrder"

	if err := o.orderRepo.Delete(ctx, id, principal.UserID); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (o *OrderUseCase) recordOrderEvent(ctx context.Context, eventType OutboxEventType, order *domain.Order) error {
	payload, err := json.Marshal(map[string]any{
		"order_id":    order.ID,
		"user_id":     order.UserID,
		"status":      order.Status,
		"price_cents": order.PriceCents,
	})
	if err != nil {
		return err
	}

	_, err = o.outboxRepo.Create(ctx, NewOutboxEvent(eventType, order.ID, payload))
	return err
}

func applyOrderUpdate(order *domain.Order, req *UpdateOrderReq) error {
	if req.CakeType != nil {
		if !domain.ValidCategory(*req.CakeType) {
			return e.NewValidationError("cakeType", "invalid cake type")
		}
		order.CakeType = *req.CakeType
	}
	if req.Size != nil {
		if !domain.ValidSize(*req.Size) {
			return e.NewValidationError("size", "invalid size")
		}
		order.Size = *req.Size
	}
	if req.Flavor != nil {
		if strings.TrimSpace(*req.Flavor) == "" {
			return e.NewValidationError("flavor", "flavor is required")
		}
		order.Flavor = *req.Flavor
	}
	if req.Message != nil {
		order.Message = *req.Message
	}
	if req.SpecialInstructions != nil {
		order.SpecialInstructions = *req.SpecialInstructions
	}
	if req.DeliveryDate != nil {
		if req.DeliveryDate.Before(time.Now()) {
			return e.NewValidationError("deliveryDate", "delivery date must be in the future")
		}
		order.DeliveryDate = *req.DeliveryDate
	}
	if req.DeliveryTime != nil {
		if strings.TrimSpace(*req.DeliveryTime) == "" {
			return e.NewValidationError("deliveryTime", "delivery time is required")
		}
		order.DeliveryTime = *req.DeliveryTime
	}
	if req.Status != nil {
		if !domain.ValidOrderStatus(*req.Status) {
			return e.NewValidationError("status", "invalid status")
		}
		order.Status = *req.Status
	}
	if req.PriceCents != nil {
		if *req.PriceCents <= 0 {
			return e.NewValidationError("price", "valid price is required")
		}
		order.PriceCents = *req.PriceCents
	}
	return nil
}

func validateOrder(req *CreateOrderReq) error {
	if !domain.ValidCategory(req.CakeType) {
		return e.NewValidationError("cakeType", "cake type is required")
	}
	if !domain.ValidSize(req.Size) {
		return e.NewValidationError("size", "size is required")
	}
	if strings.TrimSpace(req.Flavor) == "" {
		return e.NewValidationError("flavor", "flavor is required")
	}
	if req.DeliveryDate.IsZero() {
		return e.NewValidationError("deliveryDate", "valid delivery date is required")
	}
	if strings.TrimSpace(req.DeliveryTime) == "" {
		return e.NewValidationError("deliveryTime", "delivery time is required")
	}
	if req.PriceCents <= 0 {
		return e.NewValidationError("price", "valid price is required")
	}
	return nil
}
