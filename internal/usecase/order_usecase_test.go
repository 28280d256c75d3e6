package usecase

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetslice/go-backend/internal/domain"
	"github.com/sweetslice/go-backend/pkg/e"
)

type fakeOrderRepo struct {
	orders map[string]*domain.Order
}

func newFakeOrderRepo(orders ...*domain.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{orders: make(map[string]*domain.Order)}
	for _, o := range orders {
		repo.orders[o.ID] = o
	}
	return repo
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	cp := *order
	cp.CreatedAt = time.Now()
	f.orders[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeOrderRepo) GetByUser(_ context.Context, id, userID string) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok || o.UserID != userID {
		return nil, e.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeOrderRepo) Update(_ context.Context, order *domain.Order) (*domain.Order, error) {
	existing, ok := f.orders[order.ID]
	if !ok || existing.UserID != order.UserID {
		return nil, e.ErrOrderNotFound
	}
	cp := *order
	f.orders[order.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, id, userID string) error {
	o, ok := f.orders[id]
	if !ok || o.UserID != userID {
		return e.ErrOrderNotFound
	}
	delete(f.orders, id)
	return nil
}

func ordersFixture() *fakeOrderRepo {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	annOrder := domain.NewOrder("o1", "ann")
	annOrder.CakeType = domain.CategoryBirthday
	annOrder.Size = domain.SizeLarge
	annOrder.Flavor = "Chocolate"
	annOrder.DeliveryDate = base.AddDate(1, 0, 0)
	annOrder.DeliveryTime = "14:00"
	annOrder.PriceCents = 4599
	annOrder.CreatedAt = base

	bobOrder := domain.NewOrder("o2", "bob")
	bobOrder.CakeType = domain.CategoryWedding
	bobOrder.Size = domain.SizeExtraLarge
	bobOrder.Flavor = "Vanilla"
	bobOrder.DeliveryDate = base.AddDate(1, 0, 0)
	bobOrder.DeliveryTime = "10:00"
	bobOrder.PriceCents = 28900
	bobOrder.CreatedAt = base.Add(time.Hour)

	return newFakeOrderRepo(annOrder, bobOrder)
}

func TestOrderUC_CreateOrder_Validation(t *testing.T) {
	valid := func() *CreateOrderReq {
		return &CreateOrderReq{
			CakeType:     domain.CategoryBirthday,
			Size:         domain.SizeLarge,
			Flavor:       "Chocolate",
			DeliveryDate: time.Now().AddDate(0, 1, 0),
			DeliveryTime: "14:00",
			PriceCents:   4599,
		}
	}

	tests := []struct {
		name   string
		mutate func(*CreateOrderReq)
		field  string
	}{
		{"bad cake type", func(r *CreateOrderReq) { r.CakeType = "Savory" }, "cakeType"},
		{"bad size", func(r *CreateOrderReq) { r.Size = "Gigantic" }, "size"},
		{"blank flavor", func(r *CreateOrderReq) { r.Flavor = "  " }, "flavor"},
		{"zero delivery date", func(r *CreateOrderReq) { r.DeliveryDate = time.Time{} }, "deliveryDate"},
		{"blank delivery time", func(r *CreateOrderReq) { r.DeliveryTime = "" }, "deliveryTime"},
		{"zero price", func(r *CreateOrderReq) { r.PriceCents = 0 }, "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewOrderUC(ordersFixture(), nil, nil, nopLogger{})
			req := valid()
			tt.mutate(req)

			_, err := uc.CreateOrder(context.Background(), &Principal{UserID: "ann"}, req)

			var vErr *e.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestOrderUC_ListOrders_ScopedToOwner(t *testing.T) {
	uc := NewOrderUC(ordersFixture(), nil, nil, nopLogger{})

	orders, err := uc.ListOrders(context.Background(), &Principal{UserID: "ann"})

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)
}

func TestOrderUC_UpdateOrder_SomeoneElsesOrderIsNotFound(t *testing.T) {
	uc := NewOrderUC(ordersFixture(), nil, nil, nopLogger{})

	status := domain.OrderCancelled
	_, err := uc.UpdateOrder(context.Background(), &Principal{UserID: "ann"}, "o2", &UpdateOrderReq{Status: &status})

	assert.ErrorIs(t, err, e.ErrOrderNotFound)
}

func TestOrderUC_UpdateOrder_Validation(t *testing.T) {
	pastDate := time.Now().AddDate(0, 0, -1)
	badStatus := "Shipped"
	badPrice := int64(-1)
	blankFlavor := " "

	tests := []struct {
		name  string
		req   UpdateOrderReq
		field string
	}{
		{"past delivery date", UpdateOrderReq{DeliveryDate: &pastDate}, "deliveryDate"},
		{"unknown status", UpdateOrderReq{Status: &badStatus}, "status"},
		{"negative price", UpdateOrderReq{PriceCents: &badPrice}, "price"},
		{"blank flavor", UpdateOrderReq{Flavor: &blankFlavor}, "flavor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewOrderUC(ordersFixture(), nil, nil, nopLogger{})

			_, err := uc.UpdateOrder(context.Background(), &Principal{UserID: "ann"}, "o1", &tt.req)

			var vErr *e.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestOrderUC_DeleteOrder(t *testing.T) {
	repo := ordersFixture()
	uc := NewOrderUC(repo, nil, nil, nopLogger{})

	require.NoError(t, uc.DeleteOrder(context.Background(), &Principal{UserID: "ann"}, "o1"))

	_, err := repo.GetByUser(context.Background(), "o1", "ann")
	assert.ErrorIs(t, err, e.ErrOrderNotFound)
}

func TestOrderUC_DeleteOrder_SomeoneElsesOrderIsNotFound(t *testing.T) {
	uc := NewOrderUC(ordersFixture(), nil, nil, nopLogger{})

	err := uc.DeleteOrder(context.Background(), &Principal{UserID: "ann"}, "o2")

	assert.ErrorIs(t, err, e.ErrOrderNotFound)
}
