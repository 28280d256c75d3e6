package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetslice/go-backend/internal/domain"
	"github.com/sweetslice/go-backend/pkg/e"
)

func testProduct(id, name string, priceCents int64) *domain.Product {
	p := domain.NewProduct(id, name, domain.CategoryBirthday, "a cake", priceCents)
	p.CreatedAt = time.Now()
	return p
}

func newTestCartUC(products ...*domain.Product) (*CartUseCase, *fakeCartStore) {
	store := newFakeCartStore()
	return NewCartUC(store, newFakeProductRepo(products...), nopLogger{}), store
}

func TestCartUC_GetCart_EmptySession(t *testing.T) {
	uc, _ := newTestCartUC()

	view, err := uc.GetCart(context.Background(), "s1")

	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Equal(t, int64(0), view.TotalCents)
	assert.Equal(t, 0, view.Count)
}

func TestCartUC_AddToCart_UnknownProduct(t *testing.T) {
	uc, _ := newTestCartUC()

	_, err := uc.AddToCart(context.Background(), "s1", &AddToCartReq{ProductID: "missing", Quantity: 1})

	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestCartUC_AddToCart_InactiveProduct(t *testing.T) {
	p := testProduct("p1", "Fudge Cake", 4599)
	p.Active = false
	uc, _ := newTestCartUC(p)

	_, err := uc.AddToCart(context.Background(), "s1", &AddToCartReq{ProductID: "p1", Quantity: 1})

	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestCartUC_AddToCart_SnapshotsPriceAndMerges(t *testing.T) {
	uc, _ := newTestCartUC(testProduct("p1", "Fudge Cake", 4599))
	custom := domain.Customization{Size: "Large", Flavor: "Chocolate"}

	view, err := uc.AddToCart(context.Background(), "s1", &AddToCartReq{ProductID: "p1", Quantity: 1, Customization: custom})
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, int64(4599), view.Lines[0].UnitPriceCents)
	assert.Equal(t, "Fudge Cake", view.Lines[0].Name)

	view, err = uc.AddToCart(context.Background(), "s1", &AddToCartReq{ProductID: "p1", Quantity: 2, Customization: custom})
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 3, view.Lines[0].Quantity)
	assert.Equal(t, int64(13797), view.TotalCents)
}

func TestCartUC_AddToCart_PersistsAcrossInstances(t *testing.T) {
	store := newFakeCartStore()
	repo := newFakeProductRepo(testProduct("p1", "Fudge Cake", 4599))

	uc := NewCartUC(store, repo, nopLogger{})
	_, err := uc.AddToCart(context.Background(), "s1", &AddToCartReq{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	// A fresh use case over the same store sees the snapshot.
	uc2 := NewCartUC(store, repo, nopLogger{})
	view, err := uc2.GetCart(context.Background(), "s1")

	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Lines[0].Quantity)
}

func TestCartUC_SessionsAreIsolated(t *testing.T) {
	uc, _ := newTestCartUC(testProduct("p1", "Fudge Cake", 4599))

	_, err := uc.AddToCart(context.Background(), "s1", &AddToCartReq{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)

	view, err := uc.GetCart(context.Background(), "s2")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCartUC_CorruptSnapshotFailsOpenToEmpty(t *testing.T) {
	uc, store := newTestCartUC()
	store.data["s1"] = []byte("{not json")

	view, err := uc.GetCart(context.Background(), "s1")

	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCartUC_StoreReadFailureFailsOpenToEmpty(t *testing.T) {
	uc, store := newTestCartUC()
	store.getErr = errors.New("connection refused")

	view, err := uc.GetCart(context.Background(), "s1")

	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCartUC_StoreWriteFailurePropagates(t *testing.T) {
	uc, store := newTestCartUC(testProduct("p1", "Fudge Cake", 4599))
	store.setErr = errors.New("connection refused")

	_, err := uc.AddToCart(context.Background(), "s1", &AddToCartReq{ProductID: "p1", Quantity: 1})

	assert.Error(t, err)
}

func TestCartUC_UpdateQuantity(t *testing.T) {
	uc, _ := newTestCartUC(testProduct("p1", "Fudge Cake", 4599))
	custom := domain.Customization{Size: "Large"}

	_, err := uc.AddToCart(context.Background(), "s1", &AddToCartReq{ProductID: "p1", Quantity: 1, Customization: custom})
	require.NoError(t, err)

	view, err := uc.UpdateQuantity(context.Background(), "s1", "p1", custom, 5)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 5, view.Lines[0].Quantity)
}

func TestCartUC_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	uc, _ := newTestCartUC(testProduct("p1", "Fudge Cake", 4599))
	custom := domain.Customization{Size: "Large"}

	_, err := uc.AddToCart(context.Background(), "s1", &AddToCartReq{ProductID: "p1", Quantity: 2, Customization: custom})
	require.NoError(t, err)

	view, err := uc.UpdateQuantity(context.Background(), "s1", "p1", custom, 0)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCartUC_RemoveFromCart_AbsentLineIsNoop(t *testing.T) {
	uc, _ := newTestCartUC(testProduct("p1", "Fudge Cake", 4599))

	_, err := uc.AddToCart(context.Background(), "s1", &AddToCartReq{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)

	view, err := uc.RemoveFromCart(context.Background(), "s1", "p1", domain.Customization{Size: "Small"})
	require.NoError(t, err)
	assert.Len(t, view.Lines, 1)
}

func TestCartUC_ClearCart(t *testing.T) {
	uc, store := newTestCartUC(testProduct("p1", "Fudge Cake", 4599))

	_, err := uc.AddToCart(context.Background(), "s1", &AddToCartReq{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, uc.ClearCart(context.Background(), "s1"))

	assert.NotContains(t, store.data, "s1")

	view, err := uc.GetCart(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}
