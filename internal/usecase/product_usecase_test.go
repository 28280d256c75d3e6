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

func catalogFixture() *fakeProductRepo {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	fudge := domain.NewProduct("p1", "Fudge Cake", domain.CategoryBirthday, "rich chocolate layers", 4599)
	fudge.CreatedAt = base
	fudge.Sizes = []string{domain.SizeSmall, domain.SizeLarge}
	fudge.Flavors = []string{"Chocolate"}

	wedding := domain.NewProduct("p2", "Tiered Classic", domain.CategoryWedding, "three tiers of vanilla", 28900)
	wedding.CreatedAt = base.Add(24 * time.Hour)
	wedding.Sizes = []string{domain.SizeExtraLarge}
	wedding.Flavors = []string{"Vanilla"}

	cupcakes := domain.NewProduct("p3", "Cupcake Box", domain.CategoryCupcakes, "a dozen chocolate cupcakes", 1800)
	cupcakes.CreatedAt = base.Add(48 * time.Hour)
	cupcakes.Customizable = false
	cupcakes.Sizes = []string{domain.SizeTwelvePack}
	cupcakes.Flavors = []string{"Chocolate", "Vanilla"}

	archived := domain.NewProduct("p4", "Retired Cake", domain.CategoryBirthday, "no longer sold", 9900)
	archived.CreatedAt = base.Add(72 * time.Hour)
	archived.Active = false

	return newFakeProductRepo(fudge, wedding, cupcakes, archived)
}

func newTestProductUC(repo *fakeProductRepo, cache *fakeCacheRepo) *ProductUseCase {
	if cache == nil {
		cache = newFakeCacheRepo()
	}
	return NewProductUC(repo, nil, nil, nil, cache, nopLogger{})
}

func productIDs(items []domain.Product) []string {
	ids := make([]string, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestProductUC_ListProducts_ExcludesInactive(t *testing.T) {
	uc := newTestProductUC(catalogFixture(), nil)

	list, err := uc.ListProducts(context.Background(), ProductQuery{})

	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Pagination.Total)
	assert.NotContains(t, productIDs(list.Items), "p4")
}

func TestProductUC_ListProducts_DefaultOrderIsNewestFirst(t *testing.T) {
	uc := newTestProductUC(catalogFixture(), nil)

	list, err := uc.ListProducts(context.Background(), ProductQuery{})

	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p2", "p1"}, productIDs(list.Items))
}

func TestProductUC_ListProducts_Filters(t *testing.T) {
	minPrice := int64(2000)
	maxPrice := int64(5000)
	customizable := false

	tests := []struct {
		name  string
		query ProductQuery
		want  []string
	}{
		{"category", ProductQuery{Category: domain.CategoryWedding}, []string{"p2"}},
		{"unknown category", ProductQuery{Category: "Savory"}, []string{}},
		{"search over name", ProductQuery{Search: "fudge"}, []string{"p1"}},
		{"search over description", ProductQuery{Search: "chocolate", Order: "asc"}, []string{"p1", "p3"}},
		{"min price", ProductQuery{MinPriceCents: &minPrice}, []string{"p2", "p1"}},
		{"max price", ProductQuery{MaxPriceCents: &maxPrice, Order: "asc"}, []string{"p1", "p3"}},
		{"price band", ProductQuery{MinPriceCents: &minPrice, MaxPriceCents: &maxPrice}, []string{"p1"}},
		{"customizable false", ProductQuery{Customizable: &customizable}, []string{"p3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestProductUC(catalogFixture(), nil)

			list, err := uc.ListProducts(context.Background(), tt.query)

			require.NoError(t, err)
			assert.Equal(t, tt.want, productIDs(list.Items))
			assert.Equal(t, int64(len(tt.want)), list.Pagination.Total)
		})
	}
}

func TestProductUC_ListProducts_SortByPrice(t *testing.T) {
	uc := newTestProductUC(catalogFixture(), nil)

	list, err := uc.ListProducts(context.Background(), ProductQuery{Sort: SortBasePrice, Order: "asc"})

	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p1", "p2"}, productIDs(list.Items))
}

func TestProductUC_ListProducts_Pagination(t *testing.T) {
	uc := newTestProductUC(catalogFixture(), nil)

	page1, err := uc.ListProducts(context.Background(), ProductQuery{Page: 1, Limit: 2, Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, productIDs(page1.Items))
	assert.Equal(t, int64(3), page1.Pagination.Total)
	assert.Equal(t, int64(2), page1.Pagination.TotalPages)

	page2, err := uc.ListProducts(context.Background(), ProductQuery{Page: 2, Limit: 2, Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p3"}, productIDs(page2.Items))
}

func TestProductUC_ListProducts_PagePastEndIsEmpty(t *testing.T) {
	uc := newTestProductUC(catalogFixture(), nil)

	list, err := uc.ListProducts(context.Background(), ProductQuery{Page: 50, Limit: 10})

	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Equal(t, int64(3), list.Pagination.Total)
}

func TestProductUC_ListProducts_InvalidQuery(t *testing.T) {
	uc := newTestProductUC(catalogFixture(), nil)

	_, err := uc.ListProducts(context.Background(), ProductQuery{Page: -1})

	var vErr *e.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestProductUC_GetProduct_CacheHitSkipsRepo(t *testing.T) {
	cache := newFakeCacheRepo()
	cached := domain.NewProduct("p1", "Cached Cake", domain.CategoryBirthday, "from cache", 100)
	require.NoError(t, cache.SetProduct(context.Background(), cached))

	repo := newFakeProductRepo()
	repo.getErr = errors.New("db must not be hit")
	uc := newTestProductUC(repo, cache)

	product, err := uc.GetProduct(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "Cached Cake", product.Name)
}

func TestProductUC_GetProduct_CacheFailureFallsBackToRepo(t *testing.T) {
	cache := newFakeCacheRepo()
	cache.getErr = errors.New("connection refused")
	uc := newTestProductUC(catalogFixture(), cache)

	product, err := uc.GetProduct(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "Fudge Cake", product.Name)
}

func TestProductUC_GetProduct_NotFound(t *testing.T) {
	uc := newTestProductUC(catalogFixture(), nil)

	_, err := uc.GetProduct(context.Background(), "missing")

	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestProductUC_GetProduct_ArchivedIsNotFound(t *testing.T) {
	uc := newTestProductUC(catalogFixture(), nil)

	_, err := uc.GetProduct(context.Background(), "p4")

	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestProductUC_ListFacets(t *testing.T) {
	uc := newTestProductUC(catalogFixture(), nil)

	categories, err := uc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{domain.CategoryBirthday, domain.CategoryCupcakes, domain.CategoryWedding}, categories)

	sizes, err := uc.ListSizes(context.Background())
	require.NoError(t, err)
	assert.Contains(t, sizes, domain.SizeTwelvePack)

	flavors, err := uc.ListFlavors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Chocolate", "Vanilla"}, flavors)
}

func TestProductUC_CreateProduct_Validation(t *testing.T) {
	valid := func() *CreateProductReq {
		return &CreateProductReq{
			Name:           "Fudge Cake",
			Category:       domain.CategoryBirthday,
			Description:    "rich chocolate layers",
			BasePriceCents: 4599,
			Sizes:          []string{domain.SizeLarge},
		}
	}

	longString := func(n int) string {
		s := make([]byte, n)
		for i := range s {
			s[i] = 'x'
		}
		return string(s)
	}

	tests := []struct {
		name   string
		mutate func(*CreateProductReq)
		field  string
	}{
		{"blank name", func(r *CreateProductReq) { r.Name = "   " }, "name"},
		{"name too long", func(r *CreateProductReq) { r.Name = longString(101) }, "name"},
		{"bad category", func(r *CreateProductReq) { r.Category = "Savory" }, "category"},
		{"blank description", func(r *CreateProductReq) { r.Description = "" }, "description"},
		{"description too long", func(r *CreateProductReq) { r.Description = longString(501) }, "description"},
		{"zero price", func(r *CreateProductReq) { r.BasePriceCents = 0 }, "basePrice"},
		{"negative price", func(r *CreateProductReq) { r.BasePriceCents = -100 }, "basePrice"},
		{"unknown size", func(r *CreateProductReq) { r.Sizes = []string{"Gigantic"} }, "sizes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestProductUC(newFakeProductRepo(), nil)
			req := valid()
			tt.mutate(req)

			_, err := uc.CreateProduct(context.Background(), req)

			var vErr *e.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestProductUC_UpdateProduct_EmptyBodyRejected(t *testing.T) {
	uc := newTestProductUC(catalogFixture(), nil)

	_, err := uc.UpdateProduct(context.Background(), "p1", &UpdateProductReq{})

	var vErr *e.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "body", vErr.Field)
}

func TestProductUC_UpdateProduct_SuppliedFieldsRevalidated(t *testing.T) {
	uc := newTestProductUC(catalogFixture(), nil)

	badPrice := int64(-1)
	_, err := uc.UpdateProduct(context.Background(), "p1", &UpdateProductReq{BasePriceCents: &badPrice})

	var vErr *e.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "basePrice", vErr.Field)
}

func TestProductUC_BulkUpdateProducts_EmptyRejected(t *testing.T) {
	uc := newTestProductUC(catalogFixture(), nil)

	_, err := uc.BulkUpdateProducts(context.Background(), nil)

	var vErr *e.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestProductUC_BulkUpdateProducts_BestEffort(t *testing.T) {
	uc := newTestProductUC(catalogFixture(), nil)

	// Both items fail validation independently; neither blocks the other and
	// the call itself succeeds.
	res, err := uc.BulkUpdateProducts(context.Background(), []BulkUpdateItem{
		{ID: "p1", Data: UpdateProductReq{}},
		{ID: "p2", Data: UpdateProductReq{}},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, res.Attempted)
	assert.Equal(t, 0, res.Updated)
	require.Len(t, res.Failures, 2)
	assert.Equal(t, "p1", res.Failures[0].ID)
	assert.Equal(t, "p2", res.Failures[1].ID)
}

func TestProductUC_UploadProductImages_NoImages(t *testing.T) {
	uc := newTestProductUC(catalogFixture(), nil)

	_, err := uc.UploadProductImages(context.Background(), "p1", nil)

	assert.ErrorIs(t, err, e.ErrNoImages)
}

func TestProductUC_UploadProductImages_UnknownProduct(t *testing.T) {
	uc := newTestProductUC(catalogFixture(), nil)

	_, err := uc.UploadProductImages(context.Background(), "missing", []ProductImage{{Name: "a.jpg"}})

	assert.ErrorIs(t, err, e.ErrProductNotFound)
}
