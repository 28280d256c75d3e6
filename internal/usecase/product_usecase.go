package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sweetslice/go-backend/internal/domain"
	"github.com/sweetslice/go-backend/pkg/e"
	"github.com/sweetslice/go-backend/pkg/logger"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
)

// ProductUseCase implements the catalog: listing/filtering reads for
// customers and validated writes for administrators.
type ProductUseCase struct {
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	dbPool      transaction.Transactional
	imagesInfra ImagesInfra
	cacheRepo   CacheRepository
	logger      logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	imagesInfra ImagesInfra,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		dbPool:      dbPool,
		imagesInfra: imagesInfra,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

// ListProducts normalizes the query and returns one page of active products
// with pagination metadata. The total is counted over the whole filtered set,
// so a page past the end yields an empty item list with the total unchanged.
func (p *ProductUseCase) ListProducts(ctx context.Context, q ProductQuery) (*ProductList, error) {
	const op = "ProductUseCase.ListProducts"

	q, err := q.Normalize()
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	items, total, err := p.productRepo.List(ctx, q)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &ProductList{
		Items:      items,
		Pagination: NewPagination(total, q.Page, q.Limit),
	}, nil
}

// GetProduct returns a single active product, going through the look-aside
// cache first. Cache failures degrade to the database.
func (p *ProductUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	const op = "ProductUseCase.GetProduct"

	cached, err := p.cacheRepo.GetProduct(ctx, id)
	if err != nil {
		p.logger.Warnf("product cache read failed: %v", e.Wrap(op, err))
	}
	if cached != nil {
		return cached, nil
	}

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Populate the cache in the background so the request does not wait on Redis.
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := p.cacheRepo.SetProduct(bgCtx, product); err != nil {
			p.logger.Warnf("failed to cache product in background: %v", e.Wrap(op, err))
		}
	}()

	return product, nil
}

// ListCategories returns the distinct categories present among active products.
func (p *ProductUseCase) ListCategories(ctx context.Context) ([]string, error) {
	return p.productRepo.DistinctCategories(ctx)
}

// ListSizes returns the distinct size labels present among active products,
// flattened across all products' size sets.
func (p *ProductUseCase) ListSizes(ctx context.Context) ([]string, error) {
	return p.productRepo.DistinctSizes(ctx)
}

// ListFlavors returns the distinct flavors present among active products.
func (p *ProductUseCase) ListFlavors(ctx context.Context) ([]string, error) {
	return p.productRepo.DistinctFlavors(ctx)
}

// CreateProduct validates and stores a new product and records a
// product.created event in the same transaction.
func (p *ProductUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.CreateProduct"

	var err error
	if err = p.validateCreate(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	product := domain.NewProduct(uuid.NewString(), strings.TrimSpace(req.Name), req.Category, req.Description, req.BasePriceCents)
	product.Sizes = req.Sizes
	product.Flavors = req.Flavors
	product.Images = req.Images
	if req.Customizable != nil {
		product.Customizable = *req.Customizable
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	created, err := p.productRepo.Create(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = p.recordProductEvent(ctx, ProductCreated, created); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return created, nil
}

// UpdateProduct applies a partial update: only supplied fields change, and
// every supplied constrained field is re-validated.
func (p *ProductUseCase) UpdateProduct(ctx context.Context, id string, req *UpdateProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.UpdateProduct"

	var err error
	if err = p.validateUpdate(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	updated, err := p.productRepo.Update(ctx, id, *req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = p.recordProductEvent(ctx, ProductUpdated, updated); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	p.invalidateCache(ctx, id)

	return updated, nil
}

// DeleteProduct soft-deletes: the row stays in storage with active=false and
// disappears from every catalog read.
func (p *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	const op = "ProductUseCase.DeleteProduct"

	var err error
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if err = p.productRepo.Archive(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	event := NewOutboxEvent(ProductArchived, id, []byte(fmt.Sprintf(`{"product_id":%q}`, id)))
	if _, err = p.outboxRepo.Create(ctx, event); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	p.invalidateCache(ctx, id)

	return nil
}

// BulkUpdateProducts applies each update independently. A failed item does
// not roll back the others; per-item failures are reported alongside the
// attempted count.
func (p *ProductUseCase) BulkUpdateProducts(ctx context.Context, items []BulkUpdateItem) (*BulkUpdateRes, error) {
	const op = "ProductUseCase.BulkUpdateProducts"

	if len(items) == 0 {
		return nil, e.Wrap(op, e.NewValidationError("updates", "updates array must not be empty"))
	}

	res := &BulkUpdateRes{Attempted: len(items)}
	for _, item := range items {
		if _, err := p.UpdateProduct(ctx, item.ID, &item.Data); err != nil {
			p.logger.Warnf("bulk update failed for product %s: %v", item.ID, err)
			res.Failures = append(res.Failures, BulkUpdateFailure{ID: item.ID, Reason: err.Error()})
			continue
		}
		res.Updated++
	}

	return res, nil
}

// UploadProductImages stores the images in object storage and appends their
// public URLs to the product. Already-stored objects are cleaned up in the
// background when the catalog update fails.
func (p *ProductUseCase) UploadProductImages(ctx context.Context, id string, images []ProductImage) (*domain.Product, error) {
	const op = "ProductUseCase.UploadProductImages"

	if len(images) == 0 {
		return nil, e.Wrap(op, e.ErrNoImages)
	}

	product, err := p.productRepo.GetAny(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res, err := p.imagesInfra.UploadImages(ctx, &UploadImagesReq{Name: product.Name, Images: images})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	merged := append(append([]string{}, product.Images...), res.ImagesURLs...)
	updated, err := p.UpdateProduct(ctx, id, &UpdateProductReq{Images: &merged})
	if err != nil {
		p.logger.Warnf("cleaning up orphaned images after failed update. product_id: %s, error: %v", id, e.Wrap(op, err))
		p.imagesInfra.CleanupImages(res.ImagesKeys)
		return nil, e.Wrap(op, err)
	}

	return updated, nil
}

// recordProductEvent writes a catalog change event to the outbox inside the
// caller's transaction.
func (p *ProductUseCase) recordProductEvent(ctx context.Context, eventType OutboxEventType, product *domain.Product) error {
	payload, err := json.Marshal(map[string]any{
		"product_id":       product.ID,
		"name":             product.Name,
		"category":         product.Category,
		"base_price_cents": product.BasePriceCents,
		"active":           product.Active,
	})
	if err != nil {
		return err
	}

	_, err = p.outboxRepo.Create(ctx, NewOutboxEvent(eventType, product.ID, payload))
	return err
}

// invalidateCache drops the cached product after a committed write.
func (p *ProductUseCase) invalidateCache(ctx context.Context, id string) {
	if err := p.cacheRepo.DeleteProducts(ctx, []string{id}); err != nil {
		p.logger.Warnf("failed to invalidate product cache: %v", err)
	}
}

func (p *ProductUseCase) validateCreate(req *CreateProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.NewValidationError("name", "name is required")
	}
	if len(req.Name) > maxNameLength {
		return e.NewValidationError("name", "name cannot be more than 100 characters")
	}
	if !domain.ValidCategory(req.Category) {
		return e.NewValidationError("category", "invalid category")
	}
	if strings.TrimSpace(req.Description) == "" {
		return e.NewValidationError("description", "description is required")
	}
	if len(req.Description) > maxDescriptionLength {
		return e.NewValidationError("description", "description cannot be more than 500 characters")
	}
	if req.BasePriceCents <= 0 {
		return e.NewValidationError("basePrice", "base price must be a positive number")
	}
	return validateSizes(req.Sizes)
}

func (p *ProductUseCase) validateUpdate(req *UpdateProductReq) error {
	if req.IsEmpty() {
		return e.NewValidationError("body", "no fields to update")
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return e.NewValidationError("name", "name is required")
		}
		if len(*req.Name) > maxNameLength {
			return e.NewValidationError("name", "name cannot be more than 100 characters")
		}
	}
	if req.Category != nil && !domain.ValidCategory(*req.Category) {
		return e.NewValidationError("category", "invalid category")
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return e.NewValidationError("description", "description is required")
		}
		if len(*req.Description) > maxDescriptionLength {
			return e.NewValidationError("description", "description cannot be more than 500 characters")
		}
	}
	if req.BasePriceCents != nil && *req.BasePriceCents <= 0 {
		return e.NewValidationError("basePrice", "base price must be a positive number")
	}
	if req.Sizes != nil {
		return validateSizes(*req.Sizes)
	}
	return nil
}

func validateSizes(sizes []string) error {
	var invalid []string
	for _, s := range sizes {
		if !domain.ValidSize(s) {
			invalid = append(invalid, s)
		}
	}
	if len(invalid) > 0 {
		return e.NewValidationError("sizes", "invalid sizes: "+strings.Join(invalid, ", "))
	}
	return nil
}
