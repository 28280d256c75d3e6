package pgdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"

	"github.com/sweetslice/go-backend/internal/domain"
	"github.com/sweetslice/go-backend/internal/repository/pgdb/converter"
	"github.com/sweetslice/go-backend/internal/usecase"
	"github.com/sweetslice/go-backend/pkg/e"
	"github.com/sweetslice/go-backend/pkg/tr"
)

const productColumns = `id, name, category, description, base_price, sizes, flavors, images, customizable, active, created_at, updated_at`

// sortColumns maps the public sort keys onto real columns. Anything outside
// this map never reaches the repository; Normalize collapses it to createdAt.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"name":      "name",
	"basePrice": "base_price",
	"category":  "category",
}

// ProductRepo implements the product repository on top of PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// List returns one page of matching active products together with the total
// match count. Ordering falls back to the insertion sequence on ties so that
// pages never overlap between requests.
func (p *ProductRepo) List(ctx context.Context, q usecase.ProductQuery) ([]domain.Product, int64, error) {
	where, args := buildProductFilter(q)

	countQuery := `SELECT COUNT(*) FROM products ` + where
	var total int64
	if err := p.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	orderBy := fmt.Sprintf("ORDER BY %s %s, seq ASC", sortColumns[q.Sort], strings.ToUpper(q.Order))
	listQuery := fmt.Sprintf(
		`SELECT %s FROM products %s %s LIMIT $%d OFFSET $%d`,
		productColumns, where, orderBy, len(args)+1, len(args)+2,
	)
	args = append(args, q.Limit, q.Offset())

	rows, err := p.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, q.Limit)
	for rows.Next() {
		model, err := scanProduct(rows)
		if err != nil {
			return nil, 0, e.Wrap(whereami.WhereAmI(), err)
		}
		products = append(products, *p.conv.ToEntity(model))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return products, total, nil
}

// GetByID resolves an active product. Archived products are invisible here.
func (p *ProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1 AND active = TRUE`, productColumns)
	return p.getOne(ctx, query, id)
}

// GetAny resolves a product regardless of the active flag.
func (p *ProductRepo) GetAny(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)
	return p.getOne(ctx, query, id)
}

func (p *ProductRepo) getOne(ctx context.Context, query, id string) (*domain.Product, error) {
	var model converter.ProductModel
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Name, &model.Category, &model.Description, &model.BasePrice,
		&model.Sizes, &model.Flavors, &model.Images,
		&model.Customizable, &model.Active, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO products (
			id, name, category, description, base_price,
			sizes, flavors, images, customizable, active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at;
	`

	err = tx.QueryRow(ctx, query,
		product.ID, product.Name, product.Category, product.Description, product.BasePriceCents,
		product.Sizes, product.Flavors, product.Images, product.Customizable, product.Active,
	).Scan(&product.CreatedAt)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return product, nil
}

// Update applies only the fields set in the request, in one UPDATE.
func (p *ProductRepo) Update(ctx context.Context, id string, req usecase.UpdateProductReq) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	sets := make([]string, 0, 9)
	args := make([]any, 0, 10)
	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Name != nil {
		addSet("name", *req.Name)
	}
	if req.Category != nil {
		addSet("category", *req.Category)
	}
	if req.Description != nil {
		addSet("description", *req.Description)
	}
	if req.BasePriceCents != nil {
		addSet("base_price", *req.BasePriceCents)
	}
	if req.Sizes != nil {
		addSet("sizes", req.Sizes)
	}
	if req.Flavors != nil {
		addSet("flavors", req.Flavors)
	}
	if req.Images != nil {
		addSet("images", req.Images)
	}
	if req.Customizable != nil {
		addSet("customizable", *req.Customizable)
	}
	if req.Active != nil {
		addSet("active", *req.Active)
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE products SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), productColumns,
	)

	var model converter.ProductModel
	err = tx.QueryRow(ctx, query, args...).Scan(
		&model.ID, &model.Name, &model.Category, &model.Description, &model.BasePrice,
		&model.Sizes, &model.Flavors, &model.Images,
		&model.Customizable, &model.Active, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// Archive flips active to false. The row stays so existing orders keep their
// reference and a later update can bring the product back.
func (p *ProductRepo) Archive(ctx context.Context, id string) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := tx.Exec(ctx, `UPDATE products SET active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if result.RowsAffected() == 0 {
		return e.ErrProductNotFound
	}

	return nil
}

func (p *ProductRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT category FROM products WHERE active = TRUE ORDER BY category`
	return p.distinct(ctx, query)
}

func (p *ProductRepo) DistinctSizes(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT s FROM products, unnest(sizes) AS s WHERE active = TRUE ORDER BY s`
	return p.distinct(ctx, query)
}

func (p *ProductRepo) DistinctFlavors(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT f FROM products, unnest(flavors) AS f WHERE active = TRUE ORDER BY f`
	return p.distinct(ctx, query)
}

func (p *ProductRepo) distinct(ctx context.Context, query string) ([]string, error) {
	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		values = append(values, value)
	}

	return values, rows.Err()
}

// buildProductFilter renders the WHERE clause for a normalized query.
// Archived products are excluded unconditionally.
func buildProductFilter(q usecase.ProductQuery) (string, []any) {
	clauses := []string{"active = TRUE"}
	args := make([]any, 0, 5)

	if q.Category != "" {
		args = append(args, q.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if q.Search != "" {
		args = append(args, "%"+escapeLike(q.Search)+"%")
		clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if q.MinPriceCents != nil {
		args = append(args, *q.MinPriceCents)
		clauses = append(clauses, fmt.Sprintf("base_price >= $%d", len(args)))
	}
	if q.MaxPriceCents != nil {
		args = append(args, *q.MaxPriceCents)
		clauses = append(clauses, fmt.Sprintf("base_price <= $%d", len(args)))
	}
	if q.Customizable != nil {
		args = append(args, *q.Customizable)
		clauses = append(clauses, fmt.Sprintf("customizable = $%d", len(args)))
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

// escapeLike neutralizes LIKE metacharacters so the search term matches literally.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

func scanProduct(rows pgx.Rows) (*converter.ProductModel, error) {
	var model converter.ProductModel
	err := rows.Scan(
		&model.ID, &model.Name, &model.Category, &model.Description, &model.BasePrice,
		&model.Sizes, &model.Flavors, &model.Images,
		&model.Customizable, &model.Active, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &model, nil
}
