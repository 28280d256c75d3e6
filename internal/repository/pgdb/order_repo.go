package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"

	"github.com/sweetslice/go-backend/internal/domain"
	"github.com/sweetslice/go-backend/internal/repository/pgdb/converter"
	"github.com/sweetslice/go-backend/pkg/e"
	"github.com/sweetslice/go-backend/pkg/tr"
)

const orderColumns = `id, user_id, cake_type, size, flavor, message, special_instructions,
	delivery_date, delivery_time, status, price, created_at, updated_at`

// OrderRepo implements the order repository on top of PostgreSQL.
// Every read and write is scoped to the owning user.
type OrderRepo struct {
	pool *pgxpool.Pool
	conv converter.OrderConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv converter.OrderConverter) *OrderRepo {
	return &OrderRepo{
		pool: pool,
		conv: conv,
	}
}

func (o *OrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO orders (
			id, user_id, cake_type, size, flavor, message, special_instructions,
			delivery_date, delivery_time, status, price
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at;
	`

	err = tx.QueryRow(ctx, query,
		order.ID, order.UserID, order.CakeType, order.Size, order.Flavor,
		order.Message, order.SpecialInstructions,
		order.DeliveryDate, order.DeliveryTime, order.Status, order.PriceCents,
	).Scan(&order.CreatedAt)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return order, nil
}

func (o *OrderRepo) GetByUser(ctx context.Context, id, userID string) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1 AND user_id = $2`, orderColumns)

	var model converter.OrderModel
	err := o.pool.QueryRow(ctx, query, id, userID).Scan(
		&model.ID, &model.UserID, &model.CakeType, &model.Size, &model.Flavor,
		&model.Message, &model.SpecialInstructions,
		&model.DeliveryDate, &model.DeliveryTime, &model.Status, &model.Price,
		&model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrOrderNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(&model), nil
}

func (o *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id`, orderColumns)

	rows, err := o.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var model converter.OrderModel
		err := rows.Scan(
			&model.ID, &model.UserID, &model.CakeType, &model.Size, &model.Flavor,
			&model.Message, &model.SpecialInstructions,
			&model.DeliveryDate, &model.DeliveryTime, &model.Status, &model.Price,
			&model.CreatedAt, &model.UpdatedAt,
		)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		orders = append(orders, *o.conv.ToEntity(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return orders, nil
}

func (o *OrderRepo) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE orders
		SET cake_type = $1, size = $2, flavor = $3, message = $4,
			special_instructions = $5, delivery_date = $6, delivery_time = $7,
			status = $8, price = $9, updated_at = NOW()
		WHERE id = $10 AND user_id = $11
		RETURNING updated_at;
	`

	err = tx.QueryRow(ctx, query,
		order.CakeType, order.Size, order.Flavor, order.Message,
		order.SpecialInstructions, order.DeliveryDate, order.DeliveryTime,
		order.Status, order.PriceCents, order.ID, order.UserID,
	).Scan(&order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrOrderNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return order, nil
}

func (o *OrderRepo) Delete(ctx context.Context, id, userID string) error {
	result, err := o.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if result.RowsAffected() == 0 {
		return e.ErrOrderNotFound
	}

	return nil
}
