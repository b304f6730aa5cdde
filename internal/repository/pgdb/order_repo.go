package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/order-service/internal/domain"
	"github.com/DRSN-tech/order-service/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/order-service/pkg/e"
	"github.com/DRSN-tech/order-service/pkg/tr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// OrderRepo реализует хранение заказов поверх PostgreSQL.
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

// Create сохраняет заказ и все его позиции в рамках транзакции из контекста.
// Позиции записываются в порядке запроса; частично сохранённый заказ невозможен,
// пока транзакция не зафиксирована.
func (o *OrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	orderQuery := `
		INSERT INTO orders (id, customer_id)
		VALUES ($1, $2)
		RETURNING id, customer_id, created_at
	`

	var model converter.OrderModel
	if err := tx.QueryRow(ctx, orderQuery, uuid.NewString(), order.CustomerID).
		Scan(&model.ID, &model.CustomerID, &model.CreatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	lineQuery := `
		INSERT INTO order_lines (order_id, position, product_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
	`

	for i, line := range order.Lines {
		if _, err := tx.Exec(ctx, lineQuery,
			model.ID, int32(i), line.ProductID, line.Quantity, line.Price,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return &domain.Order{
		ID:         model.ID,
		CustomerID: model.CustomerID,
		Lines:      order.Lines,
		CreatedAt:  model.CreatedAt,
	}, nil
}

// GetByID возвращает заказ с позициями в их исходном порядке либо (nil, nil).
func (o *OrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	orderQuery := `
		SELECT id, customer_id, created_at
		FROM orders
		WHERE id = $1
	`

	var model converter.OrderModel
	err := o.pool.QueryRow(ctx, orderQuery, id).
		Scan(&model.ID, &model.CustomerID, &model.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	linesQuery := `
		SELECT id, order_id, position, product_id, quantity, price
		FROM order_lines
		WHERE order_id = $1
		ORDER BY position
	`

	rows, err := o.pool.Query(ctx, linesQuery, id)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var lineModels []converter.OrderLineModel
	for rows.Next() {
		var lineModel converter.OrderLineModel
		if err := rows.Scan(
			&lineModel.ID, &lineModel.OrderID, &lineModel.Position,
			&lineModel.ProductID, &lineModel.Quantity, &lineModel.Price,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		lineModels = append(lineModels, lineModel)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &domain.Order{
		ID:         model.ID,
		CustomerID: model.CustomerID,
		Lines:      o.conv.ToArrLineEntity(lineModels),
		CreatedAt:  model.CreatedAt,
	}, nil
}
