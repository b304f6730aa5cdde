package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/order-service/internal/domain"
	"github.com/DRSN-tech/order-service/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/order-service/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// CustomerRepo реализует справочник покупателей поверх PostgreSQL.
// Ведение справочника — зона ответственности внешней системы, здесь только чтение.
type CustomerRepo struct {
	pool *pgxpool.Pool
	conv converter.CustomerConverter
}

func NewCustomerRepo(pool *pgxpool.Pool, conv converter.CustomerConverter) *CustomerRepo {
	return &CustomerRepo{
		pool: pool,
		conv: conv,
	}
}

// FindByID возвращает покупателя по идентификатору либо (nil, nil), если его нет.
func (c *CustomerRepo) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `
		SELECT id, name, email, created_at
		FROM customers
		WHERE id = $1
	`

	var model converter.CustomerModel
	err := c.pool.QueryRow(ctx, query, id).
		Scan(&model.ID, &model.Name, &model.Email, &model.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}
