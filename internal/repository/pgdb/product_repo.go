package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/DRSN-tech/order-service/internal/domain"
	"github.com/DRSN-tech/order-service/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/order-service/internal/usecase"
	"github.com/DRSN-tech/order-service/pkg/e"
	"github.com/DRSN-tech/order-service/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
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

// GetProductsByIDs возвращает снимки товаров по идентификаторам: по одной записи
// на каждый найденный id, ненайденные идентификаторы молча опускаются — вызывающая
// сторона сверяет количество.
func (p *ProductRepo) GetProductsByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	query := `
		SELECT id, name, price, quantity, category_id, created_at, updated_at, is_archived
		FROM products
		WHERE id = ANY($1) AND NOT is_archived
	`

	rows, err := p.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.ProductModel, 0, len(ids))
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Price, &model.Quantity,
			&model.CategoryID, &model.CreatedAt, &model.UpdatedAt, &model.IsArchived,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

// DecrementQuantities списывает остатки в рамках транзакции из контекста.
// Каждое списание условное: строка обновляется только при достаточном остатке,
// поэтому конкурирующие заказы не могут совместно увести остаток в минус.
// Нулевое число затронутых строк — ошибка, различающая исчезнувший товар и
// исчерпанный остаток; откат всей транзакции ложится на вызывающую сторону.
func (p *ProductRepo) DecrementQuantities(ctx context.Context, decrements []usecase.ProductDecrement) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET quantity = quantity - $2, updated_at = NOW()
		WHERE id = $1 AND quantity >= $2 AND NOT is_archived
	`

	for _, d := range decrements {
		cmd, err := tx.Exec(ctx, query, d.ProductID, d.Quantity)
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}

		if cmd.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1 AND NOT is_archived)`,
				d.ProductID,
			).Scan(&exists); err != nil {
				return e.Wrap(whereami.WhereAmI(), err)
			}

			if !exists {
				return fmt.Errorf("%s: %w: id %d", whereami.WhereAmI(), e.ErrProductNotFound, d.ProductID)
			}

			return fmt.Errorf("%s: %w: product id %d, requested %d",
				whereami.WhereAmI(), e.ErrInsufficientStock, d.ProductID, d.Quantity)
		}
	}

	return nil
}

// FindByName возвращает товар по уникальному имени либо (nil, nil), если его нет.
func (p *ProductRepo) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	query := `
		SELECT id, name, price, quantity, category_id, created_at, updated_at, is_archived
		FROM products
		WHERE name = $1
	`

	var model converter.ProductModel
	err := p.pool.QueryRow(ctx, query, name).
		Scan(
			&model.ID, &model.Name, &model.Price, &model.Quantity,
			&model.CategoryID, &model.CreatedAt, &model.UpdatedAt, &model.IsArchived,
		)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// Create сохраняет новый товар в рамках транзакции из контекста.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO products (name, price, quantity, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, price, quantity, category_id, created_at, updated_at, is_archived
	`

	var model converter.ProductModel
	if err := tx.QueryRow(ctx, query, product.Name, product.Price, product.Quantity, product.CategoryID).
		Scan(
			&model.ID, &model.Name, &model.Price, &model.Quantity,
			&model.CategoryID, &model.CreatedAt, &model.UpdatedAt, &model.IsArchived,
		); err != nil {
		if postgresDuplicate(err) {
			return nil, fmt.Errorf("%s: %w: %q", whereami.WhereAmI(), e.ErrProductAlreadyExists, product.Name)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// GetProductsInfo возвращает информацию о товарах по их идентификаторам, включая название категории.
func (p *ProductRepo) GetProductsInfo(ctx context.Context, ids []int64) ([]usecase.ProductInfo, error) {
	query := `
		SELECT pr.id, pr.name, pr.price, pr.quantity, cat.name
		FROM products pr
		JOIN categories cat ON pr.category_id = cat.id
		WHERE pr.id = ANY($1)
	`

	rows, err := p.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.ProductInfo, 0)
	for rows.Next() {
		var product usecase.ProductInfo
		if err := rows.Scan(&product.ID, &product.Name, &product.Price, &product.Quantity, &product.CategoryName); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, product)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
