package pgdb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/DRSN-tech/order-service/internal/repository/pgdb/converter/generated"
	"github.com/DRSN-tech/order-service/internal/usecase"
	"github.com/DRSN-tech/order-service/pkg/e"
	"github.com/jackc/pgx/v5/pgxpool"
)

// getTestPool подключается к тестовой базе или пропускает тест, если она недоступна.
// Предполагается применённая схема (db/migrations).
func getTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("POSTGRES_PORT")
	if port == "" {
		port = "5432"
	}
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	dbName := os.Getenv("POSTGRES_DB")
	if user == "" || password == "" || dbName == "" {
		t.Skip("POSTGRES_USER/POSTGRES_PASSWORD/POSTGRES_DB not set, skipping integration test")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbName)

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Skipf("PostgreSQL not available: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		t.Skipf("PostgreSQL not available: %v", err)
	}

	return pool
}

// seedProduct создаёт категорию и товар с заданным остатком, возвращает id товара.
func seedProduct(t *testing.T, ctx context.Context, pool *pgxpool.Pool, name string, quantity int32) int64 {
	t.Helper()

	var categoryID int64
	err := pool.QueryRow(ctx, `
		INSERT INTO categories (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, "test-category").Scan(&categoryID)
	if err != nil {
		t.Fatalf("seed category failed: %v", err)
	}

	var productID int64
	err = pool.QueryRow(ctx, `
		INSERT INTO products (name, price, quantity, category_id) VALUES ($1, 59999, $2, $3)
		ON CONFLICT (name) DO UPDATE SET quantity = EXCLUDED.quantity
		RETURNING id`, name, quantity, categoryID).Scan(&productID)
	if err != nil {
		t.Fatalf("seed product failed: %v", err)
	}

	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, productID)
	})

	return productID
}

func productQuantity(t *testing.T, ctx context.Context, pool *pgxpool.Pool, id int64) int32 {
	t.Helper()

	var quantity int32
	if err := pool.QueryRow(ctx, `SELECT quantity FROM products WHERE id = $1`, id).Scan(&quantity); err != nil {
		t.Fatalf("read quantity failed: %v", err)
	}
	return quantity
}

func TestDecrementQuantities_Success(t *testing.T) {
	pool := getTestPool(t)
	defer pool.Close()

	ctx := context.Background()
	repo := NewProductRepo(pool, generated.NewProductConverterImpl())

	productID := seedProduct(t, ctx, pool, "decrement-success", 10)

	tx, err := pool.Begin(ctx)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	txCtx := context.WithValue(ctx, "tx", tx)

	if err := repo.DecrementQuantities(txCtx, []usecase.ProductDecrement{{ProductID: productID, Quantity: 3}}); err != nil {
		tx.Rollback(ctx)
		t.Fatalf("DecrementQuantities failed: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	if got := productQuantity(t, ctx, pool, productID); got != 7 {
		t.Errorf("expected quantity 7, got %d", got)
	}
}

func TestDecrementQuantities_InsufficientStock(t *testing.T) {
	pool := getTestPool(t)
	defer pool.Close()

	ctx := context.Background()
	repo := NewProductRepo(pool, generated.NewProductConverterImpl())

	productID := seedProduct(t, ctx, pool, "decrement-insufficient", 2)

	tx, err := pool.Begin(ctx)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	txCtx := context.WithValue(ctx, "tx", tx)

	err = repo.DecrementQuantities(txCtx, []usecase.ProductDecrement{{ProductID: productID, Quantity: 5}})
	if !errors.Is(err, e.ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got: %v", err)
	}
	tx.Rollback(ctx)

	// Остаток не изменился после отката.
	if got := productQuantity(t, ctx, pool, productID); got != 2 {
		t.Errorf("expected quantity 2 after rollback, got %d", got)
	}
}

func TestDecrementQuantities_ProductNotFound(t *testing.T) {
	pool := getTestPool(t)
	defer pool.Close()

	ctx := context.Background()
	repo := NewProductRepo(pool, generated.NewProductConverterImpl())

	tx, err := pool.Begin(ctx)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	defer tx.Rollback(ctx)
	txCtx := context.WithValue(ctx, "tx", tx)

	err = repo.DecrementQuantities(txCtx, []usecase.ProductDecrement{{ProductID: -1, Quantity: 1}})
	if !errors.Is(err, e.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got: %v", err)
	}
}

func TestGetProductsByIDs_SkipsMissing(t *testing.T) {
	pool := getTestPool(t)
	defer pool.Close()

	ctx := context.Background()
	repo := NewProductRepo(pool, generated.NewProductConverterImpl())

	productID := seedProduct(t, ctx, pool, "get-by-ids", 5)

	products, err := repo.GetProductsByIDs(ctx, []int64{productID, -1})
	if err != nil {
		t.Fatalf("GetProductsByIDs failed: %v", err)
	}

	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if products[0].ID != productID || products[0].Quantity != 5 {
		t.Errorf("unexpected product: %+v", products[0])
	}
}
