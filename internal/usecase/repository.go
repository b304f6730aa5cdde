package usecase

import (
	"context"

	"github.com/DRSN-tech/order-service/internal/domain"
)

type CustomerRepository interface {
	// FindByID возвращает (nil, nil), если покупатель не найден.
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
}

type ProductRepository interface {
	// GetProductsByIDs возвращает по одному товару на каждый найденный идентификатор,
	// ненайденные идентификаторы в результат не попадают.
	GetProductsByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
	// DecrementQuantities выполняет условное списание остатков в рамках транзакции
	// из контекста. Нулевое число затронутых строк означает исчезнувший товар либо
	// конкурентное исчерпание остатка и прерывает всю транзакцию.
	DecrementQuantities(ctx context.Context, decrements []ProductDecrement) error
	// FindByName возвращает (nil, nil), если товар не найден.
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProductsInfo(ctx context.Context, ids []int64) ([]ProductInfo, error)
}

type OrderRepository interface {
	// Create сохраняет заказ вместе со всеми позициями в рамках транзакции из контекста.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	GetProducts(ctx context.Context, ids []int64) (map[int64]ProductInfo, error)
	SetProducts(ctx context.Context, products []ProductInfo) error
	DeleteProducts(ctx context.Context, ids []int64) error
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}
