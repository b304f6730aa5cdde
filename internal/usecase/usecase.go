package usecase

import (
	"context"

	"github.com/DRSN-tech/order-service/internal/domain"
)

type OrderUC interface {
	CreateOrder(ctx context.Context, req *CreateOrderReq) (*domain.Order, error)
}

type CatalogUC interface {
	RegisterNewProduct(ctx context.Context, req *RegisterProductReq) (*domain.Product, error)
	GetProductsInfo(ctx context.Context, req *GetProductsReq) (*GetProductsRes, error)
}
