package usecase

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/order-service/internal/domain"
	"github.com/DRSN-tech/order-service/pkg/e"
	"github.com/DRSN-tech/order-service/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

// OrderUseCase координирует транзакцию создания заказа: проверку покупателя и
// товаров, контроль остатков, фиксацию цен и атомарное сохранение заказа со
// списанием остатков.
type OrderUseCase struct {
	customerRepo CustomerRepository
	productRepo  ProductRepository
	orderRepo    OrderRepository
	outboxRepo   OutboxRepository
	cacheRepo    CacheRepository
	dbPool       transaction.Transactional
	beginTx      func(ctx context.Context) (context.Context, txSession, error)
	logger       logger.Logger
}

// txSession — открытая транзакция БД с точки зрения сценария создания заказа.
type txSession interface {
	Transaction() interface{}
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	IsActive() bool
}

func NewOrderUC(
	customerRepo CustomerRepository,
	productRepo ProductRepository,
	orderRepo OrderRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *OrderUseCase {
	uc := &OrderUseCase{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		outboxRepo:   outboxRepo,
		cacheRepo:    cacheRepo,
		dbPool:       dbPool,
		logger:       logger,
	}
	uc.beginTx = func(ctx context.Context) (context.Context, txSession, error) {
		txCtx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, uc.dbPool)
		if err != nil {
			return ctx, nil, err
		}
		return txCtx, tx, nil
	}

	return uc
}

// CreateOrder выполняет транзакцию создания заказа.
//
// До открытия транзакции: валидация запроса, проверка существования покупателя,
// разрешение всех товаров и проверка остатков по снимку каталога (повторные
// позиции одного товара проверяются кумулятивно). Внутри одной транзакции:
// сохранение заказа со всеми позициями, условное списание остатков и запись
// outbox-события. Любая ошибка до коммита откатывает всё; заказ без списания
// остатков существовать не может.
func (o *OrderUseCase) CreateOrder(ctx context.Context, req *CreateOrderReq) (order *domain.Order, err error) {
	const op = "OrderUseCase.CreateOrder"

	if err = o.validateOrder(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	customer, err := o.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if customer == nil {
		return nil, e.Wrap(op, fmt.Errorf("%w: customer %s", e.ErrCustomerNotFound, req.CustomerID))
	}

	resolved, err := o.resolveProducts(ctx, req.Lines)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	lines, decrements, err := buildOrderLines(req.Lines, resolved)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := o.beginTx(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	order, err = o.orderRepo.Create(ctx, domain.NewOrder(customer.ID, lines))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Списание поверх условного UPDATE закрывает гонку между снимком остатков и
	// коммитом: конкурирующий заказ, исчерпавший остаток, откатывает эту транзакцию.
	if err = o.productRepo.DecrementQuantities(ctx, decrements); err != nil {
		return nil, e.Wrap(op, err)
	}

	event, err := NewOrderCreatedEvent(order)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if _, err = o.outboxRepo.Create(ctx, event); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Удаление из кэша устаревших данных затронутых товаров
	productIDs := make([]int64, 0, len(decrements))
	for _, d := range decrements {
		productIDs = append(productIDs, d.ProductID)
	}
	if cacheErr := o.cacheRepo.DeleteProducts(ctx, productIDs); cacheErr != nil {
		o.logger.Warnf("Failed to invalidate product cache: %v", e.Wrap(op, cacheErr))
	}

	return order, nil
}

// validateOrder проверяет корректность входных данных запроса на создание заказа.
func (o *OrderUseCase) validateOrder(req *CreateOrderReq) error {
	if len(req.Lines) == 0 {
		return e.ErrEmptyOrder
	}

	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: product %d, quantity %d", e.ErrInvalidQuantity, line.ProductID, line.Quantity)
		}
	}

	return nil
}

// resolveProducts разрешает все различные идентификаторы товаров из запроса.
// Если разрешилось меньше товаров, чем запрошено, возвращает ErrProductsNotFound
// с перечислением отсутствующих идентификаторов.
func (o *OrderUseCase) resolveProducts(ctx context.Context, reqLines []OrderLineReq) (map[int64]domain.Product, error) {
	ids := distinctProductIDs(reqLines)

	products, err := o.productRepo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	resolved := make(map[int64]domain.Product, len(products))
	for _, product := range products {
		resolved[product.ID] = product
	}

	if len(resolved) < len(ids) {
		missing := make([]int64, 0)
		for _, id := range ids {
			if _, ok := resolved[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, fmt.Errorf("%w: ids %v", e.ErrProductsNotFound, missing)
	}

	return resolved, nil
}

// buildOrderLines строит позиции заказа по разрешённым товарам и возвращает
// агрегированные списания по каждому товару в порядке первого упоминания.
//
// Учёт уже зарезервированного количества ведётся в явной карте, поэтому вторая
// позиция того же товара проверяется против остатка, уменьшенного первой:
// повторные позиции кумулятивны, а не независимы. Цена каждой позиции — снимок
// цены товара до любых списаний этой транзакции.
func buildOrderLines(reqLines []OrderLineReq, resolved map[int64]domain.Product) ([]domain.OrderLine, []ProductDecrement, error) {
	lines := make([]domain.OrderLine, 0, len(reqLines))
	// Резерв считается в int64: сумма int32-количеств повторных позиций может
	// переполниться, и проверка остатка прошла бы по обёрнутому значению.
	reserved := make(map[int64]int64, len(resolved))
	decrementOrder := make([]int64, 0, len(resolved))

	for _, reqLine := range reqLines {
		product, ok := resolved[reqLine.ProductID]
		if !ok {
			// После resolveProducts недостижимо, но проверяется на каждую позицию.
			return nil, nil, fmt.Errorf("%w: id %d", e.ErrProductNotFound, reqLine.ProductID)
		}

		requested := reserved[reqLine.ProductID] + int64(reqLine.Quantity)
		if requested > int64(product.Quantity) {
			return nil, nil, fmt.Errorf(
				"%w: product %q (id %d): requested %d, available %d",
				e.ErrInsufficientStock,
				product.Name,
				product.ID,
				requested,
				product.Quantity,
			)
		}

		if _, seen := reserved[reqLine.ProductID]; !seen {
			decrementOrder = append(decrementOrder, reqLine.ProductID)
		}
		reserved[reqLine.ProductID] = requested

		lines = append(lines, domain.OrderLine{
			ProductID: product.ID,
			Quantity:  reqLine.Quantity,
			Price:     product.Price,
		})
	}

	decrements := make([]ProductDecrement, 0, len(decrementOrder))
	for _, id := range decrementOrder {
		// Суммарный резерв не превышает остаток товара, обратно в int32 влезает.
		decrements = append(decrements, ProductDecrement{ProductID: id, Quantity: int32(reserved[id])})
	}

	return lines, decrements, nil
}

// distinctProductIDs возвращает идентификаторы товаров запроса без повторов,
// сохраняя порядок первого упоминания.
func distinctProductIDs(reqLines []OrderLineReq) []int64 {
	seen := make(map[int64]struct{}, len(reqLines))
	ids := make([]int64, 0, len(reqLines))
	for _, line := range reqLines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}

	return ids
}
