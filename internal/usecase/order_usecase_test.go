package usecase

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/DRSN-tech/order-service/internal/domain"
	"github.com/DRSN-tech/order-service/pkg/e"
	"github.com/DRSN-tech/order-service/pkg/logger"
)

// Mock CustomerRepository
type mockCustomerRepo struct {
	customers map[string]*domain.Customer
	err       error
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.customers[id], nil
}

// Mock ProductRepository
type mockProductRepo struct {
	products       map[int64]domain.Product
	decrementCalls int
	lastDecrements []ProductDecrement
	err            error
}

func (m *mockProductRepo) GetProductsByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockProductRepo) DecrementQuantities(ctx context.Context, decrements []ProductDecrement) error {
	m.decrementCalls++
	m.lastDecrements = decrements
	return nil
}

func (m *mockProductRepo) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	for _, p := range m.products {
		if p.Name == name {
			product := p
			return &product, nil
		}
	}
	return nil, nil
}

func (m *mockProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return product, nil
}

func (m *mockProductRepo) GetProductsInfo(ctx context.Context, ids []int64) ([]ProductInfo, error) {
	result := make([]ProductInfo, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			result = append(result, NewProductInfo(p.ID, p.Name, "", p.Price, p.Quantity))
		}
	}
	return result, nil
}

// Mock OrderRepository
type mockOrderRepo struct {
	createCalls int
	err         error
}

func (m *mockOrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.createCalls++
	order.ID = "order-1"
	return order, nil
}

// Mock OutboxRepository
type mockOutboxRepo struct {
	createCalls int
}

func (m *mockOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	m.createCalls++
	return event, nil
}

func (m *mockOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (m *mockOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	return nil
}

// Mock CacheRepository
type mockCacheRepo struct {
	deleteCalls    int
	lastDeletedIDs []int64
	onDelete       func()
}

func (m *mockCacheRepo) GetProducts(ctx context.Context, ids []int64) (map[int64]ProductInfo, error) {
	return map[int64]ProductInfo{}, nil
}

func (m *mockCacheRepo) SetProducts(ctx context.Context, products []ProductInfo) error {
	return nil
}

func (m *mockCacheRepo) DeleteProducts(ctx context.Context, ids []int64) error {
	m.deleteCalls++
	m.lastDeletedIDs = ids
	if m.onDelete != nil {
		m.onDelete()
	}
	return nil
}

// fakeTxSession подменяет транзакцию БД в сценариях, доходящих до записи.
type fakeTxSession struct {
	committed  bool
	rolledBack bool
	onCommit   func()
}

func (f *fakeTxSession) Transaction() interface{} { return nil }

func (f *fakeTxSession) Commit(ctx context.Context) error {
	if f.onCommit != nil {
		f.onCommit()
	}
	f.committed = true
	return nil
}

func (f *fakeTxSession) Rollback(ctx context.Context) error {
	f.rolledBack = true
	return nil
}

func (f *fakeTxSession) IsActive() bool {
	return !f.committed && !f.rolledBack
}

type orderFixture struct {
	customerRepo *mockCustomerRepo
	productRepo  *mockProductRepo
	orderRepo    *mockOrderRepo
	outboxRepo   *mockOutboxRepo
	cacheRepo    *mockCacheRepo
	uc           *OrderUseCase
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		customerRepo: &mockCustomerRepo{customers: map[string]*domain.Customer{
			"11111111-1111-1111-1111-111111111111": {
				ID:    "11111111-1111-1111-1111-111111111111",
				Name:  "Иван",
				Email: "ivan@example.com",
			},
		}},
		productRepo: &mockProductRepo{products: map[int64]domain.Product{
			1: {ID: 1, Name: "Кофе", Price: 59999, Quantity: 10},
			2: {ID: 2, Name: "Чай", Price: 29900, Quantity: 2},
		}},
		orderRepo:  &mockOrderRepo{},
		outboxRepo: &mockOutboxRepo{},
		cacheRepo:  &mockCacheRepo{},
	}

	f.uc = NewOrderUC(
		f.customerRepo,
		f.productRepo,
		f.orderRepo,
		f.outboxRepo,
		f.cacheRepo,
		nil, // транзакция не открывается в проверяемых сценариях
		logger.NewSlogLogger(),
	)

	return f
}

// useTx подставляет поддельную транзакцию вместо открытия настоящей.
func (f *orderFixture) useTx() *fakeTxSession {
	tx := &fakeTxSession{}
	f.uc.beginTx = func(ctx context.Context) (context.Context, txSession, error) {
		return ctx, tx, nil
	}
	return tx
}

func (f *orderFixture) assertNoWrites(t *testing.T) {
	t.Helper()
	if f.orderRepo.createCalls != 0 {
		t.Errorf("expected no order writes, got %d", f.orderRepo.createCalls)
	}
	if f.productRepo.decrementCalls != 0 {
		t.Errorf("expected no stock decrements, got %d", f.productRepo.decrementCalls)
	}
	if f.outboxRepo.createCalls != 0 {
		t.Errorf("expected no outbox writes, got %d", f.outboxRepo.createCalls)
	}
}

func TestCreateOrder_Success(t *testing.T) {
	f := newOrderFixture()
	tx := f.useTx()
	tx.onCommit = func() {
		if f.orderRepo.createCalls != 1 || f.productRepo.decrementCalls != 1 || f.outboxRepo.createCalls != 1 {
			t.Error("commit raised before order, decrement and outbox writes")
		}
	}
	f.cacheRepo.onDelete = func() {
		if !tx.committed {
			t.Error("cache invalidated before commit")
		}
	}

	order, err := f.uc.CreateOrder(context.Background(), NewCreateOrderReq(
		"11111111-1111-1111-1111-111111111111",
		[]OrderLineReq{
			{ProductID: 1, Quantity: 3},
			{ProductID: 2, Quantity: 1},
			{ProductID: 1, Quantity: 2},
		},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.ID != "order-1" || order.CustomerID != "11111111-1111-1111-1111-111111111111" {
		t.Errorf("unexpected order header: %+v", order)
	}
	if len(order.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(order.Lines))
	}
	if order.Lines[0].Price != 59999 || order.Lines[1].Price != 29900 || order.Lines[2].Price != 59999 {
		t.Errorf("expected snapshot prices, got: %+v", order.Lines)
	}

	// Списания агрегированы по товарам в порядке первого упоминания.
	decrements := f.productRepo.lastDecrements
	if len(decrements) != 2 {
		t.Fatalf("expected 2 decrements, got %d", len(decrements))
	}
	if decrements[0].ProductID != 1 || decrements[0].Quantity != 5 {
		t.Errorf("unexpected first decrement: %+v", decrements[0])
	}
	if decrements[1].ProductID != 2 || decrements[1].Quantity != 1 {
		t.Errorf("unexpected second decrement: %+v", decrements[1])
	}

	if !tx.committed {
		t.Error("expected transaction commit")
	}
	if f.cacheRepo.deleteCalls != 1 || len(f.cacheRepo.lastDeletedIDs) != 2 {
		t.Errorf("expected cache invalidation for both products, got calls=%d ids=%v",
			f.cacheRepo.deleteCalls, f.cacheRepo.lastDeletedIDs)
	}
}

func TestCreateOrder_PersistFailureRollsBack(t *testing.T) {
	f := newOrderFixture()
	tx := f.useTx()
	f.orderRepo.err = errors.New("connection reset")

	_, err := f.uc.CreateOrder(context.Background(), NewCreateOrderReq(
		"11111111-1111-1111-1111-111111111111",
		[]OrderLineReq{{ProductID: 1, Quantity: 1}},
	))
	if err == nil {
		t.Fatal("expected error from order persistence")
	}

	if tx.committed {
		t.Error("failed transaction must not commit")
	}
	if !tx.rolledBack {
		t.Error("expected rollback after persistence failure")
	}
	if f.productRepo.decrementCalls != 0 || f.outboxRepo.createCalls != 0 || f.cacheRepo.deleteCalls != 0 {
		t.Error("no decrement, outbox or cache writes expected after persistence failure")
	}
}

func TestCreateOrder_EmptyOrder(t *testing.T) {
	f := newOrderFixture()

	_, err := f.uc.CreateOrder(context.Background(), NewCreateOrderReq("11111111-1111-1111-1111-111111111111", nil))
	if !errors.Is(err, e.ErrEmptyOrder) {
		t.Errorf("expected ErrEmptyOrder, got: %v", err)
	}
	f.assertNoWrites(t)
}

func TestCreateOrder_InvalidQuantity(t *testing.T) {
	f := newOrderFixture()

	for _, quantity := range []int32{0, -1} {
		_, err := f.uc.CreateOrder(context.Background(), NewCreateOrderReq(
			"11111111-1111-1111-1111-111111111111",
			[]OrderLineReq{{ProductID: 1, Quantity: quantity}},
		))
		if !errors.Is(err, e.ErrInvalidQuantity) {
			t.Errorf("quantity %d: expected ErrInvalidQuantity, got: %v", quantity, err)
		}
	}
	f.assertNoWrites(t)
}

func TestCreateOrder_CustomerNotFound(t *testing.T) {
	f := newOrderFixture()

	_, err := f.uc.CreateOrder(context.Background(), NewCreateOrderReq(
		"99999999-9999-9999-9999-999999999999",
		[]OrderLineReq{{ProductID: 1, Quantity: 1}},
	))
	if !errors.Is(err, e.ErrCustomerNotFound) {
		t.Errorf("expected ErrCustomerNotFound, got: %v", err)
	}
	f.assertNoWrites(t)
}

func TestCreateOrder_ProductsNotFound(t *testing.T) {
	f := newOrderFixture()

	_, err := f.uc.CreateOrder(context.Background(), NewCreateOrderReq(
		"11111111-1111-1111-1111-111111111111",
		[]OrderLineReq{
			{ProductID: 1, Quantity: 1},
			{ProductID: 404, Quantity: 1},
		},
	))
	if !errors.Is(err, e.ErrProductsNotFound) {
		t.Errorf("expected ErrProductsNotFound, got: %v", err)
	}
	f.assertNoWrites(t)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	f := newOrderFixture()

	_, err := f.uc.CreateOrder(context.Background(), NewCreateOrderReq(
		"11111111-1111-1111-1111-111111111111",
		[]OrderLineReq{{ProductID: 2, Quantity: 5}},
	))
	if !errors.Is(err, e.ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got: %v", err)
	}
	f.assertNoWrites(t)
}

func TestCreateOrder_DuplicateLinesCumulativeStock(t *testing.T) {
	f := newOrderFixture()

	// Остаток товара 2 равен 2: каждая позиция проходит поодиночке,
	// но суммарно они превышают остаток.
	_, err := f.uc.CreateOrder(context.Background(), NewCreateOrderReq(
		"11111111-1111-1111-1111-111111111111",
		[]OrderLineReq{
			{ProductID: 2, Quantity: 1},
			{ProductID: 2, Quantity: 2},
		},
	))
	if !errors.Is(err, e.ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock for cumulative duplicate lines, got: %v", err)
	}
	f.assertNoWrites(t)
}

func TestCreateOrder_FailureIsRepeatable(t *testing.T) {
	f := newOrderFixture()

	req := NewCreateOrderReq(
		"11111111-1111-1111-1111-111111111111",
		[]OrderLineReq{{ProductID: 2, Quantity: 5}},
	)

	for i := 0; i < 3; i++ {
		_, err := f.uc.CreateOrder(context.Background(), req)
		if !errors.Is(err, e.ErrInsufficientStock) {
			t.Fatalf("attempt %d: expected ErrInsufficientStock, got: %v", i, err)
		}
	}
	// Состояние не изменилось, повтор даёт тот же результат.
	f.assertNoWrites(t)
}

func TestBuildOrderLines_PriceSnapshotAndLines(t *testing.T) {
	resolved := map[int64]domain.Product{
		1: {ID: 1, Name: "Кофе", Price: 59999, Quantity: 10},
		2: {ID: 2, Name: "Чай", Price: 29900, Quantity: 5},
	}

	lines, decrements, err := buildOrderLines([]OrderLineReq{
		{ProductID: 1, Quantity: 3},
		{ProductID: 2, Quantity: 1},
	}, resolved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].ProductID != 1 || lines[0].Quantity != 3 || lines[0].Price != 59999 {
		t.Errorf("unexpected first line: %+v", lines[0])
	}
	if lines[1].ProductID != 2 || lines[1].Quantity != 1 || lines[1].Price != 29900 {
		t.Errorf("unexpected second line: %+v", lines[1])
	}

	if len(decrements) != 2 {
		t.Fatalf("expected 2 decrements, got %d", len(decrements))
	}
	if decrements[0].ProductID != 1 || decrements[0].Quantity != 3 {
		t.Errorf("unexpected first decrement: %+v", decrements[0])
	}
}

func TestBuildOrderLines_DuplicateLinesAggregated(t *testing.T) {
	resolved := map[int64]domain.Product{
		1: {ID: 1, Name: "Кофе", Price: 59999, Quantity: 10},
	}

	lines, decrements, err := buildOrderLines([]OrderLineReq{
		{ProductID: 1, Quantity: 4},
		{ProductID: 1, Quantity: 6},
	}, resolved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Позиции сохраняются по отдельности, списание агрегируется.
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if len(decrements) != 1 {
		t.Fatalf("expected 1 aggregated decrement, got %d", len(decrements))
	}
	if decrements[0].ProductID != 1 || decrements[0].Quantity != 10 {
		t.Errorf("unexpected decrement: %+v", decrements[0])
	}
}

func TestBuildOrderLines_ExactStockBoundary(t *testing.T) {
	resolved := map[int64]domain.Product{
		1: {ID: 1, Name: "Кофе", Price: 59999, Quantity: 5},
	}

	// Ровно весь остаток: допустимо.
	_, _, err := buildOrderLines([]OrderLineReq{{ProductID: 1, Quantity: 5}}, resolved)
	if err != nil {
		t.Errorf("expected full stock order to pass, got: %v", err)
	}

	// На единицу больше: отказ.
	_, _, err = buildOrderLines([]OrderLineReq{{ProductID: 1, Quantity: 6}}, resolved)
	if !errors.Is(err, e.ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got: %v", err)
	}
}

func TestBuildOrderLines_NearMaxQuantities(t *testing.T) {
	resolved := map[int64]domain.Product{
		1: {ID: 1, Name: "Кофе", Price: 59999, Quantity: math.MaxInt32},
	}

	// Сумма позиций больше int32: без 64-битного резерва она обернулась бы
	// в положительное число меньше остатка и проверка пропустила бы заказ.
	_, _, err := buildOrderLines([]OrderLineReq{
		{ProductID: 1, Quantity: 2_000_000_000},
		{ProductID: 1, Quantity: 2_000_000_000},
		{ProductID: 1, Quantity: 400_000_000},
	}, resolved)
	if !errors.Is(err, e.ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock for overflowing total, got: %v", err)
	}

	// Ровно весь максимальный остаток одной позицией проходит.
	_, decrements, err := buildOrderLines([]OrderLineReq{
		{ProductID: 1, Quantity: math.MaxInt32},
	}, resolved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decrements) != 1 || decrements[0].Quantity != math.MaxInt32 {
		t.Errorf("unexpected decrements: %+v", decrements)
	}
}

func TestBuildOrderLines_ErrorNamesProduct(t *testing.T) {
	resolved := map[int64]domain.Product{
		2: {ID: 2, Name: "Чай", Price: 29900, Quantity: 1},
	}

	_, _, err := buildOrderLines([]OrderLineReq{{ProductID: 2, Quantity: 3}}, resolved)
	if !errors.Is(err, e.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got: %v", err)
	}
	// Сообщение должно называть конкретный товар.
	if got := err.Error(); !containsAll(got, "Чай", "2") {
		t.Errorf("error should name product and id, got: %s", got)
	}
}

func TestDistinctProductIDs(t *testing.T) {
	ids := distinctProductIDs([]OrderLineReq{
		{ProductID: 3, Quantity: 1},
		{ProductID: 1, Quantity: 1},
		{ProductID: 3, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})

	want := []int64{3, 1, 2}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("expected %v, got %v", want, ids)
			break
		}
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
