package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/order-service/internal/domain"
	"github.com/DRSN-tech/order-service/pkg/e"
	"github.com/DRSN-tech/order-service/pkg/logger"
)

// Настраиваемый кэш для сценариев чтения каталога.
type stubCacheRepo struct {
	cached   map[int64]ProductInfo
	getErr   error
	mu       sync.Mutex
	setCalls int
}

func (s *stubCacheRepo) SetCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCalls
}

func (s *stubCacheRepo) GetProducts(ctx context.Context, ids []int64) (map[int64]ProductInfo, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	result := make(map[int64]ProductInfo)
	for _, id := range ids {
		if p, ok := s.cached[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (s *stubCacheRepo) SetProducts(ctx context.Context, products []ProductInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalls++
	return nil
}

func (s *stubCacheRepo) DeleteProducts(ctx context.Context, ids []int64) error {
	return nil
}

type stubImagesInfra struct {
	uploadErr    error
	cleanupCalls int
}

func (s *stubImagesInfra) UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	keys := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		keys = append(keys, req.Name+"/"+img.Name)
	}
	return NewUploadImagesRes(keys), nil
}

func (s *stubImagesInfra) CleanupImages(keys []string) {
	s.cleanupCalls++
}

func newCatalogUC(productRepo *mockProductRepo, cacheRepo *stubCacheRepo, imagesInfra *stubImagesInfra) *CatalogUseCase {
	return NewCatalogUC(
		productRepo,
		nil, // категория создаётся только внутри транзакции
		cacheRepo,
		imagesInfra,
		nil,
		logger.NewSlogLogger(),
	)
}

func TestRegisterNewProduct_Validation(t *testing.T) {
	uc := newCatalogUC(&mockProductRepo{}, &stubCacheRepo{}, &stubImagesInfra{})

	cases := []struct {
		name string
		req  *RegisterProductReq
		want error
	}{
		{"empty name", NewRegisterProductReq("  ", "Чай", 100, 1, nil), e.ErrProductNameRequired},
		{"empty category", NewRegisterProductReq("Пуэр", " ", 100, 1, nil), e.ErrMissingFields},
		{"negative price", NewRegisterProductReq("Пуэр", "Чай", -1, 1, nil), e.ErrInvalidPrice},
		{"negative quantity", NewRegisterProductReq("Пуэр", "Чай", 100, -1, nil), e.ErrInvalidQuantity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RegisterNewProduct(context.Background(), tc.req)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got: %v", tc.want, err)
			}
		})
	}
}

func TestRegisterNewProduct_AlreadyExists(t *testing.T) {
	productRepo := &mockProductRepo{products: map[int64]domain.Product{
		1: {ID: 1, Name: "Пуэр", Price: 100, Quantity: 5},
	}}
	uc := newCatalogUC(productRepo, &stubCacheRepo{}, &stubImagesInfra{})

	_, err := uc.RegisterNewProduct(context.Background(), NewRegisterProductReq("Пуэр", "Чай", 100, 5, nil))
	if !errors.Is(err, e.ErrProductAlreadyExists) {
		t.Errorf("expected ErrProductAlreadyExists, got: %v", err)
	}
}

func TestRegisterNewProduct_UploadFailure(t *testing.T) {
	imagesInfra := &stubImagesInfra{uploadErr: errors.New("minio unavailable")}
	uc := newCatalogUC(&mockProductRepo{}, &stubCacheRepo{}, imagesInfra)

	images := []ProductImage{*NewProductImage([]byte{0x1}, "image/png", 1, "front.png")}
	_, err := uc.RegisterNewProduct(context.Background(), NewRegisterProductReq("Пуэр", "Чай", 100, 5, images))
	if err == nil {
		t.Fatal("expected upload error")
	}
}

func TestGetProductsInfo_EmptyIDs(t *testing.T) {
	uc := newCatalogUC(&mockProductRepo{}, &stubCacheRepo{}, &stubImagesInfra{})

	_, err := uc.GetProductsInfo(context.Background(), NewGetProductsReq(nil))
	if !errors.Is(err, e.ErrProductsNotFound) {
		t.Errorf("expected ErrProductsNotFound, got: %v", err)
	}
}

func TestGetProductsInfo_CacheHit(t *testing.T) {
	cacheRepo := &stubCacheRepo{cached: map[int64]ProductInfo{
		1: NewProductInfo(1, "Кофе", "Напитки", 59999, 10),
	}}
	uc := newCatalogUC(&mockProductRepo{}, cacheRepo, &stubImagesInfra{})

	res, err := uc.GetProductsInfo(context.Background(), NewGetProductsReq([]int64{1}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Products) != 1 || res.Products[0].Name != "Кофе" {
		t.Errorf("unexpected products: %+v", res.Products)
	}
	if len(res.NotFoundProducts) != 0 {
		t.Errorf("unexpected not found list: %v", res.NotFoundProducts)
	}
}

func TestGetProductsInfo_DBFallbackAndNotFound(t *testing.T) {
	productRepo := &mockProductRepo{products: map[int64]domain.Product{
		2: {ID: 2, Name: "Чай", Price: 29900, Quantity: 5},
	}}
	cacheRepo := &stubCacheRepo{cached: map[int64]ProductInfo{
		1: NewProductInfo(1, "Кофе", "Напитки", 59999, 10),
	}}
	uc := newCatalogUC(productRepo, cacheRepo, &stubImagesInfra{})

	res, err := uc.GetProductsInfo(context.Background(), NewGetProductsReq([]int64{1, 2, 404}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(res.Products))
	}
	// Порядок результата соответствует порядку запрошенных идентификаторов.
	if res.Products[0].ID != 1 || res.Products[1].ID != 2 {
		t.Errorf("unexpected product order: %+v", res.Products)
	}
	if len(res.NotFoundProducts) != 1 || res.NotFoundProducts[0] != 404 {
		t.Errorf("expected [404] not found, got %v", res.NotFoundProducts)
	}

	// Фоновое кэширование успевает отработать.
	deadline := time.After(time.Second)
	for cacheRepo.SetCalls() == 0 {
		select {
		case <-deadline:
			t.Fatal("expected background SetProducts call")
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func TestGetProductsInfo_CacheFailureFallsBackToDB(t *testing.T) {
	productRepo := &mockProductRepo{products: map[int64]domain.Product{
		1: {ID: 1, Name: "Кофе", Price: 59999, Quantity: 10},
	}}
	cacheRepo := &stubCacheRepo{getErr: errors.New("redis down")}
	uc := newCatalogUC(productRepo, cacheRepo, &stubImagesInfra{})

	res, err := uc.GetProductsInfo(context.Background(), NewGetProductsReq([]int64{1}))
	if err != nil {
		t.Fatalf("cache failure must not fail the request: %v", err)
	}
	if len(res.Products) != 1 || res.Products[0].ID != 1 {
		t.Errorf("unexpected products: %+v", res.Products)
	}
}
