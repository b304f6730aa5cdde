package usecase

// ORDER USECASE

// CreateOrderReq — запрос на создание заказа.
type CreateOrderReq struct {
	CustomerID string
	Lines      []OrderLineReq
}

// OrderLineReq — одна запрошенная позиция заказа. Идентификатор товара может
// повторяться между позициями, проверка остатка в таком случае кумулятивная.
type OrderLineReq struct {
	ProductID int64
	Quantity  int32
}

// ProductDecrement — списание остатка одного товара.
type ProductDecrement struct {
	ProductID int64
	Quantity  int32
}

// CATALOG USECASE

// RegisterProductReq — запрос на добавление нового товара.
type RegisterProductReq struct {
	Name         string
	CategoryName string
	Price        int64 // копейки
	Quantity     int32
	Images       []ProductImage
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// GetProductsReq — запрос информации о товарах по их идентификаторам.
type GetProductsReq struct {
	IDs []int64
}

// GetProductsRes — ответ с данными запрошенных товаров.
type GetProductsRes struct {
	Products         []ProductInfo
	NotFoundProducts []int64
}

// ProductInfo — DTO с информацией о товаре для внешнего использования.
type ProductInfo struct {
	ID           int64
	Name         string
	CategoryName string
	Price        int64
	Quantity     int32
}

// INFRASTRUCTURE

type WriteRawMessageReq struct {
	OrderID string
	Payload []byte
}

// UploadImagesReq — запрос на загрузку изображений товара.
type UploadImagesReq struct {
	Name   string
	Images []ProductImage
}

// UploadImagesRes — результат загрузки изображений (ключи в MinIO).
type UploadImagesRes struct {
	ImagesKeys []string
}

// MAPPERS

func NewCreateOrderReq(customerID string, lines []OrderLineReq) *CreateOrderReq {
	return &CreateOrderReq{
		CustomerID: customerID,
		Lines:      lines,
	}
}

func NewRegisterProductReq(name string, category string, price int64, quantity int32, images []ProductImage) *RegisterProductReq {
	return &RegisterProductReq{
		Name:         name,
		CategoryName: category,
		Price:        price,
		Quantity:     quantity,
		Images:       images,
	}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewGetProductsReq(ids []int64) *GetProductsReq {
	return &GetProductsReq{ids}
}

func NewGetProductsRes(pr []ProductInfo, notFoundProducts []int64) *GetProductsRes {
	return &GetProductsRes{
		Products:         pr,
		NotFoundProducts: notFoundProducts,
	}
}

func NewProductInfo(id int64, name string, category string, price int64, quantity int32) ProductInfo {
	return ProductInfo{
		ID:           id,
		Name:         name,
		CategoryName: category,
		Price:        price,
		Quantity:     quantity,
	}
}

func NewWriteRawMessageReq(orderID string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		OrderID: orderID,
		Payload: payload,
	}
}

func NewUploadImagesReq(name string, images []ProductImage) *UploadImagesReq {
	return &UploadImagesReq{
		Name:   name,
		Images: images,
	}
}

func NewUploadImagesRes(imagesKeys []string) *UploadImagesRes {
	return &UploadImagesRes{
		ImagesKeys: imagesKeys,
	}
}
