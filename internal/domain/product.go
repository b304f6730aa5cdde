package domain

import "time"

// Product описывает товар каталога
type Product struct {
	ID         int64
	Name       string
	Price      int64 // Цена хранится в копейках
	Quantity   int32 // Остаток на складе, неотрицательный
	CategoryID int64
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	IsArchived bool
}

func NewProduct(name string, price int64, quantity int32, categoryID int64) *Product {
	return &Product{
		Name:       name,
		Price:      price,
		Quantity:   quantity,
		CategoryID: categoryID,
	}
}
