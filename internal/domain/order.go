package domain

import "time"

// Order описывает заказ покупателя. Заказ создаётся ровно один раз за успешную
// транзакцию и никогда не сохраняется частично: либо все позиции, либо ничего.
type Order struct {
	ID         string // uuid
	CustomerID string
	Lines      []OrderLine
	CreatedAt  time.Time
}

// OrderLine — позиция заказа. Price фиксируется из каталога в момент создания
// заказа и больше не меняется, даже если цена товара в каталоге изменится.
type OrderLine struct {
	ProductID int64
	Quantity  int32
	Price     int64 // копейки, снимок на момент заказа
}

func NewOrder(customerID string, lines []OrderLine) *Order {
	return &Order{
		CustomerID: customerID,
		Lines:      lines,
	}
}

// Total возвращает сумму заказа в копейках.
func (o *Order) Total() int64 {
	var total int64
	for _, line := range o.Lines {
		total += line.Price * int64(line.Quantity)
	}
	return total
}
