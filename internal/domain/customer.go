package domain

import "time"

// Customer описывает покупателя. Справочник покупателей ведётся внешней системой,
// здесь используется только проверка существования по идентификатору.
type Customer struct {
	ID        string // uuid
	Name      string
	Email     string
	CreatedAt time.Time
}
