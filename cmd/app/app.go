package main

import (
	"github.com/DRSN-tech/order-service/internal/app"
)

//	@title			Order Service API
//	@version		1.0
//	@description	Сервис создания заказов и каталога товаров
//	@BasePath		/api/v1

func main() {
	app.Run()
}
