package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/order-service/internal/domain"
	"github.com/DRSN-tech/order-service/internal/usecase"
	"github.com/DRSN-tech/order-service/pkg/e"
	"github.com/DRSN-tech/order-service/pkg/logger"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUC
	logger       logger.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase, logger: logger}
}

type createOrderRequest struct {
	CustomerID string                   `json:"customer_id"`
	Products   []createOrderRequestLine `json:"products"`
}

type createOrderRequestLine struct {
	ID       int64 `json:"id"`
	Quantity int32 `json:"quantity"`
}

type orderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	Lines      []orderResponseLine `json:"lines"`
	TotalCents int64               `json:"total_cents"`
	CreatedAt  string              `json:"created_at"`
}

type orderResponseLine struct {
	ProductID  int64 `json:"product_id"`
	Quantity   int32 `json:"quantity"`
	PriceCents int64 `json:"price_cents"`
}

// createOrder
//
//	@Summary		Создание заказа
//	@Description	Создаёт заказ: проверяет покупателя, остатки товаров и атомарно списывает их
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		createOrderRequest	true	"Заказ"
//	@Success		201		{object}	orderResponse		"Созданный заказ"
//	@Failure		400		{object}	ErrorResponse		"Ошибка валидации"
//	@Failure		404		{object}	ErrorResponse		"Покупатель или товары не найдены"
//	@Failure		409		{object}	ErrorResponse		"Недостаточно остатка"
//	@Router			/orders [post]
func (h *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	if req.CustomerID == "" {
		h.logger.Warnf("%d %s: empty customer_id", http.StatusBadRequest, e.ErrStatusBadRequest.Error())
		WriteError(w, e.Wrap("customer_id is required", e.ErrMissingFields))
		return
	}

	lines := make([]usecase.OrderLineReq, 0, len(req.Products))
	for _, p := range req.Products {
		lines = append(lines, usecase.OrderLineReq{ProductID: p.ID, Quantity: p.Quantity})
	}

	order, err := h.orderUsecase.CreateOrder(r.Context(), usecase.NewCreateOrderReq(req.CustomerID, lines))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toOrderResponse(order))
}

func toOrderResponse(order *domain.Order) *orderResponse {
	lines := make([]orderResponseLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, orderResponseLine{
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			PriceCents: line.Price,
		})
	}

	return &orderResponse{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Lines:      lines,
		TotalCents: order.Total(),
		CreatedAt:  order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
