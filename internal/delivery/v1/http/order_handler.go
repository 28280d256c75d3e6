package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sweetslice/go-backend/internal/usecase"
	"github.com/sweetslice/go-backend/pkg/logger"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUC
	logger       logger.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase, logger: logger}
}

type createOrderRequest struct {
	CakeType            string          `json:"cakeType"`
	Size                string          `json:"size"`
	Flavor              string          `json:"flavor"`
	Message             string          `json:"message"`
	SpecialInstructions string          `json:"specialInstructions"`
	DeliveryDate        time.Time       `json:"deliveryDate"`
	DeliveryTime        string          `json:"deliveryTime"`
	Price               decimal.Decimal `json:"price"`
}

type updateOrderRequest struct {
	CakeType            *string          `json:"cakeType"`
	Size                *string          `json:"size"`
	Flavor              *string          `json:"flavor"`
	Message             *string          `json:"message"`
	SpecialInstructions *string          `json:"specialInstructions"`
	DeliveryDate        *time.Time       `json:"deliveryDate"`
	DeliveryTime        *string          `json:"deliveryTime"`
	Status              *string          `json:"status"`
	Price               *decimal.Decimal `json:"price"`
}

// createOrder
//
//	@Summary	Place a custom cake order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		order	body		createOrderRequest	true	"Order details"
//	@Success	201		{object}	Response
//	@Failure	400		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/orders [post]
func (o *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	cents, err := decimalToCents(req.Price)
	if err != nil {
		WriteError(w, err)
		return
	}

	order, err := o.orderUsecase.CreateOrder(r.Context(), PrincipalFromCtx(r.Context()), &usecase.CreateOrderReq{
		CakeType:            req.CakeType,
		Size:                req.Size,
		Flavor:              req.Flavor,
		Message:             req.Message,
		SpecialInstructions: req.SpecialInstructions,
		DeliveryDate:        req.DeliveryDate,
		DeliveryTime:        req.DeliveryTime,
		PriceCents:          cents,
	})
	if err != nil {
		o.logger.Warnf("create order failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toOrderDTO(order))
}

// listOrders
//
//	@Summary	List your orders, newest first
//	@Tags		orders
//	@Produce	json
//	@Success	200	{object}	Response
//	@Security	BearerAuth
//	@Router		/orders [get]
func (o *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := o.orderUsecase.ListOrders(r.Context(), PrincipalFromCtx(r.Context()))
	if err != nil {
		o.logger.Warnf("list orders failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderDTOs(orders))
}

// updateOrder
//
//	@Summary		Update one of your orders
//	@Description	Orders belonging to someone else resolve as not found
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Order id"
//	@Param			order	body		updateOrderRequest	true	"Fields to change"
//	@Success		200		{object}	Response
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/orders/{id} [put]
func (o *OrderHandler) updateOrder(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	ucReq := usecase.UpdateOrderReq{
		CakeType:            req.CakeType,
		Size:                req.Size,
		Flavor:              req.Flavor,
		Message:             req.Message,
		SpecialInstructions: req.SpecialInstructions,
		DeliveryDate:        req.DeliveryDate,
		DeliveryTime:        req.DeliveryTime,
		Status:              req.Status,
	}
	if req.Price != nil {
		cents, err := decimalToCents(*req.Price)
		if err != nil {
			WriteError(w, err)
			return
		}
		ucReq.PriceCents = &cents
	}

	order, err := o.orderUsecase.UpdateOrder(r.Context(), PrincipalFromCtx(r.Context()), chi.URLParam(r, "id"), &ucReq)
	if err != nil {
		o.logger.Warnf("update order failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderDTO(order))
}

// deleteOrder
//
//	@Summary	Cancel and remove one of your orders
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"Order id"
//	@Success	200	{object}	Response
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/orders/{id} [delete]
func (o *OrderHandler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := o.orderUsecase.DeleteOrder(r.Context(), PrincipalFromCtx(r.Context()), chi.URLParam(r, "id")); err != nil {
		o.logger.Warnf("delete order failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{"deleted": true})
}
