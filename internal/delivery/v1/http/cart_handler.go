package http

import (
	"net/http"

	"github.com/sweetslice/go-backend/internal/domain"
	"github.com/sweetslice/go-backend/internal/usecase"
	"github.com/sweetslice/go-backend/pkg/logger"
)

type CartHandler struct {
	cartUsecase usecase.CartUC
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, logger: logger}
}

type cartItemRequest struct {
	ProductID     string           `json:"productId"`
	Quantity      int              `json:"quantity"`
	Customization customizationDTO `json:"customization"`
}

func (req *cartItemRequest) customization() domain.Customization {
	return domain.Customization{
		Size:    req.Customization.Size,
		Flavor:  req.Customization.Flavor,
		Message: req.Customization.Message,
	}
}

// getCart
//
//	@Summary	Fetch the session cart
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	Response
//	@Router		/cart [get]
func (c *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	view, err := c.cartUsecase.GetCart(r.Context(), SessionFromCtx(r.Context()))
	if err != nil {
		c.logger.Warnf("get cart failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartDTO(view))
}

// addToCart
//
//	@Summary		Add a product to the cart
//	@Description	Identical product and customization merge into one line
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		cartItemRequest	true	"Product, quantity and customization"
//	@Success		200		{object}	Response
//	@Failure		404		{object}	ErrorResponse
//	@Router			/cart/items [post]
func (c *CartHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	view, err := c.cartUsecase.AddToCart(r.Context(), SessionFromCtx(r.Context()), &usecase.AddToCartReq{
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		Customization: req.customization(),
	})
	if err != nil {
		c.logger.Warnf("add to cart failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartDTO(view))
}

// updateQuantity
//
//	@Summary		Set the quantity of a cart line
//	@Description	A quantity below 1 removes the line
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		cartItemRequest	true	"Line to change and its new quantity"
//	@Success		200		{object}	Response
//	@Router			/cart/items [put]
func (c *CartHandler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	view, err := c.cartUsecase.UpdateQuantity(r.Context(), SessionFromCtx(r.Context()),
		req.ProductID, req.customization(), req.Quantity)
	if err != nil {
		c.logger.Warnf("update quantity failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartDTO(view))
}

// removeFromCart
//
//	@Summary	Remove one line from the cart
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Param		item	body		cartItemRequest	true	"Line to remove"
//	@Success	200		{object}	Response
//	@Router		/cart/items [delete]
func (c *CartHandler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	view, err := c.cartUsecase.RemoveFromCart(r.Context(), SessionFromCtx(r.Context()),
		req.ProductID, req.customization())
	if err != nil {
		c.logger.Warnf("remove from cart failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartDTO(view))
}

// clearCart
//
//	@Summary	Empty the cart
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	Response
//	@Router		/cart [delete]
func (c *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := c.cartUsecase.ClearCart(r.Context(), SessionFromCtx(r.Context())); err != nil {
		c.logger.Warnf("clear cart failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{"cleared": true})
}
