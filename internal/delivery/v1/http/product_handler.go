package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sweetslice/go-backend/internal/usecase"
	"github.com/sweetslice/go-backend/pkg/e"
	"github.com/sweetslice/go-backend/pkg/logger"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

type createProductRequest struct {
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Description  string           `json:"description"`
	BasePrice    decimal.Decimal  `json:"basePrice"`
	Sizes        []string         `json:"sizes"`
	Flavors      []string         `json:"flavors"`
	Images       []string         `json:"images"`
	Customizable *bool            `json:"customizable"`
}

type updateProductRequest struct {
	Name         *string          `json:"name"`
	Category     *string          `json:"category"`
	Description  *string          `json:"description"`
	BasePrice    *decimal.Decimal `json:"basePrice"`
	Sizes        *[]string        `json:"sizes"`
	Flavors      *[]string        `json:"flavors"`
	Images       *[]string        `json:"images"`
	Customizable *bool            `json:"customizable"`
	Active       *bool            `json:"active"`
}

type bulkUpdateRequest struct {
	Updates []struct {
		ID   string               `json:"id"`
		Data updateProductRequest `json:"data"`
	} `json:"updates"`
}

func (req *updateProductRequest) toUsecase() (usecase.UpdateProductReq, error) {
	out := usecase.UpdateProductReq{
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		Sizes:        req.Sizes,
		Flavors:      req.Flavors,
		Images:       req.Images,
		Customizable: req.Customizable,
		Active:       req.Active,
	}
	if req.BasePrice != nil {
		cents, err := decimalToCents(*req.BasePrice)
		if err != nil {
			return out, err
		}
		out.BasePriceCents = &cents
	}
	return out, nil
}

// listProducts
//
//	@Summary		Browse the catalog
//	@Description	Lists active products with filtering, sorting and pagination
//	@Tags			products
//	@Produce		json
//	@Param			category		query		string	false	"Exact category"
//	@Param			search			query		string	false	"Substring over name and description"
//	@Param			minPrice		query		string	false	"Inclusive lower price bound"
//	@Param			maxPrice		query		string	false	"Inclusive upper price bound"
//	@Param			customizable	query		bool	false	"Customizable only"
//	@Param			sort			query		string	false	"createdAt, name, basePrice or category"
//	@Param			order			query		string	false	"asc or desc"
//	@Param			page			query		int		false	"Page number, starting at 1"
//	@Param			limit			query		int		false	"Page size, capped at 100"
//	@Success		200				{object}	Response
//	@Failure		400				{object}	ErrorResponse
//	@Router			/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	query, err := parseProductQuery(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	list, err := p.productUsecase.ListProducts(r.Context(), query)
	if err != nil {
		p.logger.Warnf("list products failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccessPage(w, http.StatusOK, toProductDTOs(list.Items), list.Pagination)
}

// getProduct
//
//	@Summary	Fetch one product
//	@Tags		products
//	@Produce	json
//	@Param		id	path		string	true	"Product id"
//	@Success	200	{object}	Response
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := p.productUsecase.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductDTO(product))
}

// listCategories
//
//	@Summary	List categories present in the catalog
//	@Tags		products
//	@Produce	json
//	@Success	200	{object}	Response
//	@Router		/products/categories [get]
func (p *ProductHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := p.productUsecase.ListCategories(r.Context())
	if err != nil {
		p.logger.Warnf("list categories failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, categories)
}

// listSizes
//
//	@Summary	List sizes offered across the catalog
//	@Tags		products
//	@Produce	json
//	@Success	200	{object}	Response
//	@Router		/products/sizes [get]
func (p *ProductHandler) listSizes(w http.ResponseWriter, r *http.Request) {
	sizes, err := p.productUsecase.ListSizes(r.Context())
	if err != nil {
		p.logger.Warnf("list sizes failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, sizes)
}

// listFlavors
//
//	@Summary	List flavors offered across the catalog
//	@Tags		products
//	@Produce	json
//	@Success	200	{object}	Response
//	@Router		/products/flavors [get]
func (p *ProductHandler) listFlavors(w http.ResponseWriter, r *http.Request) {
	flavors, err := p.productUsecase.ListFlavors(r.Context())
	if err != nil {
		p.logger.Warnf("list flavors failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, flavors)
}

// createProduct
//
//	@Summary	Add a product to the catalog
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		product	body		createProductRequest	true	"New product"
//	@Success	201		{object}	Response
//	@Failure	400		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	cents, err := decimalToCents(req.BasePrice)
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.CreateProduct(r.Context(), &usecase.CreateProductReq{
		Name:           req.Name,
		Category:       req.Category,
		Description:    req.Description,
		BasePriceCents: cents,
		Sizes:          req.Sizes,
		Flavors:        req.Flavors,
		Images:         req.Images,
		Customizable:   req.Customizable,
	})
	if err != nil {
		p.logger.Warnf("create product failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductDTO(product))
}

// updateProduct
//
//	@Summary	Update a product
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Product id"
//	@Param		product	body		updateProductRequest	true	"Fields to change"
//	@Success	200		{object}	Response
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/products/{id} [put]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	ucReq, err := req.toUsecase()
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.UpdateProduct(r.Context(), chi.URLParam(r, "id"), &ucReq)
	if err != nil {
		p.logger.Warnf("update product failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductDTO(product))
}

// deleteProduct
//
//	@Summary	Archive a product
//	@Description	Soft delete; the product disappears from the catalog but keeps its row
//	@Tags		products
//	@Produce	json
//	@Param		id	path		string	true	"Product id"
//	@Success	200	{object}	Response
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := p.productUsecase.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		p.logger.Warnf("delete product failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// bulkUpdateProducts
//
//	@Summary	Apply independent updates to many products
//	@Description	Best effort; failures are reported per item and do not roll back the rest
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		updates	body		bulkUpdateRequest	true	"Per-product updates"
//	@Success	200		{object}	Response
//	@Failure	400		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/products/bulk [patch]
func (p *ProductHandler) bulkUpdateProducts(w http.ResponseWriter, r *http.Request) {
	var req bulkUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	items := make([]usecase.BulkUpdateItem, 0, len(req.Updates))
	for _, update := range req.Updates {
		data, err := update.Data.toUsecase()
		if err != nil {
			WriteError(w, err)
			return
		}
		items = append(items, usecase.BulkUpdateItem{ID: update.ID, Data: data})
	}

	res, err := p.productUsecase.BulkUpdateProducts(r.Context(), items)
	if err != nil {
		p.logger.Warnf("bulk update failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// uploadProductImages
//
//	@Summary	Upload product images
//	@Tags		products
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		id		path		string	true	"Product id"
//	@Param		images	formData	file	true	"Image files"
//	@Success	200		{object}	Response
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/products/{id}/images [post]
func (p *ProductHandler) uploadProductImages(w http.ResponseWriter, r *http.Request) {
	const (
		maxTotalRequestSize = 150 << 20
		maxMemory           = 32 << 20
	)

	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	images, err := parseImages(r.MultipartForm.File["images"])
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.UploadProductImages(r.Context(), chi.URLParam(r, "id"), images)
	if err != nil {
		p.logger.Warnf("upload images failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductDTO(product))
}
