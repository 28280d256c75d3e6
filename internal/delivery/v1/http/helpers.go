package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetslice/go-backend/internal/domain"
	"github.com/sweetslice/go-backend/internal/usecase"
	"github.com/sweetslice/go-backend/pkg/e"
)

// Response is the success envelope every endpoint returns.
type Response struct {
	Success    bool                `json:"success"`
	Data       interface{}         `json:"data,omitempty"`
	Pagination *PaginationResponse `json:"pagination,omitempty"`
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type PaginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Success: false,
		Code:    code,
		Message: message,
	}
}

func NewPaginationResponse(p usecase.Pagination) *PaginationResponse {
	return &PaginationResponse{
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

// ToHTTPResponse maps an application error onto a status code and message.
// Wrapped errors resolve through errors.Is / errors.As; anything unrecognized
// is reported as a 500 without leaking internals.
func ToHTTPResponse(err error) (int, string, string) {
	var validationErr *e.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Message, validationErr.Field
	}

	switch {
	case errors.Is(err, e.ErrStatusBadRequest),
		errors.Is(err, e.ErrExpectedMultipart),
		errors.Is(err, e.ErrMissingFields),
		errors.Is(err, e.ErrInvalidPrice),
		errors.Is(err, e.ErrPricePrecision),
		errors.Is(err, e.ErrNoImages),
		errors.Is(err, e.ErrTooManyImages),
		errors.Is(err, e.ErrFileTooLarge),
		errors.Is(err, e.ErrEmailTaken):
		return http.StatusBadRequest, unwrapMessage(err), ""
	case errors.Is(err, e.ErrUnauthorized),
		errors.Is(err, e.ErrInvalidToken),
		errors.Is(err, e.ErrInvalidCredentials):
		return http.StatusUnauthorized, unwrapMessage(err), ""
	case errors.Is(err, e.ErrForbidden),
		errors.Is(err, e.ErrSelfManagement):
		return http.StatusForbidden, unwrapMessage(err), ""
	case errors.Is(err, e.ErrProductNotFound),
		errors.Is(err, e.ErrUserNotFound),
		errors.Is(err, e.ErrOrderNotFound):
		return http.StatusNotFound, unwrapMessage(err), ""
	case errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, unwrapMessage(err), ""
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error(), ""
	}
}

// unwrapMessage strips the operation prefixes added by e.Wrap, keeping only
// the sentinel's own message.
func unwrapMessage(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg, field := ToHTTPResponse(err)
	resp := NewErrorResponse(code, msg)
	resp.Field = field
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Success: true, Data: data})
}

func WriteSuccessPage(w http.ResponseWriter, status int, data interface{}, p usecase.Pagination) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Success: true, Data: data, Pagination: NewPaginationResponse(p)})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return e.Wrap("invalid request body", e.ErrStatusBadRequest)
	}
	return nil
}

// parsePriceToCents converts a decimal string like "45.99" or "46" to cents.
// Rejects negatives, more than 2 decimal places, and absurdly large values.
func parsePriceToCents(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, errors.New("price is empty")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	maxPrice := decimal.NewFromInt(1_000_000)
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision
	}

	cents := d.Mul(decimal.NewFromInt(100)).Round(0)
	return cents.IntPart(), nil
}

// centsToPrice renders cents as a fixed two-decimal string ("4599" -> "45.99").
func centsToPrice(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// decimalToCents converts a JSON decimal to cents with the same constraints
// as parsePriceToCents.
func decimalToCents(d decimal.Decimal) (int64, error) {
	return parsePriceToCents(d.String())
}

// parseProductQuery reads the catalog listing options from the query string.
// Numeric parse failures are validation errors, not silent fallbacks.
func parseProductQuery(r *http.Request) (usecase.ProductQuery, error) {
	q := usecase.ProductQuery{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Sort:     r.URL.Query().Get("sort"),
		Order:    r.URL.Query().Get("order"),
	}

	var err error
	if q.Page, err = parseIntParam(r, "page"); err != nil {
		return q, err
	}
	if q.Limit, err = parseIntParam(r, "limit"); err != nil {
		return q, err
	}

	if v := r.URL.Query().Get("minPrice"); v != "" {
		cents, err := parsePriceToCents(v)
		if err != nil {
			return q, e.NewValidationError("minPrice", "invalid price")
		}
		q.MinPriceCents = &cents
	}
	if v := r.URL.Query().Get("maxPrice"); v != "" {
		cents, err := parsePriceToCents(v)
		if err != nil {
			return q, e.NewValidationError("maxPrice", "invalid price")
		}
		q.MaxPriceCents = &cents
	}
	if v := r.URL.Query().Get("customizable"); v != "" {
		customizable, err := strconv.ParseBool(v)
		if err != nil {
			return q, e.NewValidationError("customizable", "must be true or false")
		}
		q.Customizable = &customizable
	}

	return q, nil
}

func parseIntParam(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, e.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.ErrExpectedMultipart
	}
	return r.ParseMultipartForm(maxMemory)
}

func parseImages(files []*multipart.FileHeader) ([]usecase.ProductImage, error) {
	const (
		maxImageCount = 10
		maxFileSize   = 15 << 20
	)

	if len(files) == 0 {
		return nil, e.ErrNoImages
	}
	if len(files) > maxImageCount {
		return nil, e.ErrTooManyImages
	}

	images := make([]usecase.ProductImage, 0, len(files))
	for _, fh := range files {
		data, mimeType, err := readFile(fh, maxFileSize)
		if err != nil {
			return nil, err
		}
		images = append(images, usecase.ProductImage{
			Data:     data,
			MimeType: mimeType,
			Size:     int64(len(data)),
			Name:     fh.Filename,
		})
	}
	return images, nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}

// DTOs rendered to clients. Money travels as fixed two-decimal strings.

type productDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	BasePrice    string   `json:"basePrice"`
	Sizes        []string `json:"sizes"`
	Flavors      []string `json:"flavors"`
	Images       []string `json:"images"`
	Customizable bool     `json:"customizable"`
	Active       bool     `json:"active"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    *string  `json:"updatedAt,omitempty"`
}

func toProductDTO(p *domain.Product) productDTO {
	dto := productDTO{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Description:  p.Description,
		BasePrice:    centsToPrice(p.BasePriceCents),
		Sizes:        p.Sizes,
		Flavors:      p.Flavors,
		Images:       p.Images,
		Customizable: p.Customizable,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
	if p.UpdatedAt != nil {
		updatedAt := p.UpdatedAt.Format(time.RFC3339)
		dto.UpdatedAt = &updatedAt
	}
	return dto
}

func toProductDTOs(products []domain.Product) []productDTO {
	dtos := make([]productDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, toProductDTO(&products[i]))
	}
	return dtos
}

type customizationDTO struct {
	Size    string `json:"size,omitempty"`
	Flavor  string `json:"flavor,omitempty"`
	Message string `json:"message,omitempty"`
}

type cartLineDTO struct {
	ProductID     string           `json:"productId"`
	Name          string           `json:"name"`
	UnitPrice     string           `json:"unitPrice"`
	Quantity      int              `json:"quantity"`
	Customization customizationDTO `json:"customization"`
	LineTotal     string           `json:"lineTotal"`
}

type cartDTO struct {
	Items []cartLineDTO `json:"items"`
	Total string        `json:"total"`
	Count int           `json:"count"`
}

func toCartDTO(view *usecase.CartView) cartDTO {
	items := make([]cartLineDTO, 0, len(view.Lines))
	for _, line := range view.Lines {
		items = append(items, cartLineDTO{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: centsToPrice(line.UnitPriceCents),
			Quantity:  line.Quantity,
			Customization: customizationDTO{
				Size:    line.Customization.Size,
				Flavor:  line.Customization.Flavor,
				Message: line.Customization.Message,
			},
			LineTotal: centsToPrice(line.UnitPriceCents * int64(line.Quantity)),
		})
	}
	return cartDTO{
		Items: items,
		Total: centsToPrice(view.TotalCents),
		Count: view.Count,
	}
}

type userDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
}

func toUserDTO(info *usecase.UserInfo) userDTO {
	return userDTO{
		ID:        info.ID,
		Name:      info.Name,
		Email:     info.Email,
		Role:      info.Role,
		Active:    info.Active,
		CreatedAt: info.CreatedAt.Format(time.RFC3339),
	}
}

func toUserDTOs(infos []usecase.UserInfo) []userDTO {
	dtos := make([]userDTO, 0, len(infos))
	for i := range infos {
		dtos = append(dtos, toUserDTO(&infos[i]))
	}
	return dtos
}

type orderDTO struct {
	ID                  string  `json:"id"`
	CakeType            string  `json:"cakeType"`
	Size                string  `json:"size"`
	Flavor              string  `json:"flavor"`
	Message             string  `json:"message,omitempty"`
	SpecialInstructions string  `json:"specialInstructions,omitempty"`
	DeliveryDate        string  `json:"deliveryDate"`
	DeliveryTime        string  `json:"deliveryTime"`
	Status              string  `json:"status"`
	Price               string  `json:"price"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           *string `json:"updatedAt,omitempty"`
}

func toOrderDTO(o *domain.Order) orderDTO {
	dto := orderDTO{
		ID:                  o.ID,
		CakeType:            o.CakeType,
		Size:                o.Size,
		Flavor:              o.Flavor,
		Message:             o.Message,
		SpecialInstructions: o.SpecialInstructions,
		DeliveryDate:        o.DeliveryDate.Format(time.RFC3339),
		DeliveryTime:        o.DeliveryTime,
		Status:              o.Status,
		Price:               centsToPrice(o.PriceCents),
		CreatedAt:           o.CreatedAt.Format(time.RFC3339),
	}
	if o.UpdatedAt != nil {
		updatedAt := o.UpdatedAt.Format(time.RFC3339)
		dto.UpdatedAt = &updatedAt
	}
	return dto
}

func toOrderDTOs(orders []domain.Order) []orderDTO {
	dtos := make([]orderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, toOrderDTO(&orders[i]))
	}
	return dtos
}

type authResponseDTO struct {
	User  userDTO `json:"user"`
	Token string  `json:"token"`
}
