package http

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/sweetslice/go-backend/docs" // generated swagger docs
	"github.com/sweetslice/go-backend/internal/usecase"
	"github.com/sweetslice/go-backend/pkg/logger"
)

type Router struct {
	router *chi.Mux
	mw     *Middleware
	logger logger.Logger
}

func NewRouter(router *chi.Mux, mw *Middleware, logger logger.Logger) *Router {
	return &Router{router: router, mw: mw, logger: logger}
}

func (r *Router) Init(
	productUC usecase.ProductUC,
	cartUC usecase.CartUC,
	authUC usecase.AuthUC,
	userUC usecase.UserUC,
	orderUC usecase.OrderUC,
) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerProductRoutes(v1, NewProductHandler(productUC, r.logger), r.mw)
		registerCartRoutes(v1, NewCartHandler(cartUC, r.logger), r.mw)
		registerAuthRoutes(v1, NewAuthHandler(authUC, r.logger), r.mw)
		registerUserRoutes(v1, NewUserHandler(userUC, r.logger), r.mw)
		registerOrderRoutes(v1, NewOrderHandler(orderUC, r.logger), r.mw)
	})
}

func registerProductRoutes(router chi.Router, h *ProductHandler, mw *Middleware) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", h.listProducts)
		pr.Get("/categories", h.listCategories)
		pr.Get("/sizes", h.listSizes)
		pr.Get("/flavors", h.listFlavors)
		pr.Get("/{id}", h.getProduct)

		pr.Group(func(admin chi.Router) {
			admin.Use(mw.Authenticate, mw.RequireAdmin)
			admin.Post("/", h.createProduct)
			admin.Patch("/bulk", h.bulkUpdateProducts)
			admin.Put("/{id}", h.updateProduct)
			admin.Delete("/{id}", h.deleteProduct)
			admin.Post("/{id}/images", h.uploadProductImages)
		})
	})
}

func registerCartRoutes(router chi.Router, h *CartHandler, mw *Middleware) {
	router.Route("/cart", func(cr chi.Router) {
		cr.Use(mw.CartSession)
		cr.Get("/", h.getCart)
		cr.Delete("/", h.clearCart)
		cr.Post("/items", h.addToCart)
		cr.Put("/items", h.updateQuantity)
		cr.Delete("/items", h.removeFromCart)
	})
}

func registerAuthRoutes(router chi.Router, h *AuthHandler, mw *Middleware) {
	router.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", h.register)
		ar.Post("/login", h.login)

		ar.Group(func(authed chi.Router) {
			authed.Use(mw.Authenticate)
			authed.Get("/me", h.me)
		})
	})
}

func registerUserRoutes(router chi.Router, h *UserHandler, mw *Middleware) {
	router.Route("/users", func(ur chi.Router) {
		ur.Group(func(authed chi.Router) {
			authed.Use(mw.Authenticate)
			authed.Get("/profile", h.getProfile)
			authed.Put("/profile", h.updateProfile)
			authed.Delete("/profile", h.deleteProfile)
		})

		ur.Group(func(admin chi.Router) {
			admin.Use(mw.Authenticate, mw.RequireAdmin)
			admin.Get("/", h.listUsers)
			admin.Get("/{id}", h.getUser)
			admin.Put("/{id}", h.updateUser)
			admin.Delete("/{id}", h.deleteUser)
			admin.Put("/{id}/password", h.changeUserPassword)
		})
	})
}

func registerOrderRoutes(router chi.Router, h *OrderHandler, mw *Middleware) {
	router.Route("/orders", func(or chi.Router) {
		or.Use(mw.Authenticate)
		or.Post("/", h.createOrder)
		or.Get("/", h.listOrders)
		or.Put("/{id}", h.updateOrder)
		or.Delete("/{id}", h.deleteOrder)
	})
}
