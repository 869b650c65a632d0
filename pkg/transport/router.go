// Package transport exposes the domain services over HTTP.
package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/gastonprogram/e-commerce-backend/pkg/domain/service"
	"github.com/gastonprogram/e-commerce-backend/pkg/infrastructure/auth"
)

type Handler struct {
	Users      service.UserService
	Products   service.ProductService
	Categories service.CategoryService
	Orders     service.OrderService
	Tokens     *auth.TokenManager
	Logger     *log.Logger
}

func NewRouter(h *Handler) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/auth/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)

	r.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	r.HandleFunc("/products/search", h.searchProducts).Methods(http.MethodGet)
	r.HandleFunc("/products/category/{categoryID}", h.productsByCategory).Methods(http.MethodGet)
	r.HandleFunc("/products/user/{userID}", h.productsByUser).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}/stock/{quantity}", h.checkStock).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", h.getProduct).Methods(http.MethodGet)

	r.Handle("/products", h.authenticated(h.createProduct)).Methods(http.MethodPost)
	r.Handle("/products/{id}/stock", h.authenticated(h.setStock)).Methods(http.MethodPut)
	r.Handle("/products/{id}/categories/{categoryID}", h.authenticated(h.attachCategory)).Methods(http.MethodPut)
	r.Handle("/products/{id}/categories/{categoryID}", h.authenticated(h.detachCategory)).Methods(http.MethodDelete)
	r.Handle("/products/{id}", h.authenticated(h.updateProduct)).Methods(http.MethodPut)
	r.Handle("/products/{id}", h.authenticated(h.deleteProduct)).Methods(http.MethodDelete)

	r.HandleFunc("/categories", h.listCategories).Methods(http.MethodGet)
	r.HandleFunc("/categories/{id}", h.getCategory).Methods(http.MethodGet)
	r.Handle("/categories", h.authenticated(h.createCategory)).Methods(http.MethodPost)
	r.Handle("/categories/{id}", h.authenticated(h.updateCategory)).Methods(http.MethodPut)
	r.Handle("/categories/{id}", h.authenticated(h.deleteCategory)).Methods(http.MethodDelete)

	r.Handle("/orders/checkout", h.authenticated(h.checkout)).Methods(http.MethodPost)
	r.Handle("/orders", h.authenticated(h.listOrders)).Methods(http.MethodGet)
	r.Handle("/orders/{id}", h.authenticated(h.getOrder)).Methods(http.MethodGet)

	return h.logMiddleware(r)
}
