package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gastonprogram/e-commerce-backend/pkg/domain/model"
	"github.com/gastonprogram/e-commerce-backend/pkg/domain/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeDomainError maps a domain error to its HTTP status. Unknown errors
// become an opaque 500; the detail only goes to the server log.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrProductNotFound),
		errors.Is(err, model.ErrCategoryNotFound),
		errors.Is(err, model.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, model.ErrEmailTaken),
		errors.Is(err, model.ErrCategoryNameTaken),
		errors.Is(err, model.ErrCategoryInUse),
		errors.Is(err, model.ErrProductInOrders),
		errors.Is(err, model.ErrInsufficientStock):
		writeError(w, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrCategoryNameRequired),
		errors.Is(err, service.ErrProductNameRequired),
		errors.Is(err, service.ErrNegativePrice),
		errors.Is(err, service.ErrNegativeStock),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())

	default:
		h.Logger.WithError(err).Error("unexpected error")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
