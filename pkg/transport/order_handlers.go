package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gastonprogram/e-commerce-backend/pkg/domain/model"
)

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	user, err := h.Users.UserByEmail(principalFrom(r).Email)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	order, err := h.Orders.Checkout(user.ID, req.toCart())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.Orders.Order(id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	principal := principalFrom(r)
	if principal.Role != model.RoleAdmin {
		user, err := h.Users.UserByEmail(principal.Email)
		if err != nil {
			h.writeDomainError(w, err)
			return
		}
		if order.UserID != user.ID {
			writeError(w, http.StatusForbidden, "order belongs to another user")
			return
		}
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// listOrders returns the caller's orders, newest first. Admins see every
// order.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)

	if principal.Role == model.RoleAdmin {
		orders, err := h.Orders.Orders()
		if err != nil {
			h.writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toOrderResponses(orders))
		return
	}

	user, err := h.Users.UserByEmail(principal.Email)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	orders, err := h.Orders.OrdersByUser(user.ID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}
