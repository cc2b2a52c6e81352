package http

import (
	"net/http"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/service"
)

type OrderHandler struct {
	checkoutSvc service.CheckoutService
	orderSvc    service.OrderService
}

func NewOrderHandler(checkoutSvc service.CheckoutService, orderSvc service.OrderService) *OrderHandler {
	return &OrderHandler{checkoutSvc: checkoutSvc, orderSvc: orderSvc}
}

type checkoutRequest struct {
	Items     []service.CheckoutItem `json:"items"`
	StartDate string                 `json:"start_date"`
	EndDate   string                 `json:"end_date"`
}

// Checkout creates one order per vendor represented in the cart.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r, domain.UserRoleCustomer)
	if err != nil {
		respondError(w, err)
		return
	}

	var req checkoutRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	start, end, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		respondError(w, err)
		return
	}

	result, err := h.checkoutSvc.Checkout(r.Context(), claims.UserID, claims.CompanyID, service.CheckoutRequest{
		Items:     req.Items,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r)
	if err != nil {
		respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	order, err := h.orderSvc.GetOrder(r.Context(), claims.UserID, claims.Role, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r)
	if err != nil {
		respondError(w, err)
		return
	}

	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")
	orders, total, err := h.orderSvc.ListOrders(r.Context(), claims.UserID, claims.Role, claims.CompanyID, status, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"orders": orders, "total": total})
}

type statusUpdateRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r, domain.UserRoleVendor, domain.UserRoleAdmin)
	if err != nil {
		respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req statusUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	order, err := h.orderSvc.UpdateStatus(r.Context(), claims.UserID, claims.Role, id, domain.OrderStatus(req.Status), req.Note)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r, domain.UserRoleCustomer)
	if err != nil {
		respondError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req cancelRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	order, err := h.orderSvc.CancelOrder(r.Context(), claims.UserID, id, req.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}
