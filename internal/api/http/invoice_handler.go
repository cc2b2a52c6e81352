package http

import (
	"net/http"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/service"
)

type InvoiceHandler struct {
	invoiceSvc service.InvoiceService
}

func NewInvoiceHandler(invoiceSvc service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceSvc: invoiceSvc}
}

type createInvoiceRequest struct {
	OrderID int32 `json:"order_id"`
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r, domain.UserRoleVendor, domain.UserRoleAdmin)
	if err != nil {
		respondError(w, err)
		return
	}

	var req createInvoiceRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	invoice, err := h.invoiceSvc.CreateForOrder(r.Context(), claims.UserID, claims.Role, req.OrderID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, invoice)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	invoice, err := h.invoiceSvc.GetInvoice(r.Context(), claims.UserID, claims.Role, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, invoice)
}

type paymentRequest struct {
	AmountCents   int64  `json:"amount_cents"`
	Method        string `json:"method"`
	TransactionID string `json:"transaction_id"`
}

func (h *InvoiceHandler) Pay(w http.ResponseWriter, r *http.Request) {
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

	var req paymentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	invoice, err := h.invoiceSvc.ProcessPayment(r.Context(), claims.UserID, id, req.AmountCents, req.Method, req.TransactionID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, invoice)
}
