package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/service"

	"github.com/gorilla/mux"
)

type ProductHandler struct {
	productSvc   service.ProductService
	inventorySvc service.InventoryService
}

func NewProductHandler(productSvc service.ProductService, inventorySvc service.InventoryService) *ProductHandler {
	return &ProductHandler{productSvc: productSvc, inventorySvc: inventorySvc}
}

func pathID(r *http.Request) (int32, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q: %w", raw, domain.ErrValidation)
	}
	return int32(id), nil
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r, domain.UserRoleVendor, domain.UserRoleAdmin)
	if err != nil {
		respondError(w, err)
		return
	}

	var product domain.Product
	if err := decodeBody(r, &product); err != nil {
		respondError(w, err)
		return
	}

	if err := h.productSvc.AddProduct(r.Context(), claims.UserID, claims.CompanyID, &product); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	product, err := h.productSvc.GetProduct(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var product domain.Product
	if err := decodeBody(r, &product); err != nil {
		respondError(w, err)
		return
	}
	product.ID = id

	if err := h.productSvc.UpdateProduct(r.Context(), claims.UserID, claims.Role, &product); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, err := requireRole(r)
	if err != nil {
		respondError(w, err)
		return
	}

	page, pageSize := pagination(r)
	products, total, err := h.productSvc.ListProducts(r.Context(), claims.CompanyID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"products": products, "total": total})
}

type availabilityRequest struct {
	Quantity  int32  `json:"quantity"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// CheckAvailability is public: browsing customers query it before checkout.
func (h *ProductHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req availabilityRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	start, end, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		respondError(w, err)
		return
	}

	result, err := h.inventorySvc.CheckAvailability(r.Context(), id, req.Quantity, start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func parsePeriod(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", startStr, domain.ErrValidation)
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", endStr, domain.ErrValidation)
	}
	return start, end, nil
}

func pagination(r *http.Request) (int32, int32) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32)
	pageSize, _ := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return int32(page), int32(pageSize)
}
