package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"gamerent-backend/internal/domain"
	"gamerent-backend/internal/service"
	"gamerent-backend/internal/storage"
)

type OrderHandler struct {
	orders      service.OrderService
	files       storage.Storage
	maxFileSize int64
}

func NewOrderHandler(orders service.OrderService, files storage.Storage, maxFileSizeMB int64) *OrderHandler {
	return &OrderHandler{
		orders:      orders,
		files:       files,
		maxFileSize: maxFileSizeMB << 20,
	}
}

type createOrderRequest struct {
	AccountID            int64  `json:"account_id"`
	RentHours            int    `json:"rent_hours"`
	Night                bool   `json:"night"`
	VerificationPlatform string `json:"verification_platform"`
	PlatformUsername     string `json:"platform_username"`
	PaymentMethod        string `json:"payment_method"`
}

type orderListResponse struct {
	Orders []domain.Order `json:"orders"`
	Meta   listMeta       `json:"meta"`
}

// Create accepts either a JSON body or a multipart form; the multipart form
// may carry a payment proof file under "proof".
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var (
		req   createOrderRequest
		proof *string
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
			writeError(w, domain.Validation("invalid multipart form"))
			return
		}
		req.AccountID, _ = strconv.ParseInt(r.FormValue("account_id"), 10, 64)
		req.RentHours, _ = strconv.Atoi(r.FormValue("rent_hours"))
		req.Night = r.FormValue("night") == "true"
		req.VerificationPlatform = r.FormValue("verification_platform")
		req.PlatformUsername = r.FormValue("platform_username")
		req.PaymentMethod = r.FormValue("payment_method")

		key, err := h.saveProof(r)
		if err != nil {
			writeError(w, err)
			return
		}
		proof = key
	} else if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	order, err := h.orders.Create(r.Context(), userIDFrom(r.Context()), service.CreateOrderInput{
		AccountID:            req.AccountID,
		RentHours:            req.RentHours,
		Night:                req.Night,
		VerificationPlatform: req.VerificationPlatform,
		PlatformUsername:     req.PlatformUsername,
		PaymentMethod:        domain.PaymentMethod(strings.ToUpper(req.PaymentMethod)),
		ProofFileKey:         proof,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) saveProof(r *http.Request) (*string, error) {
	file, header, err := r.FormFile("proof")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Validation("invalid proof file")
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		return nil, domain.Validation("proof file too large")
	}
	key, err := h.files.Save(file, header.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to store proof file: %w", err)
	}
	return &key, nil
}

func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	orders, total, err := h.orders.ListForUser(r.Context(), userIDFrom(r.Context()), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderListResponse{
		Orders: orders,
		Meta:   listMeta{Page: page, PageSize: pageSize, Total: total},
	})
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	order, err := h.orders.CancelByUser(r.Context(), userIDFrom(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// AdminOrderHandler covers the lifecycle transitions only operators drive.
type AdminOrderHandler struct {
	orders service.OrderService
}

func NewAdminOrderHandler(orders service.OrderService) *AdminOrderHandler {
	return &AdminOrderHandler{orders: orders}
}

func (h *AdminOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.OrderFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.OrderStatus(strings.ToUpper(raw))
		filter.Status = &status
	}
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, domain.Validation("invalid user_id filter"))
			return
		}
		filter.UserID = &id
	}
	if raw := r.URL.Query().Get("account_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, domain.Validation("invalid account_id filter"))
			return
		}
		filter.AccountID = &id
	}

	page, pageSize := pagination(r)
	orders, total, err := h.orders.List(r.Context(), filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderListResponse{
		Orders: orders,
		Meta:   listMeta{Page: page, PageSize: pageSize, Total: total},
	})
}

func (h *AdminOrderHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orders.Approve)
}

func (h *AdminOrderHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orders.Reject)
}

func (h *AdminOrderHandler) Verify(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orders.VerifyUser)
}

func (h *AdminOrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orders.Complete)
}

func (h *AdminOrderHandler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, orderID int64) (*domain.Order, error)) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	order, err := fn(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type extendRequest struct {
	ExtraHours int `json:"extra_hours"`
}

func (h *AdminOrderHandler) Extend(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req extendRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	order, err := h.orders.Extend(r.Context(), id, req.ExtraHours)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *AdminOrderHandler) MarkReviewed(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.orders.MarkReviewed(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
