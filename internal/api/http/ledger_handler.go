package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"gamerent-backend/internal/domain"
	"gamerent-backend/internal/service"
	"gamerent-backend/internal/storage"
)

type LedgerHandler struct {
	ledger      service.LedgerService
	files       storage.Storage
	maxFileSize int64
}

func NewLedgerHandler(ledger service.LedgerService, files storage.Storage, maxFileSizeMB int64) *LedgerHandler {
	return &LedgerHandler{
		ledger:      ledger,
		files:       files,
		maxFileSize: maxFileSizeMB << 20,
	}
}

type balanceResponse struct {
	BalanceCents int64 `json:"balance_cents"`
}

func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.ledger.GetBalance(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{BalanceCents: balance})
}

type transactionListResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	Meta         listMeta             `json:"meta"`
}

func (h *LedgerHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	transactions, total, err := h.ledger.ListTransactions(r.Context(), userIDFrom(r.Context()), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionListResponse{
		Transactions: transactions,
		Meta:         listMeta{Page: page, PageSize: pageSize, Total: total},
	})
}

// CreateDeposit takes a multipart form: amount_cents, method, and the
// payment proof under "proof". Deposits never settle instantly, so the
// proof is required.
func (h *LedgerHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		writeError(w, domain.Validation("invalid multipart form"))
		return
	}

	amount, err := strconv.ParseInt(r.FormValue("amount_cents"), 10, 64)
	if err != nil {
		writeError(w, domain.Validation("invalid amount_cents"))
		return
	}
	method := domain.PaymentMethod(strings.ToUpper(r.FormValue("method")))

	file, header, err := r.FormFile("proof")
	if err != nil {
		writeError(w, domain.Validation("payment proof file is required"))
		return
	}
	defer file.Close()
	if header.Size > h.maxFileSize {
		writeError(w, domain.Validation("proof file too large"))
		return
	}

	key, err := h.files.Save(file, header.Filename)
	if err != nil {
		writeError(w, fmt.Errorf("failed to store proof file: %w", err))
		return
	}

	deposit, err := h.ledger.RecordDeposit(r.Context(), userIDFrom(r.Context()), amount, method, &key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, deposit)
}

func (h *LedgerHandler) CancelDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	deposit, err := h.ledger.CancelDeposit(r.Context(), userIDFrom(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deposit)
}

func (h *LedgerHandler) ApproveDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	deposit, err := h.ledger.ApproveDeposit(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deposit)
}

func (h *LedgerHandler) RejectDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	deposit, err := h.ledger.RejectDeposit(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deposit)
}
