package http

import (
	"net/http"
	"strconv"
	"strings"

	"gamerent-backend/internal/domain"
	"gamerent-backend/internal/service"
)

type AccountHandler struct {
	accounts service.AccountService
}

func NewAccountHandler(accounts service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type accountListResponse struct {
	Accounts []domain.Account `json:"accounts"`
	Meta     listMeta         `json:"meta"`
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.AccountFilter
	q := r.URL.Query()
	if raw := q.Get("status"); raw != "" {
		status := domain.AccountStatus(strings.ToUpper(raw))
		filter.Status = &status
	}
	for param, dst := range map[string]**bool{
		"full_access":    &filter.FullAccess,
		"mail_included":  &filter.MailIncluded,
		"night_discount": &filter.NightDiscount,
		"ranked_ready":   &filter.RankedReady,
	} {
		if raw := q.Get(param); raw != "" {
			val, err := strconv.ParseBool(raw)
			if err != nil {
				writeError(w, domain.Validation("invalid "+param+" filter"))
				return
			}
			*dst = &val
		}
	}

	page, pageSize := pagination(r)
	accounts, total, err := h.accounts.List(r.Context(), filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accountListResponse{
		Accounts: accounts,
		Meta:     listMeta{Page: page, PageSize: pageSize, Total: total},
	})
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	account, err := h.accounts.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var account domain.Account
	if err := decodeJSON(r, &account); err != nil {
		writeError(w, err)
		return
	}
	if err := h.accounts.Create(r.Context(), &account); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

type setAccountStatusRequest struct {
	Status    string `json:"status"`
	RentHours *int   `json:"rent_hours,omitempty"`
}

func (h *AccountHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req setAccountStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	status := domain.AccountStatus(strings.ToUpper(req.Status))
	if err := h.accounts.SetStatus(r.Context(), id, status, req.RentHours); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.accounts.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
