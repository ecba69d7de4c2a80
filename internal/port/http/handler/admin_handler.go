package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminHandler exposes the review queue routes. All of them sit behind
// JWTAuth plus RequireRole(admin) in the router.
type AdminHandler struct {
	admin  *usecase.AdminUsecase
	logger *zap.Logger
}

func NewAdminHandler(admin *usecase.AdminUsecase, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: logger.Named("AdminHandler")}
}

func (h *AdminHandler) ApproveIdentity(w http.ResponseWriter, r *http.Request) {
	role := entity.Role(chi.URLParam(r, "role"))
	id := chi.URLParam(r, "id")

	var req struct {
		NationalID string `json:"national_id"`
	}
	// The body is optional; approving without confirming a national id is valid.
	_ = json.NewDecoder(r.Body).Decode(&req)

	if err := h.admin.ApproveIdentity(r.Context(), role, id, req.NationalID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "identity approved"})
}

func (h *AdminHandler) RejectIdentity(w http.ResponseWriter, r *http.Request) {
	role := entity.Role(chi.URLParam(r, "role"))
	id := chi.URLParam(r, "id")

	if err := h.admin.RejectIdentity(r.Context(), role, id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "identity rejected"})
}

func (h *AdminHandler) ApproveContractor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.admin.ApproveContractor(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "contractor approved"})
}

func (h *AdminHandler) RejectContractor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.admin.RejectContractor(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "contractor rejected"})
}

func (h *AdminHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	clients, err := h.admin.ListClients(r.Context(), skip, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	resp := make([]accountResponse, 0, len(clients))
	for _, c := range clients {
		resp = append(resp, toAccountResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) ListContractors(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	contractors, err := h.admin.ListContractors(r.Context(), skip, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	resp := make([]accountResponse, 0, len(contractors))
	for _, c := range contractors {
		resp = append(resp, toAccountResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func pagination(r *http.Request) (skip, limit int64) {
	skip, _ = strconv.ParseInt(r.URL.Query().Get("skip"), 10, 64)
	limit, _ = strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if skip < 0 {
		skip = 0
	}
	return skip, limit
}
