package handler

import (
	"encoding/json"
	"net/http"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/port/http/middleware"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EstimateHandler serves on-the-fly cost estimates and the saved projects of
// authenticated clients.
type EstimateHandler struct {
	estimates *usecase.EstimateUsecase
	logger    *zap.Logger
}

func NewEstimateHandler(estimates *usecase.EstimateUsecase, logger *zap.Logger) *EstimateHandler {
	return &EstimateHandler{estimates: estimates, logger: logger.Named("EstimateHandler")}
}

type estimateRequest struct {
	Area           float64 `json:"area"`
	Floors         int     `json:"floors"`
	FinishingLevel string  `json:"finishing_level"`
}

type estimateItemResponse struct {
	Material     string  `json:"material"`
	Unit         string  `json:"unit"`
	VariantKey   string  `json:"variant_key"`
	VariantLabel string  `json:"variant_label"`
	Quantity     float64 `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
	Cost         float64 `json:"cost"`
}

type estimateResponse struct {
	Area           float64                `json:"area"`
	Floors         int                    `json:"floors"`
	FinishingLevel string                 `json:"finishing_level"`
	Items          []estimateItemResponse `json:"items"`
	TotalCost      float64                `json:"total_cost"`
	Currency       string                 `json:"currency"`
}

func toEstimateResponse(est *entity.Estimate) estimateResponse {
	resp := estimateResponse{
		Area:           est.Area,
		Floors:         est.Floors,
		FinishingLevel: est.FinishingLevel,
		Items:          make([]estimateItemResponse, 0, len(est.Items)),
		TotalCost:      est.TotalCost,
		Currency:       est.Currency,
	}
	for _, item := range est.Items {
		resp.Items = append(resp.Items, estimateItemResponse(item))
	}
	return resp
}

// Estimate prices a footprint without requiring an account.
func (h *EstimateHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	est, err := h.estimates.Estimate(r.Context(), req.Area, req.Floors, req.FinishingLevel)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toEstimateResponse(est))
}

type projectResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Area           float64 `json:"area"`
	Floors         int     `json:"floors"`
	FinishingLevel string  `json:"finishing_level"`
}

func (h *EstimateHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.AccountID(r.Context())
	if !ok {
		http.Error(w, "Account ID not found in token", http.StatusUnauthorized)
		return
	}

	var req struct {
		Name           string  `json:"name"`
		Area           float64 `json:"area"`
		Floors         int     `json:"floors"`
		FinishingLevel string  `json:"finishing_level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	project := &entity.Project{
		ClientID:       clientID,
		Name:           req.Name,
		Area:           req.Area,
		Floors:         req.Floors,
		FinishingLevel: req.FinishingLevel,
	}
	id, err := h.estimates.CreateProject(r.Context(), project)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *EstimateHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.AccountID(r.Context())
	if !ok {
		http.Error(w, "Account ID not found in token", http.StatusUnauthorized)
		return
	}
	projects, err := h.estimates.ListProjects(r.Context(), clientID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	resp := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, projectResponse{
			ID:             p.ID,
			Name:           p.Name,
			Area:           p.Area,
			Floors:         p.Floors,
			FinishingLevel: p.FinishingLevel,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *EstimateHandler) ProjectEstimate(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.AccountID(r.Context())
	if !ok {
		http.Error(w, "Account ID not found in token", http.StatusUnauthorized)
		return
	}
	est, err := h.estimates.ProjectEstimate(r.Context(), clientID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toEstimateResponse(est))
}
