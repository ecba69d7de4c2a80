package handler

import (
	"encoding/json"
	"net/http"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogHandler serves the materials catalog. Reads are public; writes are
// admin-only, enforced in the router.
type CatalogHandler struct {
	catalog *usecase.CatalogUsecase
	logger  *zap.Logger
}

func NewCatalogHandler(catalog *usecase.CatalogUsecase, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger.Named("CatalogHandler")}
}

type materialVariantPayload struct {
	Key           string  `json:"key"`
	Label         string  `json:"label"`
	PricePerUnit  float64 `json:"price_per_unit"`
	QuantityPerM2 float64 `json:"quantity_per_m2"`
}

type materialPayload struct {
	ID       string                   `json:"id,omitempty"`
	Name     string                   `json:"name"`
	Unit     string                   `json:"unit"`
	Variants []materialVariantPayload `json:"variants"`
}

func (p materialPayload) toEntity() *entity.Material {
	m := &entity.Material{ID: p.ID, Name: p.Name, Unit: p.Unit}
	for _, v := range p.Variants {
		m.Variants = append(m.Variants, entity.MaterialVariant{
			Key:           v.Key,
			Label:         v.Label,
			PricePerUnit:  v.PricePerUnit,
			QuantityPerM2: v.QuantityPerM2,
		})
	}
	return m
}

func toMaterialPayload(m *entity.Material) materialPayload {
	p := materialPayload{ID: m.ID, Name: m.Name, Unit: m.Unit}
	for _, v := range m.Variants {
		p.Variants = append(p.Variants, materialVariantPayload{
			Key:           v.Key,
			Label:         v.Label,
			PricePerUnit:  v.PricePerUnit,
			QuantityPerM2: v.QuantityPerM2,
		})
	}
	return p
}

func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req materialPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	id, err := h.catalog.CreateMaterial(r.Context(), req.toEntity())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req materialPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.ID = chi.URLParam(r, "id")
	if err := h.catalog.UpdateMaterial(r.Context(), req.toEntity()); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "material updated"})
}

func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteMaterial(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "material deleted"})
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	material, err := h.catalog.GetMaterial(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toMaterialPayload(material))
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	materials, err := h.catalog.ListMaterials(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	resp := make([]materialPayload, 0, len(materials))
	for _, m := range materials {
		resp = append(resp, toMaterialPayload(m))
	}
	writeJSON(w, http.StatusOK, resp)
}
