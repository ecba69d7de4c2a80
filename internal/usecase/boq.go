package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/domain"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/platform/metrics"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/port/repository"
	"go.uber.org/zap"
)

const estimateCurrency = "JOD"

// estimateMaterials is the fixed bill-of-quantities line order. Materials
// missing from the catalog are skipped with a warning rather than failing the
// whole estimate.
var estimateMaterials = []string{
	"Concrete",
	"Steel Rebar",
	"Blocks",
	"Plaster",
	"Paint",
	"Tiles",
}

// NormalizeFinishingLevel maps the marketing names used by older clients onto
// the three canonical variant keys. Unknown levels fall back to medium.
func NormalizeFinishingLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "basic", "economy":
		return "basic"
	case "medium", "standard":
		return "medium"
	case "premium", "luxury", "deluxe":
		return "premium"
	default:
		return "medium"
	}
}

// EstimateUsecase computes deterministic construction cost estimates from the
// materials catalog, and owns the saved projects they can be attached to.
type EstimateUsecase struct {
	materials repository.MaterialRepository
	projects  repository.ProjectRepository
	metrics   *metrics.Manager
	logger    *zap.Logger
}

func NewEstimateUsecase(
	materials repository.MaterialRepository,
	projects repository.ProjectRepository,
	m *metrics.Manager,
	logger *zap.Logger,
) *EstimateUsecase {
	return &EstimateUsecase{
		materials: materials,
		projects:  projects,
		metrics:   m,
		logger:    logger.Named("EstimateUsecase"),
	}
}

// Estimate prices a building of the given footprint. Same inputs and same
// catalog always produce the same output; nothing here consults a clock or a
// random source.
func (u *EstimateUsecase) Estimate(ctx context.Context, area float64, floors int, finishingLevel string) (*entity.Estimate, error) {
	if area <= 0 || math.IsNaN(area) || math.IsInf(area, 0) {
		return nil, fmt.Errorf("%w: area must be a positive number", domain.ErrValidation)
	}
	if floors < 1 {
		floors = 1
	}
	level := NormalizeFinishingLevel(finishingLevel)

	// Square-footprint approximation used for the wall-bound materials.
	perimeter := 4 * math.Sqrt(area)
	wallArea := perimeter * 3

	est := &entity.Estimate{
		Area:           area,
		Floors:         floors,
		FinishingLevel: level,
		Currency:       estimateCurrency,
	}

	for _, name := range estimateMaterials {
		material, err := u.materials.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				u.logger.Warn("Material missing from catalog, skipping line", zap.String("material", name))
				continue
			}
			return nil, err
		}
		variant, ok := material.VariantFor(level)
		if !ok {
			u.logger.Warn("Material has no variants, skipping line", zap.String("material", name))
			continue
		}

		qty := quantityFor(name, variant, area, wallArea, floors)
		cost := round2(qty * variant.PricePerUnit)
		est.Items = append(est.Items, entity.EstimateItem{
			Material:     material.Name,
			Unit:         material.Unit,
			VariantKey:   variant.Key,
			VariantLabel: variant.Label,
			Quantity:     qty,
			PricePerUnit: variant.PricePerUnit,
			Cost:         cost,
		})
		est.TotalCost += cost
	}
	est.TotalCost = round2(est.TotalCost)

	u.metrics.EstimatesTotal.Inc()
	return est, nil
}

// quantityFor applies the per-material takeoff formula. Blocks are counted in
// whole pieces, everything else rounds to two decimals.
func quantityFor(name string, variant entity.MaterialVariant, area, wallArea float64, floors int) float64 {
	f := float64(floors)
	var qty float64
	switch name {
	case "Concrete":
		qty = area * f * 0.12
	case "Steel Rebar":
		qty = area * f * 0.07
	case "Tiles":
		qty = area * 1.1
		if variant.QuantityPerM2 > 0 {
			qty *= variant.QuantityPerM2
		}
	default: // Blocks, Plaster, Paint: wall-bound
		qty = wallArea * f
		if variant.QuantityPerM2 > 0 {
			qty *= variant.QuantityPerM2
		}
	}
	if name == "Blocks" {
		return math.Ceil(qty)
	}
	return round2(qty)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// CreateProject saves a named footprint so the client can re-price it later.
func (u *EstimateUsecase) CreateProject(ctx context.Context, p *entity.Project) (string, error) {
	if strings.TrimSpace(p.Name) == "" {
		return "", fmt.Errorf("%w: project name is required", domain.ErrValidation)
	}
	if p.Area <= 0 {
		return "", fmt.Errorf("%w: area must be a positive number", domain.ErrValidation)
	}
	if p.Floors < 1 {
		p.Floors = 1
	}
	p.FinishingLevel = NormalizeFinishingLevel(p.FinishingLevel)

	id, err := u.projects.Create(ctx, p)
	if err != nil {
		return "", err
	}
	u.logger.Info("Project created", zap.String("projectID", id), zap.String("clientID", p.ClientID))
	return id, nil
}

func (u *EstimateUsecase) ListProjects(ctx context.Context, clientID string) ([]*entity.Project, error) {
	return u.projects.ListByClient(ctx, clientID)
}

// ProjectEstimate re-prices a saved project against the current catalog.
// Ownership is enforced by reporting someone else's project as not found.
func (u *EstimateUsecase) ProjectEstimate(ctx context.Context, clientID, projectID string) (*entity.Estimate, error) {
	project, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.ClientID != clientID {
		return nil, domain.ErrNotFound
	}
	return u.Estimate(ctx, project.Area, project.Floors, project.FinishingLevel)
}
