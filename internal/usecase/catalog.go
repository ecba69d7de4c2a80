package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/domain"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"github.com/MohammadBTelfah/Damanah-sub000/internal/port/repository"
	"go.uber.org/zap"
)

// CatalogUsecase manages the materials catalog the estimator prices from.
type CatalogUsecase struct {
	materials repository.MaterialRepository
	logger    *zap.Logger
}

func NewCatalogUsecase(materials repository.MaterialRepository, logger *zap.Logger) *CatalogUsecase {
	return &CatalogUsecase{
		materials: materials,
		logger:    logger.Named("CatalogUsecase"),
	}
}

func (u *CatalogUsecase) CreateMaterial(ctx context.Context, material *entity.Material) (string, error) {
	if err := validateMaterial(material); err != nil {
		return "", err
	}
	id, err := u.materials.Create(ctx, material)
	if err != nil {
		return "", err
	}
	u.logger.Info("Material created", zap.String("materialID", id), zap.String("name", material.Name))
	return id, nil
}

func (u *CatalogUsecase) UpdateMaterial(ctx context.Context, material *entity.Material) error {
	if material.ID == "" {
		return fmt.Errorf("%w: material id is required", domain.ErrValidation)
	}
	if err := validateMaterial(material); err != nil {
		return err
	}
	if err := u.materials.Update(ctx, material); err != nil {
		return err
	}
	u.logger.Info("Material updated", zap.String("materialID", material.ID), zap.String("name", material.Name))
	return nil
}

func (u *CatalogUsecase) DeleteMaterial(ctx context.Context, id string) error {
	if err := u.materials.Delete(ctx, id); err != nil {
		return err
	}
	u.logger.Info("Material deleted", zap.String("materialID", id))
	return nil
}

func (u *CatalogUsecase) GetMaterial(ctx context.Context, id string) (*entity.Material, error) {
	return u.materials.GetByID(ctx, id)
}

func (u *CatalogUsecase) ListMaterials(ctx context.Context) ([]*entity.Material, error) {
	return u.materials.List(ctx)
}

func validateMaterial(m *entity.Material) error {
	if m == nil || strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: material name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(m.Unit) == "" {
		return fmt.Errorf("%w: material unit is required", domain.ErrValidation)
	}
	if len(m.Variants) == 0 {
		return fmt.Errorf("%w: at least one variant is required", domain.ErrValidation)
	}
	seen := make(map[string]struct{}, len(m.Variants))
	for i := range m.Variants {
		v := &m.Variants[i]
		v.Key = strings.ToLower(strings.TrimSpace(v.Key))
		if v.Key == "" {
			return fmt.Errorf("%w: variant key is required", domain.ErrValidation)
		}
		if _, dup := seen[v.Key]; dup {
			return fmt.Errorf("%w: duplicate variant key %q", domain.ErrValidation, v.Key)
		}
		seen[v.Key] = struct{}{}
		if v.PricePerUnit < 0 {
			return fmt.Errorf("%w: variant %q has a negative price", domain.ErrValidation, v.Key)
		}
		if v.QuantityPerM2 < 0 {
			return fmt.Errorf("%w: variant %q has a negative quantity per m2", domain.ErrValidation, v.Key)
		}
	}
	return nil
}
