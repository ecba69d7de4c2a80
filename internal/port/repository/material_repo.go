package repository

import (
	"context"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
)

type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) (string, error)
	Update(ctx context.Context, material *entity.Material) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	GetByName(ctx context.Context, name string) (*entity.Material, error)
	List(ctx context.Context) ([]*entity.Material, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) (string, error)
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	ListByClient(ctx context.Context, clientID string) ([]*entity.Project, error)
}
