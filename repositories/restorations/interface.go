package restorations

import (
	"context"

	"face_hires/entities"
)

type Repository interface {
	Create(ctx context.Context, restoration *entities.FaceRestoration) (*entities.FaceRestoration, error)
	GetRecent(ctx context.Context, limit int) ([]entities.FaceRestoration, error)
}
