package repository

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para los movimientos del kardex.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// ListByArticle devuelve el historial del artículo, más reciente primero.
	ListByArticle(ctx context.Context, articleID string) ([]entity.MovementWithArticle, error)
	List(ctx context.Context, limit, offset int) ([]entity.MovementWithArticle, error)
	// ListChronological devuelve los movimientos del artículo en orden de aplicación (para costeo).
	ListChronological(ctx context.Context, articleID string) ([]entity.Movement, error)
	Delete(ctx context.Context, id string) (int64, error)
	DeleteByArticle(ctx context.Context, articleID string) (int64, error)
}
