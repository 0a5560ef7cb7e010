package usecase

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// MovementQueryUseCase consultas del historial de movimientos (solo lectura).
type MovementQueryUseCase struct {
	movements repository.MovementRepository
	articles  repository.ArticleRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(movements repository.MovementRepository, articles repository.ArticleRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movements: movements, articles: articles}
}

// List historial global paginado, más reciente primero.
func (uc *MovementQueryUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.MovementResponse, error) {
	page.DefaultPage()
	list, err := uc.movements.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

// ListByArticle historial de un artículo. ErrNotFound si el artículo no existe.
func (uc *MovementQueryUseCase) ListByArticle(ctx context.Context, articleID string) ([]dto.MovementResponse, error) {
	articleID, err := domain.ParseID("id_articulo", articleID)
	if err != nil {
		return nil, err
	}
	a, err := uc.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movements.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

func toMovementResponses(list []entity.MovementWithArticle) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:          m.ID,
			ArticleID:   m.ArticleID,
			ArticleCode: m.ArticleCode,
			ArticleName: m.ArticleName,
			Action:      m.Action,
			Date:        m.Date,
			Doc:         m.Doc,
			Detail:      m.Detail,
			Quantity:    m.Quantity,
			UnitCost:    m.UnitCost,
		})
	}
	return out
}
