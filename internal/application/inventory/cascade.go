package inventory

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// CascadeUseCase elimina artículos y categorías respetando el orden de dependencias
// (movimientos → asociaciones → fila padre) dentro de una transacción.
type CascadeUseCase struct {
	txRunner TxRunner
}

// NewCascadeUseCase construye el caso de uso.
func NewCascadeUseCase(txRunner TxRunner) *CascadeUseCase {
	return &CascadeUseCase{txRunner: txRunner}
}

// DeleteArticleResult filas dependientes eliminadas junto con el artículo.
type DeleteArticleResult struct {
	DeletedMovements int64
	DeletedLinks     int64
}

// DeleteCategoryResult artículos eliminados junto con la categoría.
type DeleteCategoryResult struct {
	DeletedArticles int
}

// DeleteArticle borra movimientos, asociaciones y el artículo. El artículo se bloquea
// primero para que no entren movimientos nuevos durante el borrado; si no existe
// devuelve ErrNotFound sin borrar nada.
func (uc *CascadeUseCase) DeleteArticle(ctx context.Context, articleID string) (*DeleteArticleResult, error) {
	articleID, err := domain.ParseID("id", articleID)
	if err != nil {
		return nil, err
	}
	var out DeleteArticleResult
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		article, err := repos.Articles.GetForUpdate(ctx, articleID)
		if err != nil {
			return err
		}
		if article == nil {
			return domain.ErrNotFound
		}
		if out.DeletedMovements, err = repos.Movements.DeleteByArticle(ctx, articleID); err != nil {
			return err
		}
		if out.DeletedLinks, err = repos.Links.DeleteByArticle(ctx, articleID); err != nil {
			return err
		}
		n, err := repos.Articles.Delete(ctx, articleID)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory elimina una categoría solo si no tiene artículos asociados; en otro caso
// devuelve ConflictError con el número de artículos. La fila de la categoría queda bloqueada
// mientras se cuenta para que no se asocien artículos entre el conteo y el borrado.
func (uc *CascadeUseCase) DeleteCategory(ctx context.Context, categoryID string) (*DeleteCategoryResult, error) {
	categoryID, err := domain.ParseID("id", categoryID)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		cat, err := repos.Categories.GetForUpdate(ctx, categoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.ErrNotFound
		}
		total, err := repos.Links.CountByCategory(ctx, categoryID)
		if err != nil {
			return err
		}
		if total > 0 {
			return &domain.ConflictError{
				Entity: "categoria",
				Reason: "tiene artículos asignados; primero debes reasignarlos o eliminarlos",
				Count:  total,
			}
		}
		n, err := repos.Categories.Delete(ctx, categoryID)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &DeleteCategoryResult{DeletedArticles: 0}, nil
}
