package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// CategoryUseCase casos de uso de categorías y de su asociación con artículos.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	txRunner inventory.TxRunner
	now      func() time.Time
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, txRunner inventory.TxRunner) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, txRunner: txRunner, now: time.Now}
}

func validateCategory(in dto.CategoryRequest) (name, icon string, err error) {
	name, icon = normalize(in.Name), strings.TrimSpace(in.Icon)
	if name == "" {
		return "", "", domain.Invalid("nombre", "es requerido")
	}
	if icon == "" {
		return "", "", domain.Invalid("icono", "es requerido")
	}
	return name, icon, nil
}

var errCategoryName = &domain.ConflictError{Entity: "categoria", Reason: "ya existe una categoría con ese nombre"}

// Create crea una categoría con nombre único.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name, icon, err := validateCategory(in)
	if err != nil {
		return nil, err
	}
	exists, err := uc.repo.ExistsName(ctx, name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errCategoryName
	}
	c := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Icon:        icon,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   uc.now(),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		// carrera entre el chequeo y el insert: la restricción UNIQUE decide
		if domain.StoreKind(err) == domain.StoreUniqueViolation {
			return nil, errCategoryName
		}
		return nil, err
	}
	return toCategoryResponse(c, nil), nil
}

// Update modifica una categoría; el nombre sigue siendo único excluyéndose a sí misma.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	id, err := domain.ParseID("id", id)
	if err != nil {
		return nil, err
	}
	name, icon, err := validateCategory(in)
	if err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	exists, err := uc.repo.ExistsName(ctx, name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errCategoryName
	}
	c.Name, c.Icon, c.Description = name, icon, strings.TrimSpace(in.Description)
	n, err := uc.repo.Update(ctx, c)
	if err != nil {
		if domain.StoreKind(err) == domain.StoreUniqueViolation {
			return nil, errCategoryName
		}
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(c, nil), nil
}

// GetByID obtiene una categoría.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	id, err := domain.ParseID("id", id)
	if err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(c, nil), nil
}

// List lista las categorías con el total de artículos de cada una.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListWithCounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for i := range list {
		total := list[i].TotalArticles
		out = append(out, *toCategoryResponse(&list[i].Category, &total))
	}
	return out, nil
}

// ListByArticle categorías a las que pertenece un artículo.
func (uc *CategoryUseCase) ListByArticle(ctx context.Context, articleID string) ([]dto.CategoryResponse, error) {
	articleID, err := domain.ParseID("id_articulo", articleID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c, nil))
	}
	return out, nil
}

// Assign asocia un artículo a una categoría. ErrNotFound si falta alguno de los dos;
// ConflictError si el par ya existe o si la categoría ya tiene otro artículo con ese código.
// La categoría queda bloqueada durante el chequeo del código.
func (uc *CategoryUseCase) Assign(ctx context.Context, in dto.AssignRequest) error {
	link, err := parseLink(strings.TrimSpace(in.CategoryID), strings.TrimSpace(in.ArticleID))
	if err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		cat, err := repos.Categories.GetForUpdate(ctx, link.CategoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.ErrNotFound
		}
		article, err := repos.Articles.GetByID(ctx, link.ArticleID)
		if err != nil {
			return err
		}
		if article == nil {
			return domain.ErrNotFound
		}
		exists, err := repos.Links.Exists(ctx, link)
		if err != nil {
			return err
		}
		if exists {
			return &domain.ConflictError{Entity: "categoria_articulo", Reason: "el artículo ya está asignado a la categoría"}
		}
		dup, err := repos.Articles.ExistsCodeInCategory(ctx, article.Code, link.CategoryID)
		if err != nil {
			return err
		}
		if dup {
			return &domain.ConflictError{Entity: "articulo", Reason: "ya existe un artículo con ese código en la categoría"}
		}
		return repos.Links.Create(ctx, link)
	})
}

// Unassign elimina la asociación. ErrNotFound si no existía.
func (uc *CategoryUseCase) Unassign(ctx context.Context, categoryID, articleID string) error {
	link, err := parseLink(categoryID, articleID)
	if err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		n, err := repos.Links.Delete(ctx, link)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func parseLink(categoryID, articleID string) (entity.ArticleCategory, error) {
	var (
		link entity.ArticleCategory
		err  error
	)
	if link.CategoryID, err = domain.ParseID("id_categoria", categoryID); err != nil {
		return link, err
	}
	if link.ArticleID, err = domain.ParseID("id_articulo", articleID); err != nil {
		return link, err
	}
	return link, nil
}

func toCategoryResponse(c *entity.Category, total *int) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:            c.ID,
		Name:          c.Name,
		Icon:          c.Icon,
		Description:   c.Description,
		TotalArticles: total,
		CreatedAt:     c.CreatedAt,
	}
}
