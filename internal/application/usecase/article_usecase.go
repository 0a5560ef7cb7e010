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
	"github.com/jhoicas/kardex-api/internal/domain/ledger"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

const dateLayout = "2006-01-02"

// ArticleUseCase casos de uso del catálogo de artículos. El stock se mueve vía movimientos;
// UpdateStock es el único ajuste directo.
type ArticleUseCase struct {
	repo     repository.ArticleRepository
	txRunner inventory.TxRunner
	now      func() time.Time
}

// NewArticleUseCase construye el caso de uso.
func NewArticleUseCase(repo repository.ArticleRepository, txRunner inventory.TxRunner) *ArticleUseCase {
	return &ArticleUseCase{repo: repo, txRunner: txRunner, now: time.Now}
}

// normalize recorta espacios y lleva el texto a NFC para que "Lápiz" compuesto y
// descompuesto se comparen igual en los chequeos de duplicados.
func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func parseDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, domain.Invalid(field, "formato esperado YYYY-MM-DD")
	}
	return &t, nil
}

func requireFields(code, name, unit string) error {
	if code == "" {
		return domain.Invalid("codigo", "es requerido")
	}
	if name == "" {
		return domain.Invalid("nombre", "es requerido")
	}
	if unit == "" {
		return domain.Invalid("unidad", "es requerido")
	}
	return nil
}

// Create crea el artículo y, si se indica categoría, su asociación en una sola transacción.
// El código debe ser único dentro de la categoría destino; la fila de la categoría queda
// bloqueada durante el chequeo para que dos altas concurrentes no repitan el código.
func (uc *ArticleUseCase) Create(ctx context.Context, in dto.CreateArticleRequest) (*dto.CreateArticleResponse, error) {
	code, name, unit := normalize(in.Code), normalize(in.Name), normalize(in.Unit)
	if err := requireFields(code, name, unit); err != nil {
		return nil, err
	}
	var categoryID string
	if raw := strings.TrimSpace(in.CategoryID); raw != "" {
		id, err := domain.ParseID("id_categoria", raw)
		if err != nil {
			return nil, err
		}
		categoryID = id
	}
	stock, err := checkStock(in.Stock)
	if err != nil {
		return nil, err
	}
	expiration, err := parseDate("fecha_vencimiento", in.Expiration)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	article := &entity.Article{
		ID:         uuid.New().String(),
		Code:       code,
		Name:       name,
		Unit:       unit,
		Detail:     strings.TrimSpace(in.Detail),
		Expiration: expiration,
		Other:      strings.TrimSpace(in.Other),
		Stock:      stock,
		Opening:    stock,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		// sin categoría no hay ámbito para el código duplicado
		if categoryID == "" {
			return repos.Articles.Create(ctx, article)
		}
		cat, err := repos.Categories.GetForUpdate(ctx, categoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.ErrNotFound
		}
		dup, err := repos.Articles.ExistsCodeInCategory(ctx, code, categoryID)
		if err != nil {
			return err
		}
		if dup {
			return errDuplicateCode
		}
		if err := repos.Articles.Create(ctx, article); err != nil {
			return err
		}
		return repos.Links.Create(ctx, entity.ArticleCategory{CategoryID: categoryID, ArticleID: article.ID})
	})
	if err != nil {
		return nil, err
	}
	return &dto.CreateArticleResponse{ID: article.ID, Code: article.Code, Name: article.Name, Unit: article.Unit}, nil
}

var errDuplicateCode = &domain.ConflictError{Entity: "articulo", Reason: "ya existe un artículo con ese código en la categoría"}

// checkStock valida el stock inicial o ajustado: no negativo y con la escala de la columna.
func checkStock(stock *decimal.Decimal) (decimal.Decimal, error) {
	if stock == nil {
		return decimal.Zero, nil
	}
	if stock.IsNegative() {
		return decimal.Zero, domain.Invalid("stock", "no puede ser negativo")
	}
	if err := ledger.CheckScale("stock", *stock, ledger.QuantityPlaces); err != nil {
		return decimal.Zero, err
	}
	return *stock, nil
}

// GetByID obtiene un artículo. ErrNotFound si no existe.
func (uc *ArticleUseCase) GetByID(ctx context.Context, id string) (*dto.ArticleResponse, error) {
	id, err := domain.ParseID("id", id)
	if err != nil {
		return nil, err
	}
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return toArticleResponse(a), nil
}

// List lista todos los artículos ordenados por nombre.
func (uc *ArticleUseCase) List(ctx context.Context) ([]dto.ArticleResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toArticleResponses(list), nil
}

// ListByCategory lista los artículos asociados a una categoría.
func (uc *ArticleUseCase) ListByCategory(ctx context.Context, categoryID string) ([]dto.ArticleResponse, error) {
	categoryID, err := domain.ParseID("id_categoria", categoryID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return toArticleResponses(list), nil
}

// FindDuplicatesByName devuelve los artículos con ese nombre y la categoría de cada uno.
func (uc *ArticleUseCase) FindDuplicatesByName(ctx context.Context, name string) ([]dto.DuplicateArticleResponse, error) {
	name = normalize(name)
	if name == "" {
		return nil, domain.Invalid("nombre", "es requerido")
	}
	refs, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DuplicateArticleResponse, 0, len(refs))
	for _, r := range refs {
		out = append(out, dto.DuplicateArticleResponse{
			ArticleID:    r.ArticleID,
			Code:         r.Code,
			Name:         r.Name,
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			CategoryIcon: r.CategoryIcon,
		})
	}
	return out, nil
}

// Update modifica los campos descriptivos. El stock no se toca.
func (uc *ArticleUseCase) Update(ctx context.Context, id string, in dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	id, err := domain.ParseID("id", id)
	if err != nil {
		return nil, err
	}
	code, name, unit := normalize(in.Code), normalize(in.Name), normalize(in.Unit)
	if err := requireFields(code, name, unit); err != nil {
		return nil, err
	}
	expiration, err := parseDate("fecha_vencimiento", in.Expiration)
	if err != nil {
		return nil, err
	}
	article, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.ErrNotFound
	}
	article.Code = code
	article.Name = name
	article.Unit = unit
	article.Detail = strings.TrimSpace(in.Detail)
	article.Expiration = expiration
	article.Other = strings.TrimSpace(in.Other)
	article.UpdatedAt = uc.now()
	n, err := uc.repo.Update(ctx, article)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}
	return toArticleResponse(article), nil
}

// UpdateStock fija el stock sin pasar por el kardex. Deja el saldo desalineado de la suma
// de movimientos, por eso se registra en el log como advertencia.
func (uc *ArticleUseCase) UpdateStock(ctx context.Context, id string, stock *decimal.Decimal) (*dto.ArticleResponse, error) {
	id, err := domain.ParseID("id", id)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.Invalid("stock", "es requerido")
	}
	value, err := checkStock(stock)
	if err != nil {
		return nil, err
	}
	n, err := uc.repo.UpdateStock(ctx, id, value)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}
	log.Warn().
		Str("op", "update_stock").
		Str("article_id", id).
		Str("stock", value.String()).
		Msg("ajuste directo de stock fuera del kardex")
	return uc.GetByID(ctx, id)
}

func toArticleResponse(a *entity.Article) *dto.ArticleResponse {
	if a == nil {
		return nil
	}
	out := &dto.ArticleResponse{
		ID:        a.ID,
		Code:      a.Code,
		Name:      a.Name,
		Unit:      a.Unit,
		Detail:    a.Detail,
		Other:     a.Other,
		Stock:     a.Stock,
		CreatedAt: a.CreatedAt,
	}
	if a.Expiration != nil {
		out.Expiration = a.Expiration.Format(dateLayout)
	}
	return out
}

func toArticleResponses(list []*entity.Article) []dto.ArticleResponse {
	out := make([]dto.ArticleResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toArticleResponse(a))
	}
	return out
}
