package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/ledger"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// UncategorizedName nombre del grupo de artículos que no pertenecen a ninguna categoría.
const UncategorizedName = "Sin categoría"

// ReportPDFGenerator genera el PDF del informe general.
type ReportPDFGenerator interface {
	Generate(report *dto.GeneralReportDTO) ([]byte, error)
}

// ReportUseCase arma el informe general: stock por categoría, consistencia contra el kardex
// y valorización a costo promedio ponderado.
type ReportUseCase struct {
	repo repository.ReportRepository
	pdf  ReportPDFGenerator
}

// NewReportUseCase construye el caso de uso. pdf puede ser nil si no se expone el PDF.
func NewReportUseCase(repo repository.ReportRepository, pdf ReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{repo: repo, pdf: pdf}
}

// General devuelve el informe agrupado por categoría en el orden que entrega el repositorio.
func (uc *ReportUseCase) General(ctx context.Context) (*dto.GeneralReportDTO, error) {
	rows, err := uc.repo.GeneralReport(ctx)
	if err != nil {
		return nil, err
	}
	movs, err := uc.repo.MovementsChronological(ctx)
	if err != nil {
		return nil, err
	}
	byArticle := make(map[string][]entity.Movement)
	for _, m := range movs {
		byArticle[m.ArticleID] = append(byArticle[m.ArticleID], m)
	}

	out := &dto.GeneralReportDTO{Categories: []dto.ReportCategoryDTO{}, TotalValuation: decimal.Zero}
	index := make(map[string]int)
	counted := make(map[string]bool)
	for _, r := range rows {
		i, ok := index[r.CategoryID]
		if !ok {
			name := r.CategoryName
			if r.CategoryID == "" {
				name = UncategorizedName
			}
			out.Categories = append(out.Categories, dto.ReportCategoryDTO{
				ID:        r.CategoryID,
				Name:      name,
				Icon:      r.CategoryIcon,
				Articles:  []dto.ReportArticleDTO{},
				Valuation: decimal.Zero,
			})
			i = len(out.Categories) - 1
			index[r.CategoryID] = i
		}
		if r.ArticleID == "" {
			continue
		}
		avg := ledger.AverageCost(r.Opening, byArticle[r.ArticleID])
		item := dto.ReportArticleDTO{
			ID:             r.ArticleID,
			Code:           r.ArticleCode,
			Name:           r.ArticleName,
			Unit:           r.Unit,
			Detail:         r.Detail,
			Stock:          r.Stock,
			TotalMovements: r.TotalMovements,
			MovementsNet:   r.MovementsNet,
			Consistent:     r.Stock.Equal(r.Opening.Add(r.MovementsNet)),
			AverageCost:    avg,
			Valuation:      r.Stock.Mul(avg).Round(2),
		}
		cat := &out.Categories[i]
		cat.Articles = append(cat.Articles, item)
		cat.Valuation = cat.Valuation.Add(item.Valuation)

		// un artículo en varias categorías se cuenta y valoriza una sola vez en los totales
		if counted[r.ArticleID] {
			continue
		}
		counted[r.ArticleID] = true
		out.TotalArticles++
		out.TotalValuation = out.TotalValuation.Add(item.Valuation)
		if !item.Consistent {
			out.Inconsistent++
		}
	}
	return out, nil
}

// GeneralPDF genera el informe general en PDF.
func (uc *ReportUseCase) GeneralPDF(ctx context.Context) ([]byte, error) {
	if uc.pdf == nil {
		return nil, errors.New("generador de PDF no configurado")
	}
	report, err := uc.General(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.Generate(report)
}
