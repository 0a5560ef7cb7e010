package repository

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// ReportRepository consultas de solo lectura para el informe general.
type ReportRepository interface {
	// GeneralReport filas categoría × artículo, incluidas las categorías sin artículos.
	GeneralReport(ctx context.Context) ([]entity.ReportRow, error)
	// MovementsChronological todos los movimientos ordenados por artículo y fecha (para costeo).
	MovementsChronological(ctx context.Context) ([]entity.Movement, error)
}
