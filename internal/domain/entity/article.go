package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Article representa un artículo del inventario.
// Stock es el saldo corriente: solo lo modifican los movimientos (o el ajuste directo de stock).
type Article struct {
	ID         string
	Code       string // único dentro de cada categoría, no global
	Name       string
	Unit       string
	Detail     string
	Expiration *time.Time // opcional
	Other      string
	Stock      decimal.Decimal
	Opening    decimal.Decimal // stock inicial registrado al crear el artículo
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ArticleCategoryRef artículo con la categoría a la que está asociado (búsqueda de duplicados por nombre).
type ArticleCategoryRef struct {
	ArticleID    string
	Code         string
	Name         string
	CategoryID   string
	CategoryName string
	CategoryIcon string
}
