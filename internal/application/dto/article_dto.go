package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateArticleRequest body para POST /api/articles.
type CreateArticleRequest struct {
	Code       string           `json:"codigo" validate:"required,max=50"`
	Name       string           `json:"nombre" validate:"required,max=200"`
	Unit       string           `json:"unidad" validate:"required,max=30"`
	Detail     string           `json:"detalle"`
	Expiration string           `json:"fecha_vencimiento"` // YYYY-MM-DD, vacío = sin vencimiento
	Other      string           `json:"otros"`
	Stock      *decimal.Decimal `json:"stock"`
	CategoryID string           `json:"id_categoria"` // opcional
}

// UpdateArticleRequest body para PUT /api/articles/:id (el stock no se edita aquí).
type UpdateArticleRequest struct {
	Code       string `json:"codigo" validate:"required,max=50"`
	Name       string `json:"nombre" validate:"required,max=200"`
	Unit       string `json:"unidad" validate:"required,max=30"`
	Detail     string `json:"detalle"`
	Expiration string `json:"fecha_vencimiento"`
	Other      string `json:"otros"`
}

// UpdateStockRequest body para PATCH /api/articles/:id/stock.
type UpdateStockRequest struct {
	Stock *decimal.Decimal `json:"stock"`
}

// ArticleResponse salida de un artículo.
type ArticleResponse struct {
	ID         string          `json:"id"`
	Code       string          `json:"codigo"`
	Name       string          `json:"nombre"`
	Unit       string          `json:"unidad"`
	Detail     string          `json:"detalle"`
	Expiration string          `json:"fecha_vencimiento,omitempty"`
	Other      string          `json:"otros"`
	Stock      decimal.Decimal `json:"stock"`
	CreatedAt  time.Time       `json:"fecha_creacion"`
}

// CreateArticleResponse id del artículo creado.
type CreateArticleResponse struct {
	ID   string `json:"id"`
	Code string `json:"codigo"`
	Name string `json:"nombre"`
	Unit string `json:"unidad"`
}

// DuplicateArticleResponse artículo homónimo con la categoría donde está.
type DuplicateArticleResponse struct {
	ArticleID    string `json:"id_articulo"`
	Code         string `json:"codigo"`
	Name         string `json:"nombre"`
	CategoryID   string `json:"id_categoria"`
	CategoryName string `json:"categoria_nombre"`
	CategoryIcon string `json:"categoria_icono"`
}

// DeleteArticleResponse resultado del borrado en cascada.
type DeleteArticleResponse struct {
	DeletedMovements int64 `json:"deleted_movements"`
	DeletedLinks     int64 `json:"deleted_links"`
}
