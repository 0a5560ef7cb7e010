package dto

import "time"

// CategoryRequest body para crear o actualizar una categoría.
type CategoryRequest struct {
	Name        string `json:"nombre" validate:"required,max=100"`
	Icon        string `json:"icono" validate:"required,max=50"`
	Description string `json:"descripcion"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"nombre"`
	Icon          string    `json:"icono"`
	Description   string    `json:"descripcion"`
	TotalArticles *int      `json:"total_articulos,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// AssignRequest body para asignar un artículo a una categoría.
type AssignRequest struct {
	CategoryID string `json:"id_categoria" validate:"required"`
	ArticleID  string `json:"id_articulo" validate:"required"`
}

// DeleteCategoryResponse resultado del borrado de una categoría.
type DeleteCategoryResponse struct {
	DeletedArticles int `json:"deleted_articles"`
}
