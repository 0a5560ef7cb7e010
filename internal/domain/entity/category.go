package entity

import "time"

// Category agrupa artículos (relación muchos a muchos vía ArticleCategory).
type Category struct {
	ID          string
	Name        string // único global
	Icon        string
	Description string
	CreatedAt   time.Time
}

// CategoryWithCount categoría con el total de artículos asociados.
type CategoryWithCount struct {
	Category
	TotalArticles int
}

// ArticleCategory asociación (category_id, article_id); no admite pares duplicados.
type ArticleCategory struct {
	CategoryID string
	ArticleID  string
}
