package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kardex-api/internal/application/auth"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ArticleUC        *usecase.ArticleUseCase
	CategoryUC       *usecase.CategoryUseCase
	MovementQueries  *usecase.MovementQueryUseCase
	ReportUC         *usecase.ReportUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Cascade          *inventory.CascadeUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Artículos
	articles := protected.Group("/articles")
	articleHandler := NewArticleHandler(deps.ArticleUC, deps.Cascade)
	articles.Get("/", articleHandler.List)
	articles.Post("/", articleHandler.Create)
	articles.Get("/categoria/:categoryId", articleHandler.ListByCategory)
	articles.Get("/duplicados/:name", articleHandler.FindDuplicates)
	articles.Get("/:id", articleHandler.GetByID)
	articles.Put("/:id", articleHandler.Update)
	articles.Patch("/:id/stock", articleHandler.UpdateStock)
	articles.Delete("/:id", articleHandler.Delete)

	// Categorías y asignaciones
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.ArticleUC, deps.Cascade)
	categories := protected.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	links := protected.Group("/category-articles")
	links.Get("/categoria/:categoryId", categoryHandler.ArticlesOfCategory)
	links.Get("/articulo/:articleId", categoryHandler.CategoriesOfArticle)
	links.Post("/", categoryHandler.Assign)
	links.Delete("/:categoryId/:articleId", categoryHandler.Unassign)

	// Kardex
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.MovementQueries)
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Create)
	movements.Get("/articulo/:id", movementHandler.ListByArticle)
	movements.Delete("/:id", movementHandler.Delete)

	// Informes
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/general", reportHandler.General)
	reports.Get("/general/pdf", reportHandler.GeneralPDF)
}
