package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
)

// CategoryHandler maneja categorías y asignaciones artículo-categoría (protegido).
type CategoryHandler struct {
	uc       *usecase.CategoryUseCase
	articles *usecase.ArticleUseCase
	cascade  *inventory.CascadeUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, articles *usecase.ArticleUseCase, cascade *inventory.CascadeUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc, articles: articles, cascade: cascade}
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "nombre, icono, descripcion"
// @Success      201   {object}  dto.Response{data=dto.CategoryResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, "categories.create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Categoría creada correctamente", out))
}

// List godoc
// @Summary      Listar categorías con total de artículos
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response{data=[]dto.CategoryResponse}
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, "categories.list", err)
	}
	return c.JSON(dto.OK("", list))
}

// GetByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.Response{data=dto.CategoryResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, "categories.get", err)
	}
	return c.JSON(dto.OK("", out))
}

// Update godoc
// @Summary      Actualizar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la categoría"
// @Param        body  body  dto.CategoryRequest  true  "nombre, icono, descripcion"
// @Success      200   {object}  dto.Response{data=dto.CategoryResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, "categories.update", err)
	}
	return c.JSON(dto.OK("Categoría actualizada correctamente", out))
}

// Delete godoc
// @Summary      Eliminar categoría
// @Description  Sólo se elimina si no tiene artículos asignados; en otro caso responde 409 con el total.
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.Response{data=dto.DeleteCategoryResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	res, err := h.cascade.DeleteCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, "categories.delete", err)
	}
	return c.JSON(dto.OK("Categoría eliminada correctamente", dto.DeleteCategoryResponse{DeletedArticles: res.DeletedArticles}))
}

// Assign godoc
// @Summary      Asignar artículo a categoría
// @Tags         category-articles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignRequest  true  "id_categoria, id_articulo"
// @Success      201   {object}  dto.Response
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/category-articles [post]
func (h *CategoryHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	if err := h.uc.Assign(c.UserContext(), in); err != nil {
		return writeError(c, "category_articles.assign", err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Artículo asignado a la categoría", in))
}

// Unassign godoc
// @Summary      Quitar artículo de una categoría
// @Tags         category-articles
// @Security     Bearer
// @Produce      json
// @Param        categoryId  path  string  true  "ID de la categoría"
// @Param        articleId   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/category-articles/{categoryId}/{articleId} [delete]
func (h *CategoryHandler) Unassign(c *fiber.Ctx) error {
	if err := h.uc.Unassign(c.UserContext(), c.Params("categoryId"), c.Params("articleId")); err != nil {
		return writeError(c, "category_articles.unassign", err)
	}
	return c.JSON(dto.OK("Asignación eliminada correctamente", nil))
}

// ArticlesOfCategory godoc
// @Summary      Artículos asignados a una categoría
// @Tags         category-articles
// @Security     Bearer
// @Produce      json
// @Param        categoryId  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.Response{data=[]dto.ArticleResponse}
// @Router       /api/category-articles/categoria/{categoryId} [get]
func (h *CategoryHandler) ArticlesOfCategory(c *fiber.Ctx) error {
	list, err := h.articles.ListByCategory(c.UserContext(), c.Params("categoryId"))
	if err != nil {
		return writeError(c, "category_articles.by_category", err)
	}
	return c.JSON(dto.OK("", list))
}

// CategoriesOfArticle godoc
// @Summary      Categorías de un artículo
// @Tags         category-articles
// @Security     Bearer
// @Produce      json
// @Param        articleId  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.Response{data=[]dto.CategoryResponse}
// @Router       /api/category-articles/articulo/{articleId} [get]
func (h *CategoryHandler) CategoriesOfArticle(c *fiber.Ctx) error {
	list, err := h.uc.ListByArticle(c.UserContext(), c.Params("articleId"))
	if err != nil {
		return writeError(c, "category_articles.by_article", err)
	}
	return c.JSON(dto.OK("", list))
}
