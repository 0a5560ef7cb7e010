package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
)

// ArticleHandler maneja las peticiones HTTP de artículos (protegido).
type ArticleHandler struct {
	uc      *usecase.ArticleUseCase
	cascade *inventory.CascadeUseCase
}

// NewArticleHandler construye el handler.
func NewArticleHandler(uc *usecase.ArticleUseCase, cascade *inventory.CascadeUseCase) *ArticleHandler {
	return &ArticleHandler{uc: uc, cascade: cascade}
}

// Create godoc
// @Summary      Crear artículo
// @Description  Crea el artículo y lo asigna a la categoría indicada en una sola transacción.
// @Tags         articles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateArticleRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.Response{data=dto.CreateArticleResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/articles [post]
func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateArticleRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, "articles.create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Artículo creado correctamente", out))
}

// List godoc
// @Summary      Listar artículos
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response{data=[]dto.ArticleResponse}
// @Router       /api/articles [get]
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, "articles.list", err)
	}
	return c.JSON(dto.OK("", list))
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.Response{data=dto.ArticleResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/{id} [get]
func (h *ArticleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, "articles.get", err)
	}
	return c.JSON(dto.OK("", out))
}

// Update godoc
// @Summary      Actualizar artículo
// @Description  Actualiza los campos descriptivos. El stock sólo cambia por movimientos.
// @Tags         articles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del artículo"
// @Param        body  body  dto.UpdateArticleRequest  true  "Datos del artículo"
// @Success      200   {object}  dto.Response{data=dto.ArticleResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/articles/{id} [put]
func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateArticleRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, "articles.update", err)
	}
	return c.JSON(dto.OK("Artículo actualizado correctamente", out))
}

// UpdateStock godoc
// @Summary      Sobrescribir stock
// @Description  Ajuste directo del stock, fuera del kardex. Queda registrado como advertencia.
// @Tags         articles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del artículo"
// @Param        body  body  dto.UpdateStockRequest  true  "stock"
// @Success      200   {object}  dto.Response{data=dto.ArticleResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/stock [patch]
func (h *ArticleHandler) UpdateStock(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStock(c.UserContext(), c.Params("id"), in.Stock)
	if err != nil {
		return writeError(c, "articles.update_stock", err)
	}
	return c.JSON(dto.OK("Stock actualizado correctamente", out))
}

// Delete godoc
// @Summary      Eliminar artículo
// @Description  Elimina movimientos, asignaciones y el artículo en una transacción.
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.Response{data=dto.DeleteArticleResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/{id} [delete]
func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	res, err := h.cascade.DeleteArticle(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, "articles.delete", err)
	}
	return c.JSON(dto.OK("Artículo eliminado correctamente", dto.DeleteArticleResponse{
		DeletedMovements: res.DeletedMovements,
		DeletedLinks:     res.DeletedLinks,
	}))
}

// ListByCategory godoc
// @Summary      Artículos de una categoría
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Param        categoryId  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.Response{data=[]dto.ArticleResponse}
// @Router       /api/articles/categoria/{categoryId} [get]
func (h *ArticleHandler) ListByCategory(c *fiber.Ctx) error {
	list, err := h.uc.ListByCategory(c.UserContext(), c.Params("categoryId"))
	if err != nil {
		return writeError(c, "articles.list_by_category", err)
	}
	return c.JSON(dto.OK("", list))
}

// FindDuplicates godoc
// @Summary      Artículos homónimos
// @Description  Artículos con el mismo nombre en distintas categorías.
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "Nombre del artículo"
// @Success      200   {object}  dto.Response{data=[]dto.DuplicateArticleResponse}
// @Router       /api/articles/duplicados/{name} [get]
func (h *ArticleHandler) FindDuplicates(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return badBody(c)
	}
	list, err := h.uc.FindDuplicatesByName(c.UserContext(), name)
	if err != nil {
		return writeError(c, "articles.duplicates", err)
	}
	return c.JSON(dto.OK("", list))
}
