package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
)

// MovementHandler maneja el kardex: registro, historial y reversión de movimientos (protegido).
type MovementHandler struct {
	ledger  *inventory.RegisterMovementUseCase
	queries *usecase.MovementQueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(ledger *inventory.RegisterMovementUseCase, queries *usecase.MovementQueryUseCase) *MovementHandler {
	return &MovementHandler{ledger: ledger, queries: queries}
}

// Create godoc
// @Summary      Registrar movimiento
// @Description  ENTRADA suma al stock y exige costo_unidad > 0. SALIDA resta y falla si supera el stock.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "id_articulo, accion, cantidad, costo_unidad (entradas)"
// @Success      201   {object}  dto.Response{data=dto.MovementResultResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	res, err := h.ledger.Apply(c.UserContext(), inventory.MovementInput{
		ArticleID: in.ArticleID,
		Action:    in.Action,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Doc:       in.Doc,
		Detail:    in.Detail,
	})
	if err != nil {
		return writeError(c, "movements.create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Movimiento registrado correctamente", dto.MovementResultResponse{
		ID:          res.Movement.ID,
		StockBefore: res.StockBefore,
		StockAfter:  res.StockAfter,
		Delta:       res.Delta,
	}))
}

// List godoc
// @Summary      Historial global de movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de filas (50 por defecto)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.Response{data=[]dto.MovementResponse}
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	list, err := h.queries.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, "movements.list", err)
	}
	return c.JSON(dto.OK("", list))
}

// ListByArticle godoc
// @Summary      Kardex de un artículo
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.Response{data=[]dto.MovementResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/articulo/{id} [get]
func (h *MovementHandler) ListByArticle(c *fiber.Ctx) error {
	list, err := h.queries.ListByArticle(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, "movements.list_by_article", err)
	}
	return c.JSON(dto.OK("", list))
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Description  Revierte el efecto del movimiento sobre el stock y lo elimina.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.Response{data=dto.DeleteMovementResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	res, err := h.ledger.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, "movements.delete", err)
	}
	return c.JSON(dto.OK("Movimiento eliminado correctamente", dto.DeleteMovementResponse{
		StockBefore: res.Before,
		StockAfter:  res.After,
	}))
}
