package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// Mensajes para el usuario por tipo de fallo del almacén.
var (
	duplicateMessages = map[string]string{
		"articulo":           "Ya existe un artículo con ese código en esta categoría",
		"categoria":          "Ya existe una categoría con ese nombre",
		"categoria_articulo": "El artículo ya está asignado a esa categoría",
		"usuario":            "Ya existe un usuario con ese correo electrónico",
	}
	storeMessages = map[domain.StoreErrorKind]string{
		domain.StoreNotNullViolation: "Faltan campos requeridos",
		domain.StoreCheckViolation:   "Los datos no cumplen las reglas del inventario",
		domain.StoreDataTooLong:      "Los datos ingresados son demasiado largos",
		domain.StoreInvalidValue:     "El valor ingresado no es válido",
		domain.StoreConnection:       "No se puede conectar con la base de datos",
		domain.StoreTimeout:          "La conexión con la base de datos ha expirado",
	}
)

const unexpectedMessage = "Ha ocurrido un error inesperado. Por favor, inténtalo de nuevo."

// storeFailure traduce un StoreError a estado HTTP, código y mensaje legible.
func storeFailure(se *domain.StoreError) (int, string, string) {
	switch se.Kind {
	case domain.StoreUniqueViolation:
		msg, ok := duplicateMessages[se.Entity]
		if !ok {
			msg = "El registro ya existe en el sistema"
		}
		return fiber.StatusConflict, "DUPLICATE", msg
	case domain.StoreForeignKeyViolation:
		if se.Action == "crear" {
			return fiber.StatusBadRequest, "FOREIGN_KEY", "No se puede crear el registro porque la categoría o el artículo referenciado no existe"
		}
		return fiber.StatusConflict, "FOREIGN_KEY", "No se puede eliminar porque tiene registros relacionados"
	case domain.StoreNotNullViolation, domain.StoreCheckViolation, domain.StoreDataTooLong, domain.StoreInvalidValue:
		return fiber.StatusBadRequest, "INVALID_DATA", storeMessages[se.Kind]
	case domain.StoreConnection:
		return fiber.StatusServiceUnavailable, "DB_UNAVAILABLE", storeMessages[se.Kind]
	case domain.StoreTimeout:
		return fiber.StatusGatewayTimeout, "DB_TIMEOUT", storeMessages[se.Kind]
	default:
		return fiber.StatusInternalServerError, "INTERNAL", unexpectedMessage
	}
}

// writeError convierte un error de dominio en la respuesta HTTP. op identifica la operación en el log.
func writeError(c *fiber.Ctx, op string, err error) error {
	var (
		invalid      *domain.InvalidInputError
		insufficient *domain.InsufficientStockError
		conflict     *domain.ConflictError
		store        *domain.StoreError
	)
	status, body := fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: unexpectedMessage}
	switch {
	case errors.As(err, &invalid):
		status, body = fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: invalid.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		status, body = fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.As(err, &insufficient):
		status, body = fiber.StatusBadRequest, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: insufficient.Error()}
	case errors.As(err, &conflict):
		status, body = fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: conflict.Reason, Count: conflict.Count}
	case errors.Is(err, domain.ErrNotFound):
		status, body = fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		status, body = fiber.StatusConflict, dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"}
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		status, body = fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"}
	case errors.As(err, &store):
		var code, msg string
		status, code, msg = storeFailure(store)
		body = dto.ErrorResponse{Code: code, Message: msg}
	}
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("op", op).Int("status", status).Msg("error atendiendo la petición")
	}
	return c.Status(status).JSON(body)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
