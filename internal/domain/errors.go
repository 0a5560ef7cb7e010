package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrStoreFailure       = errors.New("fallo en la base de datos")
)

// InvalidInputError detalla qué campo no pasó la validación.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid construye un InvalidInputError.
func Invalid(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

// InsufficientStockError reporta el stock actual y la cantidad solicitada de una SALIDA rechazada.
type InsufficientStockError struct {
	Current   decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente. Stock actual: %s, Cantidad solicitada: %s",
		e.Current.String(), e.Requested.String())
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// ConflictError describe un duplicado o un borrado bloqueado por registros hijos.
// Count es el número de hijos que bloquean la operación (0 para duplicados).
type ConflictError struct {
	Entity string
	Reason string
	Count  int
}

func (e *ConflictError) Error() string {
	if e.Count > 0 {
		return fmt.Sprintf("%s: %s (%d)", e.Entity, e.Reason, e.Count)
	}
	return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// StoreErrorKind clasifica los fallos del almacén en un conjunto cerrado de códigos.
type StoreErrorKind string

const (
	StoreUniqueViolation     StoreErrorKind = "unique_violation"
	StoreForeignKeyViolation StoreErrorKind = "foreign_key_violation"
	StoreNotNullViolation    StoreErrorKind = "not_null_violation"
	StoreCheckViolation      StoreErrorKind = "check_violation"
	StoreDataTooLong         StoreErrorKind = "data_too_long"
	StoreInvalidValue        StoreErrorKind = "invalid_value"
	StoreConnection          StoreErrorKind = "connection"
	StoreTimeout             StoreErrorKind = "timeout"
	StoreUnknown             StoreErrorKind = "unknown"
)

// StoreError envuelve un error de la base de datos con la entidad y la acción que se intentaba.
type StoreError struct {
	Entity string
	Action string
	Kind   StoreErrorKind
	Err    error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Action, e.Entity, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStoreFailure }

// StoreKind devuelve el Kind si err contiene un StoreError, o "" en otro caso.
func StoreKind(err error) StoreErrorKind {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}
