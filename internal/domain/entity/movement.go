package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Acciones de movimiento de inventario.
const (
	MovementEntrada = "ENTRADA" // entrada: suma al stock
	MovementSalida  = "SALIDA"  // salida: resta del stock
)

// Estados del ciclo de vida de una solicitud de movimiento.
type MovementState string

const (
	MovementRequested MovementState = "REQUESTED"
	MovementValidated MovementState = "VALIDATED"
	MovementApplied   MovementState = "APPLIED"
	MovementRejected  MovementState = "REJECTED"
)

// Movement representa un movimiento de stock aplicado sobre un artículo. Inmutable una vez aplicado.
type Movement struct {
	ID        string
	ArticleID string
	Action    string
	Date      time.Time
	Doc       string
	Detail    string
	Quantity  decimal.Decimal  // siempre > 0; el signo lo da Action
	UnitCost  *decimal.Decimal // solo ENTRADA; nil en SALIDA
}

// MovementWithArticle movimiento con datos del artículo para el historial.
type MovementWithArticle struct {
	Movement
	ArticleCode string
	ArticleName string
}
