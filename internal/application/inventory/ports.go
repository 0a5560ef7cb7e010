package inventory

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback en cualquier otro caso (error o panic).
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepos) error) error
}
