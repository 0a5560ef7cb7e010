package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/ledger"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// RegisterMovementUseCase aplica movimientos ENTRADA/SALIDA sobre el stock de un artículo
// de forma transaccional, con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, now: time.Now}
}

// MovementInput entrada para registrar un movimiento.
type MovementInput struct {
	ArticleID string
	Action    string
	Quantity  decimal.Decimal
	UnitCost  *decimal.Decimal // obligatorio en ENTRADA
	Doc       string
	Detail    string
}

// MovementResult movimiento creado y saldo antes/después.
type MovementResult struct {
	Movement    entity.Movement
	State       entity.MovementState
	StockBefore decimal.Decimal
	StockAfter  decimal.Decimal
	Delta       decimal.Decimal
}

// Apply valida la entrada, bloquea el artículo, calcula el nuevo saldo, inserta el movimiento
// y actualiza el stock en una sola transacción. Los errores de validación se devuelven
// antes de abrir la transacción.
func (uc *RegisterMovementUseCase) Apply(ctx context.Context, in MovementInput) (*MovementResult, error) {
	articleID, err := domain.ParseID("id_articulo", in.ArticleID)
	if err != nil {
		return nil, err
	}
	in.ArticleID = articleID
	if err := ledger.Validate(in.Action, in.Quantity, in.UnitCost); err != nil {
		return nil, err
	}

	mov := entity.Movement{
		ID:        uuid.New().String(),
		ArticleID: in.ArticleID,
		Action:    in.Action,
		Date:      uc.now(),
		Doc:       in.Doc,
		Detail:    in.Detail,
		Quantity:  in.Quantity,
	}
	// unit_cost solo se guarda en entradas
	if in.Action == entity.MovementEntrada {
		cost := *in.UnitCost
		mov.UnitCost = &cost
	}

	var res ledger.Result
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		article, err := repos.Articles.GetForUpdate(ctx, in.ArticleID)
		if err != nil {
			return err
		}
		if article == nil {
			return domain.ErrNotFound
		}
		res, err = ledger.Apply(article.Stock, in.Action, in.Quantity)
		if err != nil {
			return err
		}
		if err := repos.Movements.Create(ctx, &mov); err != nil {
			return err
		}
		n, err := repos.Articles.UpdateStock(ctx, in.ArticleID, res.After)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &MovementResult{
		Movement:    mov,
		State:       entity.MovementApplied,
		StockBefore: res.Before,
		StockAfter:  res.After,
		Delta:       res.Delta,
	}, nil
}

// Delete elimina un movimiento revirtiendo antes su efecto sobre el stock del artículo.
func (uc *RegisterMovementUseCase) Delete(ctx context.Context, movementID string) (*ledger.Result, error) {
	movementID, err := domain.ParseID("id", movementID)
	if err != nil {
		return nil, err
	}
	var res ledger.Result
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		mov, err := repos.Movements.GetByID(ctx, movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		article, err := repos.Articles.GetForUpdate(ctx, mov.ArticleID)
		if err != nil {
			return err
		}
		if article == nil {
			return domain.ErrNotFound
		}
		res, err = ledger.Reverse(article.Stock, mov.Action, mov.Quantity)
		if err != nil {
			return err
		}
		if _, err := repos.Articles.UpdateStock(ctx, article.ID, res.After); err != nil {
			return err
		}
		n, err := repos.Movements.Delete(ctx, movementID)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
