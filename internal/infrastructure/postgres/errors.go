package postgres

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/kardex-api/internal/domain"
)

// SQLSTATE usados en el mapeo a StoreErrorKind.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
	codeStringDataTooLong   = "22001"
	codeInvalidTextRepr     = "22P02"
	codeInvalidDatetime     = "22007"
	codeDatetimeOverflow    = "22008"
	codeNumericOutOfRange   = "22003"
	codeQueryCanceled       = "57014"
	codeTooManyConnections  = "53300"
	codeCannotConnectNow    = "57P03"
)

// wrapErr traduce un error de pgx a domain.StoreError con la entidad y la acción intentada.
// nil sigue siendo nil.
func wrapErr(entityName, action string, err error) error {
	if err == nil {
		return nil
	}
	return &domain.StoreError{Entity: entityName, Action: action, Kind: classify(err), Err: err}
}

func classify(err error) domain.StoreErrorKind {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return domain.StoreUniqueViolation
		case codeForeignKeyViolation:
			return domain.StoreForeignKeyViolation
		case codeNotNullViolation:
			return domain.StoreNotNullViolation
		case codeCheckViolation:
			return domain.StoreCheckViolation
		case codeStringDataTooLong:
			return domain.StoreDataTooLong
		case codeInvalidTextRepr, codeInvalidDatetime, codeDatetimeOverflow, codeNumericOutOfRange:
			return domain.StoreInvalidValue
		case codeQueryCanceled:
			return domain.StoreTimeout
		case codeTooManyConnections, codeCannotConnectNow:
			return domain.StoreConnection
		}
		// clase 08: connection exception
		if strings.HasPrefix(pgErr.Code, "08") {
			return domain.StoreConnection
		}
		return domain.StoreUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return domain.StoreTimeout
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return domain.StoreConnection
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return domain.StoreConnection
	}
	return domain.StoreUnknown
}
