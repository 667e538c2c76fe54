package pgdb

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

// querier: общий набор методов pgx.Tx и *pgxpool.Pool.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// txOrPool возвращает транзакцию из контекста, а если её нет, то пул соединений.
func txOrPool(ctx context.Context, pool *pgxpool.Pool) querier {
	if tx, err := tr.TxFromCtx(ctx); err == nil {
		return tx
	}

	return pool
}

func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike экранирует спецсимволы LIKE, чтобы строка искалась как есть.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// pageOffset считает OFFSET для страницы. Номер страницы начинается с 1.
func pageOffset(page, perPage int) (int64, error) {
	if page < 1 || perPage < 1 {
		return 0, e.ErrInvalidInput
	}

	if int64(page-1) > math.MaxInt64/int64(perPage) {
		return 0, e.ErrInvalidInput
	}

	return int64(page-1) * int64(perPage), nil
}
