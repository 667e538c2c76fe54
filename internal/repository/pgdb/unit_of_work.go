package pgdb

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

type uowKey struct{}

// UnitOfWork открывает транзакцию pgx и передаёт её через контекст.
// Собственного состояния не хранит, поэтому один экземпляр безопасно использовать конкурентно.
type UnitOfWork struct {
	pool *pgxpool.Pool
}

func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, u.pool)
	if err != nil {
		return ctx, e.Wrap(whereami.WhereAmI(), err)
	}

	pgxTx, ok := tx.Transaction().(pgx.Tx)
	if !ok {
		_ = tx.Rollback(ctx)
		return ctx, fmt.Errorf("%s: unexpected transaction type %T", whereami.WhereAmI(), tx.Transaction())
	}

	ctx = tr.WithTx(ctx, pgxTx)
	return context.WithValue(ctx, uowKey{}, tx), nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, err := txFromUoW(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Rollback откатывает транзакцию, если она ещё активна. Повторный вызов безопасен.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, err := txFromUoW(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if !tx.IsActive() {
		return nil
	}

	if err := tx.Rollback(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func txFromUoW(ctx context.Context) (*transaction.Transaction, error) {
	tx, ok := ctx.Value(uowKey{}).(*transaction.Transaction)
	if !ok {
		return nil, e.ErrTransactionNotFound
	}

	return tx, nil
}
