package tr

import (
	"context"

	"github.com/DRSN-tech/order-service/pkg/e"
	"github.com/jackc/pgx/v5"
)

// TxFromCtx извлекает объект транзакции (pgx.Tx) из контекста.
// Репозитории, пишущие в рамках бизнес-транзакции, обязаны вызываться с таким контекстом.
func TxFromCtx(ctx context.Context) (pgx.Tx, error) {
	txAny := ctx.Value("tx")
	tx, ok := txAny.(pgx.Tx)
	if !ok {
		return nil, e.ErrTransactionNotFound
	}
	return tx, nil
}
