package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-settle/internal/domain"
	"github.com/fsdevblog/groph-settle/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const transactionRequestColumns = `id, created_at, updated_at, kind, account_id, amount, status`

type TransactionRequestRepository struct {
	conn uow.DBTX
}

func NewTransactionRequestRepository(conn uow.DBTX) *TransactionRequestRepository {
	return &TransactionRequestRepository{conn: conn}
}

// GetForUpdate читает заявку с блокировкой строки до конца транзакции. Параллельное урегулирование той же
// заявки будет ждать на этой блокировке и увидит уже обновленный статус.
func (t *TransactionRequestRepository) GetForUpdate(
	ctx context.Context,
	id int64,
) (*domain.TransactionRequest, error) {
	row := t.conn.QueryRow(ctx,
		`SELECT `+transactionRequestColumns+` FROM transaction_requests WHERE id = $1 FOR UPDATE`, id)
	request, err := scanTransactionRequest(row)
	if err != nil {
		return nil, convertErr(err, "getting transaction request %d for update", id)
	}
	return request, nil
}

func (t *TransactionRequestRepository) GetByID(ctx context.Context, id int64) (*domain.TransactionRequest, error) {
	row := t.conn.QueryRow(ctx, `SELECT `+transactionRequestColumns+` FROM transaction_requests WHERE id = $1`, id)
	request, err := scanTransactionRequest(row)
	if err != nil {
		return nil, convertErr(err, "getting transaction request %d", id)
	}
	return request, nil
}

// UpdateStatus меняет статус заявки. Если заявки нет - domain.ErrRecordNotFound.
func (t *TransactionRequestRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	status domain.TransactionStatus,
) error {
	tag, err := t.conn.Exec(ctx,
		`UPDATE transaction_requests SET status = $1, updated_at = now() WHERE id = $2`, string(status), id)
	if err != nil {
		return convertErr(err, "updating status of transaction request %d to %s", id, status)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "updating status of transaction request %d to %s", id, status)
	}
	return nil
}

func scanTransactionRequest(row pgx.Row) (*domain.TransactionRequest, error) {
	var (
		request domain.TransactionRequest
		kind    string
		status  string
	)
	if err := row.Scan(
		&request.ID,
		&request.CreatedAt,
		&request.UpdatedAt,
		&kind,
		&request.AccountID,
		&request.Amount,
		&status,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	request.Kind = domain.TransactionKind(kind)
	request.Status = domain.TransactionStatus(status)
	return &request, nil
}
