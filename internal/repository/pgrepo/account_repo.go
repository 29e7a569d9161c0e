package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-settle/internal/domain"
	"github.com/fsdevblog/groph-settle/pkg/uow"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const accountColumns = `id, created_at, updated_at, email, balance, COALESCE(referrer_email, '')`

type AccountRepository struct {
	conn uow.DBTX
}

func NewAccountRepository(conn uow.DBTX) *AccountRepository {
	return &AccountRepository{conn: conn}
}

// GetOwnerInfo возвращает аккаунт владельца заявки вместе с email реферера.
// Если аккаунт не найден - domain.ErrRecordNotFound.
func (a *AccountRepository) GetOwnerInfo(ctx context.Context, accountID int64) (*domain.Account, error) {
	row := a.conn.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, accountID)
	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "getting account owner info by id %d", accountID)
	}
	return account, nil
}

// FindByEmail ищет аккаунт по email без учета регистра. Если аккаунт не найден - domain.ErrRecordNotFound.
func (a *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := a.conn.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE lower(email) = lower($1)`, email)
	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "finding account by email `%s`", email)
	}
	return account, nil
}

// CreditBalance атомарно увеличивает баланс аккаунта на delta одним запросом и возвращает новый баланс.
func (a *AccountRepository) CreditBalance(
	ctx context.Context,
	accountID int64,
	delta decimal.Decimal,
) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := a.conn.QueryRow(ctx,
		`UPDATE accounts SET balance = balance + $1, updated_at = now() WHERE id = $2 RETURNING balance`,
		delta, accountID,
	).Scan(&balance)
	if err != nil {
		return decimal.Zero, convertErr(err, "crediting balance of account %d by %s", accountID, delta)
	}
	return balance, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.CreatedAt,
		&account.UpdatedAt,
		&account.Email,
		&account.Balance,
		&account.ReferrerEmail,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &account, nil
}
