// Package uow реализует паттерн Unit of Work поверх пула соединений pgx. Репозитории регистрируются
// фабриками по имени и создаются либо поверх пула, либо поверх открытой транзакции.
package uow

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RepositoryName string
type Repository any
type RepositoryFactory func(DBTX) Repository

// TxBeginner часть *pgxpool.Pool, необходимая для открытия транзакций.
type TxBeginner interface {
	DBTX
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type UnitOfWork struct {
	conn         TxBeginner
	txOptions    pgx.TxOptions
	repositories map[RepositoryName]RepositoryFactory
}

func NewUnitOfWork(conn *pgxpool.Pool) *UnitOfWork {
	return newUnitOfWork(conn)
}

func newUnitOfWork(conn TxBeginner) *UnitOfWork {
	return &UnitOfWork{
		conn: conn,
		// Денежные операции полагаются на SELECT ... FOR UPDATE и атомарный инкремент баланса,
		// read committed этого достаточно.
		txOptions:    pgx.TxOptions{IsoLevel: pgx.ReadCommitted},
		repositories: make(map[RepositoryName]RepositoryFactory),
	}
}

// WithIsoLevel переопределяет уровень изоляции транзакций, открываемых в Do.
func (u *UnitOfWork) WithIsoLevel(level pgx.TxIsoLevel) *UnitOfWork {
	u.txOptions.IsoLevel = level
	return u
}

// Register регистрирует фабрику репозитория под именем name. Повторная регистрация того же имени
// возвращает ErrRepositoryAlreadyRegistered, nil фабрика - ErrNilRepositoryFactory.
func (u *UnitOfWork) Register(name RepositoryName, factory RepositoryFactory) error {
	if factory == nil {
		return ErrNilRepositoryFactory
	}
	if _, ok := u.repositories[name]; ok {
		return ErrRepositoryAlreadyRegistered
	}
	u.repositories[name] = factory
	return nil
}

// Do выполняет fn внутри одной транзакции. Если fn вернула ошибку, транзакция откатывается целиком
// и ошибка возвращается без изменений. Ошибка отката присоединяется к исходной через errors.Join.
func (u *UnitOfWork) Do(ctx context.Context, fn func(context.Context, TX) error) (err error) {
	tx, txErr := u.conn.BeginTx(ctx, u.txOptions)
	if txErr != nil {
		return txErr //nolint:wrapcheck
	}
	defer func() {
		// после успешного Commit вернется pgx.ErrTxClosed, его игнорируем.
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			err = errors.Join(err, rollbackErr)
		}
	}()

	if fnErr := fn(ctx, NewTransaction(tx, u.repositories)); fnErr != nil {
		return fnErr
	}
	return tx.Commit(ctx) //nolint:wrapcheck
}

// GetRepository возвращает репозиторий, работающий вне транзакции, или ErrRepositoryNotRegistered.
func (u *UnitOfWork) GetRepository(name RepositoryName) (Repository, error) {
	if repoFactory, ok := u.repositories[name]; ok {
		return repoFactory(u.conn), nil
	}
	return nil, ErrRepositoryNotRegistered
}

// GetRepositoryAs возвращает репозиторий по имени name, приведенный к типу T. Возвращает ошибки
// ErrRepositoryNotRegistered и ErrInvalidRepositoryType.
func GetRepositoryAs[T any](u UOW, name RepositoryName) (T, error) {
	var res T
	repo, err := u.GetRepository(name)
	if err != nil {
		return res, err //nolint:wrapcheck
	}
	r, ok := repo.(T)
	if !ok {
		return res, ErrInvalidRepositoryType
	}
	return r, nil
}
