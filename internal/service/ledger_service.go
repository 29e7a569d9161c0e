package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/groph-settle/internal/domain"
	"github.com/fsdevblog/groph-settle/internal/repository/repoargs"
	"github.com/fsdevblog/groph-settle/pkg/uow"
)

// LedgerService чтение заявок и реферальных выплат вне транзакции урегулирования.
type LedgerService struct {
	requestRepo TransactionRequestRepository
	ledgerRepo  ReferralLedgerRepository
}

func NewLedgerService(u uow.UOW) (*LedgerService, error) {
	requestRepo, requestErr := uow.GetRepositoryAs[TransactionRequestRepository](
		u, uow.RepositoryName(repoargs.TransactionRequestRepoName),
	)
	if requestErr != nil {
		return nil, requestErr //nolint:wrapcheck
	}
	ledgerRepo, ledgerErr := uow.GetRepositoryAs[ReferralLedgerRepository](
		u, uow.RepositoryName(repoargs.ReferralLedgerRepoName),
	)
	if ledgerErr != nil {
		return nil, ledgerErr //nolint:wrapcheck
	}
	return &LedgerService{
		requestRepo: requestRepo,
		ledgerRepo:  ledgerRepo,
	}, nil
}

// GetTransaction возвращает заявку по id. Если заявки нет - domain.ErrNotFound.
func (l *LedgerService) GetTransaction(ctx context.Context, id int64) (*domain.TransactionRequest, error) {
	if id <= 0 {
		return nil, fmt.Errorf("getting transaction: id: %w", domain.ErrMissingParameter)
	}
	request, err := l.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("getting transaction: %w: #%d", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("getting transaction #%d: %w: %w", id, domain.ErrPersistenceFailure, err)
	}
	return request, nil
}

// GetCommissionsByReferrer возвращает комиссии, выплаченные рефереру, новые сначала.
func (l *LedgerService) GetCommissionsByReferrer(
	ctx context.Context,
	referrerID int64,
) ([]domain.CommissionRecord, error) {
	if referrerID <= 0 {
		return nil, fmt.Errorf("getting commissions: referrer id: %w", domain.ErrMissingParameter)
	}
	commissions, err := l.ledgerRepo.GetCommissionsByReferrer(ctx, referrerID)
	if err != nil {
		return nil, fmt.Errorf("getting commissions for referrer #%d: %w: %w", referrerID, domain.ErrPersistenceFailure, err)
	}
	return commissions, nil
}
