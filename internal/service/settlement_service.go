package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/groph-settle/internal/domain"
	"github.com/fsdevblog/groph-settle/internal/repository/repoargs"
	"github.com/fsdevblog/groph-settle/pkg/uow"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// SettlementService переводит заявку в конечный статус и при одобрении зачисляет сумму владельцу
// и выплачивает комиссию рефереру. Все изменения выполняются в одной транзакции.
type SettlementService struct {
	uow      uow.UOW
	validate *validator.Validate
	l        *logrus.Entry
}

func NewSettlementService(u uow.UOW, l *logrus.Logger) *SettlementService {
	return &SettlementService{
		uow:      u,
		validate: validator.New(),
		l: l.WithFields(logrus.Fields{
			"component": "service",
			"module":    "settlement",
		}),
	}
}

type SettleArgs struct {
	TransactionID int64
	Status        string
}

// settlementRepos репозитории, полученные из одной транзакции uow.
type settlementRepos struct {
	requests      TransactionRequestRepository
	accounts      AccountRepository
	ledger        ReferralLedgerRepository
	notifications NotificationRepository
}

// Settle урегулирует заявку args.TransactionID, переводя её в статус args.Status.
//
// До обращения к БД проверяет аргументы: отсутствующий id или статус - domain.ErrMissingParameter,
// статус отличный от Approved/Declined - domain.ErrInvalidStatus.
//
// Алгоритм работы (внутри одной транзакции):
//  1. Блокирует заявку и проверяет, что она в статусе Pending (иначе domain.ErrAlreadySettled).
//  2. Загружает владельца заявки и email его реферера.
//  3. Меняет статус заявки. Для Declined на этом все.
//  4. Для Approved зачисляет сумму владельцу и проводит реферальную выплату (см. processReferral).
//
// Любая ошибка откатывает транзакцию целиком. Ошибки хранилища возвращаются как domain.ErrPersistenceFailure.
func (s *SettlementService) Settle(ctx context.Context, args SettleArgs) (*domain.SettlementResult, error) {
	if args.TransactionID <= 0 {
		return nil, fmt.Errorf("settling transaction: transaction id: %w", domain.ErrMissingParameter)
	}
	target, statusErr := domain.ParseTargetStatus(args.Status)
	if statusErr != nil {
		return nil, fmt.Errorf("settling transaction %d: status `%s`: %w", args.TransactionID, args.Status, statusErr)
	}

	l := s.l.WithFields(logrus.Fields{
		"transactionID": args.TransactionID,
		"status":        target,
	})

	var result *domain.SettlementResult
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repos, reposErr := settlementReposFromTX(tx)
		if reposErr != nil {
			return reposErr
		}
		var settleErr error
		result, settleErr = s.settle(c, repos, args.TransactionID, target)
		return settleErr
	})

	if txErr != nil {
		txErr = classifySettlementErr(txErr)
		if errors.Is(txErr, domain.ErrPersistenceFailure) {
			l.WithError(txErr).Error("settlement rolled back")
		} else {
			l.WithError(txErr).Warn("settlement rejected")
		}
		return nil, fmt.Errorf("settling transaction %d: %w", args.TransactionID, txErr)
	}

	l.WithFields(logrus.Fields{
		"referralProcessed": result.ReferralProcessed,
		"commission":        result.CommissionAmount.StringFixed(domain.CommissionScale),
	}).Info("transaction settled")
	return result, nil
}

func (s *SettlementService) settle(
	ctx context.Context,
	repos settlementRepos,
	id int64,
	target domain.TransactionStatus,
) (*domain.SettlementResult, error) {
	request, reqErr := repos.requests.GetForUpdate(ctx, id)
	if reqErr != nil {
		if errors.Is(reqErr, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: #%d", domain.ErrNotFound, id)
		}
		return nil, reqErr
	}
	if request.Status != domain.TransactionStatusPending {
		return nil, domain.NewAlreadySettledError(id, request.Status)
	}

	owner, ownerErr := repos.accounts.GetOwnerInfo(ctx, request.AccountID)
	if ownerErr != nil {
		if errors.Is(ownerErr, domain.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: account #%d", domain.ErrOwnerNotFound, request.AccountID)
		}
		return nil, ownerErr
	}

	if err := repos.requests.UpdateStatus(ctx, id, target); err != nil {
		return nil, err //nolint:wrapcheck
	}

	result := &domain.SettlementResult{
		TransactionID: id,
		Status:        target,
	}
	if target == domain.TransactionStatusDeclined {
		return result, nil
	}

	if _, err := repos.accounts.CreditBalance(ctx, owner.ID, request.Amount); err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err := s.processReferral(ctx, repos, request, owner, result); err != nil {
		return nil, err
	}
	return result, nil
}

// classifySettlementErr оставляет ошибки урегулирования как есть, а все прочие (ошибки репозиториев,
// commit, rollback) помечает как domain.ErrPersistenceFailure.
func classifySettlementErr(err error) error {
	for _, known := range []error{
		domain.ErrMissingParameter,
		domain.ErrInvalidStatus,
		domain.ErrNotFound,
		domain.ErrAlreadySettled,
		domain.ErrOwnerNotFound,
		domain.ErrPersistenceFailure,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrPersistenceFailure, err)
}

func settlementReposFromTX(tx uow.TX) (settlementRepos, error) {
	var repos settlementRepos
	var err error

	if repos.requests, err = uow.GetAs[TransactionRequestRepository](
		tx, uow.RepositoryName(repoargs.TransactionRequestRepoName),
	); err != nil {
		return repos, err //nolint:wrapcheck
	}
	if repos.accounts, err = uow.GetAs[AccountRepository](
		tx, uow.RepositoryName(repoargs.AccountRepoName),
	); err != nil {
		return repos, err //nolint:wrapcheck
	}
	if repos.ledger, err = uow.GetAs[ReferralLedgerRepository](
		tx, uow.RepositoryName(repoargs.ReferralLedgerRepoName),
	); err != nil {
		return repos, err //nolint:wrapcheck
	}
	if repos.notifications, err = uow.GetAs[NotificationRepository](
		tx, uow.RepositoryName(repoargs.NotificationRepoName),
	); err != nil {
		return repos, err //nolint:wrapcheck
	}
	return repos, nil
}
