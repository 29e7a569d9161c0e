package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fsdevblog/groph-settle/internal/domain"
	"github.com/fsdevblog/groph-settle/internal/repository/repoargs"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// referralResolution результат сопоставления реферера. Ровно одно из полей заполнено.
type referralResolution struct {
	referrer *domain.Account
	reason   domain.ReferralFailureReason
}

// resolveReferrer находит аккаунт реферера по email, сохраненному у владельца заявки.
// Пустой, некорректный, собственный или неизвестный email - это не ошибка, а причина отказа в выплате.
// Ошибка возвращается только при сбое хранилища.
func (s *SettlementService) resolveReferrer(
	ctx context.Context,
	accounts AccountRepository,
	owner *domain.Account,
) (referralResolution, error) {
	email := strings.TrimSpace(owner.ReferrerEmail)

	switch {
	case email == "":
		return referralResolution{reason: domain.ReferralReasonEmptyEmail}, nil
	case s.validate.Var(email, "email") != nil:
		return referralResolution{reason: domain.ReferralReasonMalformedEmail}, nil
	case strings.EqualFold(email, strings.TrimSpace(owner.Email)):
		return referralResolution{reason: domain.ReferralReasonSelfReferral}, nil
	}

	referrer, err := accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return referralResolution{reason: domain.ReferralReasonNotFound}, nil
		}
		return referralResolution{}, err //nolint:wrapcheck
	}
	if referrer.ID == owner.ID {
		return referralResolution{reason: domain.ReferralReasonSelfReferral}, nil
	}
	return referralResolution{referrer: referrer}, nil
}

// processReferral выплачивает комиссию рефереру владельца одобренной заявки либо фиксирует неудачную
// попытку в failed_referrals. В обоих случаях пишется строка в журнал активности.
func (s *SettlementService) processReferral(
	ctx context.Context,
	repos settlementRepos,
	request *domain.TransactionRequest,
	owner *domain.Account,
	result *domain.SettlementResult,
) error {
	resolution, resolveErr := s.resolveReferrer(ctx, repos.accounts, owner)
	if resolveErr != nil {
		return resolveErr
	}

	commission := domain.CommissionFor(request.Amount)

	if resolution.referrer == nil {
		return s.recordReferralFailure(ctx, repos, request, owner, commission, resolution.reason, result)
	}
	return s.payCommission(ctx, repos, request, owner, resolution.referrer, commission, result)
}

func (s *SettlementService) payCommission(
	ctx context.Context,
	repos settlementRepos,
	request *domain.TransactionRequest,
	owner *domain.Account,
	referrer *domain.Account,
	commission decimal.Decimal,
	result *domain.SettlementResult,
) error {
	if _, err := repos.accounts.CreditBalance(ctx, referrer.ID, commission); err != nil {
		return err //nolint:wrapcheck
	}

	description := fmt.Sprintf("referral commission for %s #%d", request.Kind, request.ID)
	record, recordErr := repos.ledger.RecordCommission(ctx, repoargs.CommissionCreate{
		ReferrerID:    referrer.ID,
		ReferredID:    owner.ID,
		TransactionID: request.ID,
		Amount:        commission,
		Status:        domain.CommissionStatusPaid,
		Description:   description,
	})
	if recordErr != nil {
		return recordErr //nolint:wrapcheck
	}

	if err := repos.ledger.LogActivity(ctx, repoargs.ReferralActivityCreate{
		ReferrerID:    &referrer.ID,
		ReferredID:    owner.ID,
		TransactionID: request.ID,
		Amount:        commission,
		ActivityType:  domain.ActivityCommissionPaid,
		Description:   description,
	}); err != nil {
		return err //nolint:wrapcheck
	}

	if err := repos.notifications.Enqueue(ctx, repoargs.NotificationCreate{
		EventID:       uuid.New(),
		CommissionID:  record.ID,
		ReferrerEmail: referrer.Email,
		ReferredEmail: owner.Email,
		Amount:        commission,
	}); err != nil {
		return err //nolint:wrapcheck
	}

	result.ReferralProcessed = true
	result.CommissionAmount = commission
	result.ReferralNote = fmt.Sprintf("commission of %s paid to referrer", commission.StringFixed(domain.CommissionScale))
	return nil
}

func (s *SettlementService) recordReferralFailure(
	ctx context.Context,
	repos settlementRepos,
	request *domain.TransactionRequest,
	owner *domain.Account,
	commission decimal.Decimal,
	reason domain.ReferralFailureReason,
	result *domain.SettlementResult,
) error {
	s.l.WithFields(logrus.Fields{
		"transactionID": request.ID,
		"accountID":     owner.ID,
		"referrerEmail": owner.ReferrerEmail,
	}).Warnf("referral commission not paid: %s", reason)

	if err := repos.ledger.RecordFailedReferral(ctx, repoargs.FailedReferralCreate{
		ReferredID:    owner.ID,
		ReferredEmail: owner.Email,
		ReferrerEmail: strings.TrimSpace(owner.ReferrerEmail),
		Amount:        commission,
		TransactionID: request.ID,
		Error:         string(reason),
	}); err != nil {
		return err //nolint:wrapcheck
	}

	if err := repos.ledger.LogActivity(ctx, repoargs.ReferralActivityCreate{
		ReferredID:    owner.ID,
		TransactionID: request.ID,
		Amount:        commission,
		ActivityType:  domain.ActivityCommissionFailed,
		Description:   string(reason),
	}); err != nil {
		return err //nolint:wrapcheck
	}

	result.ReferralNote = string(reason)
	return nil
}
