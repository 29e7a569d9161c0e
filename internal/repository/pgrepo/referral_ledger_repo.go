package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-settle/internal/domain"
	"github.com/fsdevblog/groph-settle/internal/repository/repoargs"
	"github.com/fsdevblog/groph-settle/pkg/uow"
	"github.com/jackc/pgx/v5"
)

// ReferralLedgerRepository пишет append-only журнал реферальных выплат: комиссии, активность
// и неудачные попытки сопоставления реферера.
type ReferralLedgerRepository struct {
	conn uow.DBTX
}

func NewReferralLedgerRepository(conn uow.DBTX) *ReferralLedgerRepository {
	return &ReferralLedgerRepository{conn: conn}
}

// RecordCommission создает запись о комиссии. На transaction_id стоит уникальный индекс, поэтому
// повторная выплата по той же заявке вернет domain.ErrDuplicateKey.
func (r *ReferralLedgerRepository) RecordCommission(
	ctx context.Context,
	args repoargs.CommissionCreate,
) (*domain.CommissionRecord, error) {
	row := r.conn.QueryRow(ctx, `
		INSERT INTO referral_commissions (referrer_id, referred_id, transaction_id, amount, status, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, referrer_id, referred_id, transaction_id, amount, status, description`,
		args.ReferrerID, args.ReferredID, args.TransactionID, args.Amount, string(args.Status), args.Description,
	)
	record, err := scanCommission(row)
	if err != nil {
		return nil, convertErr(err, "recording commission for transaction %d", args.TransactionID)
	}
	return record, nil
}

func (r *ReferralLedgerRepository) LogActivity(ctx context.Context, args repoargs.ReferralActivityCreate) error {
	_, err := r.conn.Exec(ctx, `
		INSERT INTO referral_activity_log (referrer_id, referred_id, transaction_id, amount, activity_type, description)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		args.ReferrerID, args.ReferredID, args.TransactionID, args.Amount, string(args.ActivityType), args.Description,
	)
	if err != nil {
		return convertErr(err, "logging referral activity for transaction %d", args.TransactionID)
	}
	return nil
}

func (r *ReferralLedgerRepository) RecordFailedReferral(
	ctx context.Context,
	args repoargs.FailedReferralCreate,
) error {
	_, err := r.conn.Exec(ctx, `
		INSERT INTO failed_referrals (referred_id, referred_email, referrer_email, amount, transaction_id, error)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		args.ReferredID, args.ReferredEmail, args.ReferrerEmail, args.Amount, args.TransactionID, args.Error,
	)
	if err != nil {
		return convertErr(err, "recording failed referral for transaction %d", args.TransactionID)
	}
	return nil
}

// GetCommissionsByReferrer возвращает комиссии реферера, отсортированные по дате создания по убыванию.
func (r *ReferralLedgerRepository) GetCommissionsByReferrer(
	ctx context.Context,
	referrerID int64,
) ([]domain.CommissionRecord, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT id, created_at, referrer_id, referred_id, transaction_id, amount, status, description
		FROM referral_commissions
		WHERE referrer_id = $1
		ORDER BY created_at DESC, id DESC`, referrerID)
	if err != nil {
		return nil, convertErr(err, "getting commissions by referrer %d", referrerID)
	}
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CommissionRecord, error) {
		record, scanErr := scanCommission(row)
		if scanErr != nil {
			return domain.CommissionRecord{}, scanErr
		}
		return *record, nil
	})
	if err != nil {
		return nil, convertErr(err, "scanning commissions of referrer %d", referrerID)
	}
	return records, nil
}

func scanCommission(row pgx.Row) (*domain.CommissionRecord, error) {
	var (
		record domain.CommissionRecord
		status string
	)
	if err := row.Scan(
		&record.ID,
		&record.CreatedAt,
		&record.ReferrerID,
		&record.ReferredID,
		&record.TransactionID,
		&record.Amount,
		&status,
		&record.Description,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	record.Status = domain.CommissionStatus(status)
	return &record, nil
}
