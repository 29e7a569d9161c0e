package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-settle/internal/domain"
	"github.com/fsdevblog/groph-settle/internal/repository/repoargs"
	"github.com/fsdevblog/groph-settle/pkg/uow"
	"github.com/jackc/pgx/v5"
)

// NotificationRepository outbox уведомлений о выплаченных комиссиях.
type NotificationRepository struct {
	conn uow.DBTX
}

func NewNotificationRepository(conn uow.DBTX) *NotificationRepository {
	return &NotificationRepository{conn: conn}
}

func (n *NotificationRepository) Enqueue(ctx context.Context, args repoargs.NotificationCreate) error {
	_, err := n.conn.Exec(ctx, `
		INSERT INTO commission_notifications (event_id, commission_id, referrer_email, referred_email, amount)
		VALUES ($1, $2, $3, $4, $5)`,
		args.EventID, args.CommissionID, args.ReferrerEmail, args.ReferredEmail, args.Amount,
	)
	if err != nil {
		return convertErr(err, "enqueueing notification for commission %d", args.CommissionID)
	}
	return nil
}

// GetPending возвращает не более limit неотправленных уведомлений, у которых число попыток меньше maxAttempts.
// Сначала самые старые.
func (n *NotificationRepository) GetPending(
	ctx context.Context,
	limit uint,
	maxAttempts uint,
) ([]domain.CommissionNotification, error) {
	safeLimit, limitErr := safeConvertUintToInt32(limit)
	if limitErr != nil {
		return nil, convertErr(limitErr, "converting limit to int32")
	}
	safeAttempts, attemptsErr := safeConvertUintToInt32(maxAttempts)
	if attemptsErr != nil {
		return nil, convertErr(attemptsErr, "converting max attempts to int32")
	}

	rows, err := n.conn.Query(ctx, `
		SELECT id, created_at, event_id, commission_id, referrer_email, referred_email, amount, attempts, sent_at
		FROM commission_notifications
		WHERE sent_at IS NULL AND attempts < $1
		ORDER BY id
		LIMIT $2`, safeAttempts, safeLimit)
	if err != nil {
		return nil, convertErr(err, "getting pending notifications")
	}

	notifications, err := pgx.CollectRows(rows, scanNotification)
	if err != nil {
		return nil, convertErr(err, "scanning pending notifications")
	}
	return notifications, nil
}

func (n *NotificationRepository) MarkSent(ctx context.Context, ids []int64) error {
	if _, err := n.conn.Exec(ctx,
		`UPDATE commission_notifications SET sent_at = now(), attempts = attempts + 1 WHERE id = ANY($1)`,
		ids,
	); err != nil {
		return convertErr(err, "marking notifications `%v` as sent", ids)
	}
	return nil
}

func (n *NotificationRepository) IncrementAttempts(ctx context.Context, ids []int64) error {
	if _, err := n.conn.Exec(ctx,
		`UPDATE commission_notifications SET attempts = attempts + 1 WHERE id = ANY($1)`,
		ids,
	); err != nil {
		return convertErr(err, "incrementing attempts for notifications `%v`", ids)
	}
	return nil
}

func scanNotification(row pgx.CollectableRow) (domain.CommissionNotification, error) {
	var (
		notification domain.CommissionNotification
		attempts     int32
	)
	err := row.Scan(
		&notification.ID,
		&notification.CreatedAt,
		&notification.EventID,
		&notification.CommissionID,
		&notification.ReferrerEmail,
		&notification.ReferredEmail,
		&notification.Amount,
		&attempts,
		&notification.SentAt,
	)
	if err != nil {
		return notification, err //nolint:wrapcheck
	}
	if attempts > 0 {
		notification.Attempts = uint(attempts)
	}
	return notification, nil
}
