package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/groph-settle/internal/domain"
	"github.com/fsdevblog/groph-settle/internal/repository/repoargs"
	"github.com/fsdevblog/groph-settle/pkg/uow"
)

// NotificationService выдает отправителю уведомлений outbox о выплаченных комиссиях и фиксирует результат доставки.
type NotificationService struct {
	uow              uow.UOW
	notificationRepo NotificationRepository
	maxAttempts      uint
}

func NewNotificationService(u uow.UOW) (*NotificationService, error) {
	notificationRepo, err := uow.GetRepositoryAs[NotificationRepository](
		u, uow.RepositoryName(repoargs.NotificationRepoName),
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &NotificationService{
		uow:              u,
		notificationRepo: notificationRepo,
		maxAttempts:      domain.MaxNotificationAttempts,
	}, nil
}

// PendingNotifications возвращает неотправленные уведомления, для которых не исчерпан лимит попыток.
func (n *NotificationService) PendingNotifications(
	ctx context.Context,
	limit uint,
) ([]domain.CommissionNotification, error) {
	notifications, err := n.notificationRepo.GetPending(ctx, limit, n.maxAttempts)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return notifications, nil
}

type DeliveryResult struct {
	Error          error
	NotificationID int64
}

// MarkDelivered помечает успешно доставленные уведомления отправленными, а неудачным увеличивает счетчик попыток.
// Оба обновления выполняются в одной транзакции.
func (n *NotificationService) MarkDelivered(ctx context.Context, results []DeliveryResult) error {
	sentIDs, failedIDs := splitDeliveryResults(results)
	if len(sentIDs) == 0 && len(failedIDs) == 0 {
		return nil
	}

	txErr := n.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[NotificationRepository](tx, uow.RepositoryName(repoargs.NotificationRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		if len(sentIDs) > 0 {
			if err := repo.MarkSent(c, sentIDs); err != nil {
				return err //nolint:wrapcheck
			}
		}
		if len(failedIDs) > 0 {
			if err := repo.IncrementAttempts(c, failedIDs); err != nil {
				return err //nolint:wrapcheck
			}
		}
		return nil
	})
	if txErr != nil {
		return fmt.Errorf("marking notifications delivered: %w", txErr)
	}
	return nil
}

func splitDeliveryResults(results []DeliveryResult) ([]int64, []int64) {
	var sentIDs = make([]int64, 0, len(results))
	var failedIDs = make([]int64, 0, len(results))
	for _, result := range results {
		if result.Error == nil {
			sentIDs = append(sentIDs, result.NotificationID)
		} else {
			failedIDs = append(failedIDs, result.NotificationID)
		}
	}
	return sentIDs, failedIDs
}
