package service

import (
	"fmt"

	"github.com/fsdevblog/groph-settle/pkg/uow"
	"github.com/sirupsen/logrus"
)

type AppServices struct {
	SettlementService   *SettlementService
	LedgerService       *LedgerService
	NotificationService *NotificationService
}

func Factory(unitOfWork uow.UOW, l *logrus.Logger) (*AppServices, error) {
	ledgerService, ledgerServiceErr := NewLedgerService(unitOfWork)
	if ledgerServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", ledgerServiceErr.Error())
	}

	notificationService, notificationServiceErr := NewNotificationService(unitOfWork)
	if notificationServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", notificationServiceErr.Error())
	}

	return &AppServices{
		SettlementService:   NewSettlementService(unitOfWork, l),
		LedgerService:       ledgerService,
		NotificationService: notificationService,
	}, nil
}
