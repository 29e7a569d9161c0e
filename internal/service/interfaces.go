package service

import (
	"context"

	"github.com/fsdevblog/groph-settle/internal/domain"
	"github.com/fsdevblog/groph-settle/internal/repository/repoargs"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type AccountRepository interface {
	GetOwnerInfo(ctx context.Context, accountID int64) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	CreditBalance(ctx context.Context, accountID int64, delta decimal.Decimal) (decimal.Decimal, error)
}

type TransactionRequestRepository interface {
	GetForUpdate(ctx context.Context, id int64) (*domain.TransactionRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.TransactionRequest, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TransactionStatus) error
}

type ReferralLedgerRepository interface {
	RecordCommission(ctx context.Context, args repoargs.CommissionCreate) (*domain.CommissionRecord, error)
	LogActivity(ctx context.Context, args repoargs.ReferralActivityCreate) error
	RecordFailedReferral(ctx context.Context, args repoargs.FailedReferralCreate) error
	GetCommissionsByReferrer(ctx context.Context, referrerID int64) ([]domain.CommissionRecord, error)
}

type NotificationRepository interface {
	Enqueue(ctx context.Context, args repoargs.NotificationCreate) error
	GetPending(ctx context.Context, limit uint, maxAttempts uint) ([]domain.CommissionNotification, error)
	MarkSent(ctx context.Context, ids []int64) error
	IncrementAttempts(ctx context.Context, ids []int64) error
}
