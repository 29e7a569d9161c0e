package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/groph-settle/internal/domain"
	"github.com/fsdevblog/groph-settle/internal/service"
)

type SettlementServicer interface {
	Settle(ctx context.Context, args service.SettleArgs) (*domain.SettlementResult, error)
}

type LedgerServicer interface {
	GetTransaction(ctx context.Context, id int64) (*domain.TransactionRequest, error)
	GetCommissionsByReferrer(ctx context.Context, referrerID int64) ([]domain.CommissionRecord, error)
}
