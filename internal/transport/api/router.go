package api

import (
	"fmt"
	"time"

	"github.com/fsdevblog/groph-settle/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup              = "/api"
	TransactionRoute        = "/transactions/:id"
	TransactionStatusRoute  = "/transactions/:id/status"
	AccountCommissionsRoute = "/accounts/:id/commissions"
)

type RouterArgs struct {
	Logger            *logrus.Logger
	SettlementService SettlementServicer
	LedgerService     LedgerServicer
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	settlementHandler := NewSettlementHandler(args.SettlementService)
	ledgerHandler := NewLedgerHandler(args.LedgerService)

	api := r.Group(RouteGroup)

	api.POST(TransactionStatusRoute, settlementHandler.Settle)
	api.GET(TransactionRoute, ledgerHandler.Transaction)
	api.GET(AccountCommissionsRoute, ledgerHandler.Commissions)
	return r, nil
}
