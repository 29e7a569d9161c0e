package repoargs

import (
	"github.com/fsdevblog/groph-settle/internal/domain"
	"github.com/shopspring/decimal"
)

type CommissionCreate struct {
	ReferrerID    int64
	ReferredID    int64
	TransactionID int64
	Amount        decimal.Decimal
	Status        domain.CommissionStatus
	Description   string
}

// ReferralActivityCreate ReferrerID равен nil, если реферера определить не удалось.
type ReferralActivityCreate struct {
	ReferrerID    *int64
	ReferredID    int64
	TransactionID int64
	Amount        decimal.Decimal
	ActivityType  domain.ActivityType
	Description   string
}

type FailedReferralCreate struct {
	ReferredID    int64
	ReferredEmail string
	ReferrerEmail string
	Amount        decimal.Decimal
	TransactionID int64
	Error         string
}
