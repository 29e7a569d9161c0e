package repoargs

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type NotificationCreate struct {
	EventID       uuid.UUID
	CommissionID  int64
	ReferrerEmail string
	ReferredEmail string
	Amount        decimal.Decimal
}
