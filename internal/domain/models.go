package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account финансовая учетная запись пользователя платформы. ReferrerEmail - email пригласившего
// пользователя, внешним ключом не является.
type Account struct {
	ID            int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Email         string
	Balance       decimal.Decimal
	ReferrerEmail string
}

// TransactionRequest заявка на зачисление naira: депозит, обмен криптовалюты или обмен подарочной карты.
type TransactionRequest struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Kind      TransactionKind
	AccountID int64
	Amount    decimal.Decimal
	Status    TransactionStatus
}

type CommissionRecord struct {
	ID            int64
	CreatedAt     time.Time
	ReferrerID    int64
	ReferredID    int64
	TransactionID int64
	Amount        decimal.Decimal
	Status        CommissionStatus
	Description   string
}

// FailedReferral запись для ручной сверки, когда реферальный email не удалось сопоставить с аккаунтом.
type FailedReferral struct {
	ID            int64
	CreatedAt     time.Time
	ReferredID    int64
	ReferredEmail string
	ReferrerEmail string
	Amount        decimal.Decimal
	TransactionID int64
	Error         string
	Resolved      bool
}

type ReferralActivity struct {
	ID            int64
	CreatedAt     time.Time
	ReferrerID    *int64
	ReferredID    int64
	TransactionID int64
	Amount        decimal.Decimal
	ActivityType  ActivityType
	Description   string
}

// CommissionNotification запись outbox'а об уведомлении реферера о выплаченной комиссии.
type CommissionNotification struct {
	ID            int64
	CreatedAt     time.Time
	EventID       uuid.UUID
	CommissionID  int64
	ReferrerEmail string
	ReferredEmail string
	Amount        decimal.Decimal
	Attempts      uint
	SentAt        *time.Time
}
