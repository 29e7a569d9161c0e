package domain

import (
	"github.com/shopspring/decimal"
)

// ReferralCommissionRate доля суммы одобренной заявки, выплачиваемая рефереру.
var ReferralCommissionRate = decimal.RequireFromString("0.10")

// CommissionScale количество знаков после запятой у комиссии (kobo).
const CommissionScale int32 = 2

// MaxNotificationAttempts после стольких неудачных попыток уведомление больше не отправляется.
const MaxNotificationAttempts uint = 10

type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "Pending"
	TransactionStatusApproved TransactionStatus = "Approved"
	TransactionStatusDeclined TransactionStatus = "Declined"
)

// IsTerminal сообщает, что заявка уже урегулирована и повторно не обрабатывается.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusApproved || s == TransactionStatusDeclined
}

// ParseTargetStatus разбирает целевой статус урегулирования. Допустимы только "Approved" и "Declined"
// с учетом регистра. Пустая строка - ErrMissingParameter, все остальное - ErrInvalidStatus.
func ParseTargetStatus(s string) (TransactionStatus, error) {
	switch TransactionStatus(s) {
	case TransactionStatusApproved, TransactionStatusDeclined:
		return TransactionStatus(s), nil
	case "":
		return "", ErrMissingParameter
	default:
		return "", ErrInvalidStatus
	}
}

type TransactionKind string

const (
	TransactionKindDeposit          TransactionKind = "deposit"
	TransactionKindCryptoExchange   TransactionKind = "crypto_exchange"
	TransactionKindGiftCardExchange TransactionKind = "giftcard_exchange"
)

type CommissionStatus string

const (
	CommissionStatusPaid   CommissionStatus = "paid"
	CommissionStatusFailed CommissionStatus = "failed"
)

type ActivityType string

const (
	ActivityCommissionPaid   ActivityType = "commission_paid"
	ActivityCommissionFailed ActivityType = "commission_failed"
)

// ReferralFailureReason причина, по которой комиссия не была выплачена. Не является ошибкой урегулирования.
type ReferralFailureReason string

const (
	ReferralReasonEmptyEmail     ReferralFailureReason = "referrer email is empty"
	ReferralReasonMalformedEmail ReferralFailureReason = "referrer email is malformed"
	ReferralReasonSelfReferral   ReferralFailureReason = "self-referral is not allowed"
	ReferralReasonNotFound       ReferralFailureReason = "referrer email not found in system"
)

// SettlementResult итог урегулирования заявки. CommissionAmount носит информационный характер.
type SettlementResult struct {
	TransactionID     int64
	Status            TransactionStatus
	ReferralProcessed bool
	CommissionAmount  decimal.Decimal
	ReferralNote      string
}

// CommissionFor считает комиссию реферера от суммы заявки.
func CommissionFor(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(ReferralCommissionRate).Round(CommissionScale)
}
