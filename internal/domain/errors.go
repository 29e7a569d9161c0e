package domain

import (
	"errors"
	"fmt"
)

// Ошибки слоя репозиториев.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")
)

// Ошибки урегулирования. Любая из них прерывает урегулирование и откатывает транзакцию целиком.
var (
	ErrMissingParameter   = errors.New("missing parameter")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrNotFound           = errors.New("transaction not found")
	ErrAlreadySettled     = errors.New("transaction already settled")
	ErrOwnerNotFound      = errors.New("transaction owner not found")
	ErrPersistenceFailure = errors.New("persistence failure")
)

// AlreadySettledError уточняет ErrAlreadySettled текущим статусом заявки.
type AlreadySettledError struct {
	TransactionID int64
	Status        TransactionStatus
}

func NewAlreadySettledError(id int64, status TransactionStatus) error {
	return &AlreadySettledError{TransactionID: id, Status: status}
}

func (e *AlreadySettledError) Error() string {
	return fmt.Sprintf("transaction #%d is already %s", e.TransactionID, e.Status)
}

func (e *AlreadySettledError) Unwrap() error {
	return ErrAlreadySettled
}
