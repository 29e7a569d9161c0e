package pgrepo

import (
	"errors"
	"fmt"

	"github.com/fsdevblog/groph-settle/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode = "23505"
)

// convertErr приводит ошибку драйвера к виду, принятому в слое репозиториев: контекст операции,
// тип бизнес-ошибки и исходное сообщение.
//   - pgx.ErrNoRows превращается в domain.ErrRecordNotFound.
//   - нарушение уникальности (uniqueViolationCode) - в domain.ErrDuplicateKey.
//   - все остальное - domain.ErrUnknown с исходным сообщением.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, formatArgs...)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("[repository/%s] %w", msg, domain.ErrRecordNotFound)
	}

	errType := domain.ErrUnknown

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && isUniqueViolationErr(pgErr) {
		errType = domain.ErrDuplicateKey
	}

	return fmt.Errorf("[repository/%s] %w: %s", msg, errType, err.Error())
}

func isUniqueViolationErr(err *pgconn.PgError) bool {
	return err.Code == uniqueViolationCode
}
