package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fsdevblog/groph-settle/internal/domain"
	"github.com/gin-gonic/gin"
)

// statusForError сопоставляет ошибку сервисного слоя http статусу.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingParameter):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadySettled), errors.Is(err, domain.ErrOwnerNotFound):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// abortWithServiceError прерывает запрос. Текст ошибок клиента отдается как есть, детали 500 скрываются
// middlewares.Errors.
func abortWithServiceError(c *gin.Context, err error) {
	status := statusForError(err)
	errType := gin.ErrorTypePublic
	if status == http.StatusInternalServerError {
		errType = gin.ErrorTypePrivate
	}
	c.Status(status)
	_ = c.Error(err).SetType(errType)
	c.Abort()
}

// paramID читает положительный числовой id из пути. Иначе - domain.ErrMissingParameter.
func paramID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("path parameter `%s`: %w", name, domain.ErrMissingParameter)
	}
	return id, nil
}
