package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/fsdevblog/groph-settle/internal/domain"
	"github.com/fsdevblog/groph-settle/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type SettlementHandler struct {
	settlementSvs SettlementServicer
}

func NewSettlementHandler(settlementSvs SettlementServicer) *SettlementHandler {
	return &SettlementHandler{
		settlementSvs: settlementSvs,
	}
}

type SettleRequest struct {
	Status string `json:"status" binding:"required,settlement_status"`
}

type SettleResponse struct {
	Success           bool                     `json:"success"`
	TransactionID     int64                    `json:"transactionId"`
	Status            domain.TransactionStatus `json:"status"`
	ReferralProcessed bool                     `json:"referralProcessed"`
	CommissionAmount  string                   `json:"commissionAmount,omitempty"`
	Message           string                   `json:"message"`
}

// Settle POST RouteGroup + TransactionStatusRoute.
func (h *SettlementHandler) Settle(c *gin.Context) {
	id, idErr := paramID(c, "id")
	if idErr != nil {
		abortWithServiceError(c, idErr)
		return
	}

	var req SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithServiceError(c, bindingError(err))
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	result, err := h.settlementSvs.Settle(reqCtx, service.SettleArgs{
		TransactionID: id,
		Status:        req.Status,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := SettleResponse{
		Success:           true,
		TransactionID:     result.TransactionID,
		Status:            result.Status,
		ReferralProcessed: result.ReferralProcessed,
		Message:           settledMessage(result),
	}
	if result.ReferralProcessed {
		response.CommissionAmount = result.CommissionAmount.StringFixed(domain.CommissionScale)
	}
	c.JSON(http.StatusOK, response)
}

func settledMessage(result *domain.SettlementResult) string {
	msg := fmt.Sprintf("transaction #%d %s", result.TransactionID, result.Status)
	if result.ReferralNote != "" {
		msg += ": " + result.ReferralNote
	}
	return msg
}

// bindingError переводит ошибку разбора тела в ошибку урегулирования: отсутствующий статус -
// domain.ErrMissingParameter, недопустимый - domain.ErrInvalidStatus.
func bindingError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fe := range validationErrs {
			if fe.Tag() == settlementStatusTag {
				return fmt.Errorf("status `%v`: %w", fe.Value(), domain.ErrInvalidStatus)
			}
		}
	}
	return fmt.Errorf("status: %w", domain.ErrMissingParameter)
}
