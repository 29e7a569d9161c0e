package api

import (
	"context"
	"net/http"
	"time"

	"github.com/fsdevblog/groph-settle/internal/domain"
	"github.com/gin-gonic/gin"
)

type LedgerHandler struct {
	ledgerSvs LedgerServicer
}

func NewLedgerHandler(ledgerSvs LedgerServicer) *LedgerHandler {
	return &LedgerHandler{
		ledgerSvs: ledgerSvs,
	}
}

type TransactionResponse struct {
	ID        int64                    `json:"id"`
	CreatedAt time.Time                `json:"createdAt"`
	UpdatedAt time.Time                `json:"updatedAt"`
	Kind      domain.TransactionKind   `json:"kind"`
	AccountID int64                    `json:"accountId"`
	Amount    string                   `json:"amount"`
	Status    domain.TransactionStatus `json:"status"`
}

type CommissionResponse struct {
	ID            int64                   `json:"id"`
	CreatedAt     time.Time               `json:"createdAt"`
	ReferredID    int64                   `json:"referredId"`
	TransactionID int64                   `json:"transactionId"`
	Amount        string                  `json:"amount"`
	Status        domain.CommissionStatus `json:"status"`
	Description   string                  `json:"description"`
}

// Transaction GET RouteGroup + TransactionRoute.
func (h *LedgerHandler) Transaction(c *gin.Context) {
	id, idErr := paramID(c, "id")
	if idErr != nil {
		abortWithServiceError(c, idErr)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	request, err := h.ledgerSvs.GetTransaction(reqCtx, id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{
		ID:        request.ID,
		CreatedAt: request.CreatedAt,
		UpdatedAt: request.UpdatedAt,
		Kind:      request.Kind,
		AccountID: request.AccountID,
		Amount:    request.Amount.StringFixed(domain.CommissionScale),
		Status:    request.Status,
	})
}

// Commissions GET RouteGroup + AccountCommissionsRoute.
func (h *LedgerHandler) Commissions(c *gin.Context) {
	id, idErr := paramID(c, "id")
	if idErr != nil {
		abortWithServiceError(c, idErr)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	commissions, err := h.ledgerSvs.GetCommissionsByReferrer(reqCtx, id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	if len(commissions) == 0 {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}

	var response = make([]CommissionResponse, len(commissions))
	for i, commission := range commissions {
		response[i] = CommissionResponse{
			ID:            commission.ID,
			CreatedAt:     commission.CreatedAt,
			ReferredID:    commission.ReferredID,
			TransactionID: commission.TransactionID,
			Amount:        commission.Amount.StringFixed(domain.CommissionScale),
			Status:        commission.Status,
			Description:   commission.Description,
		}
	}
	c.JSON(http.StatusOK, response)
}
