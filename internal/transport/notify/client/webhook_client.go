package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Константы минимального и максимально значения в заголовке Retry-After.
const (
	minRetryAfter = 1
	maxRetryAfter = 120
)

const defaultRetryAfter = 60 * time.Second

// Payload тело уведомления о выплаченной реферальной комиссии.
type Payload struct {
	EventID       uuid.UUID       `json:"eventId"`
	CommissionID  int64           `json:"commissionId"`
	ReferrerEmail string          `json:"referrerEmail"`
	ReferredEmail string          `json:"referredEmail"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// HTTPClient отправляет уведомления POST запросом на webhook.
type HTTPClient struct {
	webhookURL string
	httpClient *http.Client
}

func New(webhookURL string) HTTPClient {
	return HTTPClient{
		webhookURL: webhookURL,
		httpClient: http.DefaultClient,
	}
}

// Send отправляет уведомление. EventID передается в заголовке Idempotency-Key, чтобы получатель мог
// отбросить повторы.
// Успешными считаются ответы 2xx. На http.StatusTooManyRequests возвращает TooManyRequestError,
// на прочие статусы - StatusCodeError.
//
//nolint:nonamedreturns
func (c HTTPClient) Send(ctx context.Context, payload Payload) (err error) {
	body, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		return pkgerrors.Wrap(marshalErr, "marshal payload")
	}

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if reqErr != nil {
		return pkgerrors.Wrap(reqErr, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", payload.EventID.String())

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return pkgerrors.Wrap(doErr, "do request")
	}

	defer func() {
		// Дочитываем тело, чтобы соединение вернулось в пул.
		_, _ = io.Copy(io.Discard, resp.Body)
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		return NewTooManyRequestError(parseRetryAfter(resp.Header.Get("Retry-After")))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return NewStatusCodeError(resp.StatusCode)
	}
	return nil
}

func parseRetryAfter(value string) time.Duration {
	minValue := decimal.NewFromInt(minRetryAfter)
	maxValue := decimal.NewFromInt(maxRetryAfter)

	retryAfter, parseErr := decimal.NewFromString(value)
	if parseErr != nil || retryAfter.LessThan(minValue) || retryAfter.GreaterThan(maxValue) {
		return defaultRetryAfter
	}
	return time.Duration(retryAfter.IntPart()) * time.Second
}
