package notify

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/groph-settle/internal/domain"
	"github.com/fsdevblog/groph-settle/internal/service"
	"github.com/fsdevblog/groph-settle/internal/transport/notify/client"
)

type Client interface {
	Send(ctx context.Context, payload client.Payload) error
}

type Servicer interface {
	PendingNotifications(ctx context.Context, limit uint) ([]domain.CommissionNotification, error)
	MarkDelivered(ctx context.Context, results []service.DeliveryResult) error
}
