package notify

import "errors"

var (
	ErrNoNotifications = errors.New("no pending notifications")
	ErrDeliveryFailed  = errors.New("notification delivery failed")
)
