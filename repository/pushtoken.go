package repository

import "context"

// PushTokenRepository keeps the notification registration data per user.
// Delivery itself happens outside this service.
type PushTokenRepository interface {
	Save(ctx context.Context, ownerID, token string) error
	Get(ctx context.Context, ownerID string) (string, error)
}
