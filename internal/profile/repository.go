package profile

import "context"

// Repository reads stored profiles. Profiles are written by the account
// service, so there is no write path here.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
}
