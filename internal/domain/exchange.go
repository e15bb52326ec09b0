package domain

import "time"

// Exchange is the persisted record of one accepted chat request.
type Exchange struct {
	ID          string
	CreatedAt   time.Time
	Provider    Provider
	Model       string
	AllowSearch bool
	Query       string
	Response    string
	ErrorCode   string
	TTL         int64
}
