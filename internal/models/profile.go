package models

import "time"

// Profile is the public-facing presentation of an account: an avatar plus
// a set of social links keyed by platform name.
type Profile struct {
	ID        string            `json:"id"`
	AccountID string            `json:"accountId"`
	Avatar    string            `json:"avatar,omitempty"`
	Social    map[string]string `json:"social"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
