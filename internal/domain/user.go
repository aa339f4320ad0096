package domain

import "time"

type UserDraft struct {
	Name       string `json:"name" validate:"notblank"`
	Email      string `json:"email" validate:"notblank"`
	Credential string `json:"credential" validate:"notblank"`
}

// User is a registered account. Credential is stored verbatim.
type User struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Credential string    `json:"credential"`
	CreatedAt  time.Time `json:"createdAt"`
}
