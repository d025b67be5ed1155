package domain

import "time"

// User is a registered account. Email is the partition key; an account can
// only come into existence through the OTP verification path, so Verified is
// true for every locally-created account.
type User struct {
	Email        string    `json:"email" dynamodbav:"email"`
	UserID       string    `json:"id" dynamodbav:"user_id"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	Verified     bool      `json:"verified" dynamodbav:"verified"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}
