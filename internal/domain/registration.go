package domain

// PendingRegistration is an unconfirmed registration awaiting OTP
// verification. Email is the partition key, so a later registration attempt
// for the same address overwrites (supersedes) any earlier record.
// ExpiresAt is a Unix timestamp doubling as the DynamoDB TTL attribute;
// expiry is still checked at read time, the TTL only garbage-collects.
type PendingRegistration struct {
	Email        string `json:"email" dynamodbav:"email"`
	PasswordHash string `json:"-" dynamodbav:"password_hash"`
	OTP          string `json:"-" dynamodbav:"otp"`
	ExpiresAt    int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}
