package model

import "time"

// RefreshToken is the durable record of an issued refresh token, keyed by
// the JWT ID claim. Revocation flips Revoked exactly once; the token string
// itself is never stored.
type RefreshToken struct {
	JTI       string     `bson:"_id" json:"jti"`
	UserID    string     `bson:"user_id" json:"user_id"`
	Device    string     `bson:"device" json:"device"` // parsed from the issuing User-Agent
	IssuedAt  time.Time  `bson:"issued_at" json:"issued_at"`
	ExpiresAt time.Time  `bson:"expires_at" json:"expires_at"`
	Revoked   bool       `bson:"revoked" json:"revoked"`
	RevokedAt *time.Time `bson:"revoked_at,omitempty" json:"revoked_at,omitempty"`
}

// Identity is the resolved caller attached to every authenticated request.
type Identity struct {
	UserID  string
	IsAdmin bool
}
