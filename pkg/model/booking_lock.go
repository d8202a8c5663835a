package model

import "time"

// BookingLock is an advisory lock row used to serialize duplicate booking
// submissions from the same customer. Expired locks are reaped by a TTL
// index on expires_at.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
