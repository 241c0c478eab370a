package models

import "time"

// Subscriber is a newsletter subscription document keyed by email.
type Subscriber struct {
	Email        string    `firestore:"email" json:"email"`
	SubscribedAt time.Time `firestore:"subscribedAt" json:"subscribedAt"`
	Active       bool      `firestore:"active" json:"active"`
}
