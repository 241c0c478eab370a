package models

import "time"

// User is the account document. The document id normally equals the external
// identity id (UID), but legacy records can live under a different id with a
// matching email; verification reconciles those into the uid-keyed document.
type User struct {
	ID            string     `firestore:"-" json:"id"`
	UID           string     `firestore:"uid,omitempty" json:"uid,omitempty"`
	Email         string     `firestore:"email" json:"email"`
	Name          string     `firestore:"name,omitempty" json:"name,omitempty"`
	Provider      string     `firestore:"provider,omitempty" json:"provider,omitempty"`
	Role          string     `firestore:"role,omitempty" json:"role,omitempty"`
	EmailVerified bool       `firestore:"emailVerified" json:"emailVerified"`
	VerifiedAt    *time.Time `firestore:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
	CreatedAt     time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     *time.Time `firestore:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	PhotoURL      string     `firestore:"photoURL,omitempty" json:"photoURL,omitempty"`
}

// MergeFields flattens the user into a field map suitable for a merge write
// into another document. Zero-valued optional fields are left out so existing
// data at the destination is preserved.
func (u *User) MergeFields() map[string]interface{} {
	fields := map[string]interface{}{
		"email":         u.Email,
		"emailVerified": u.EmailVerified,
	}
	if u.UID != "" {
		fields["uid"] = u.UID
	}
	if u.Name != "" {
		fields["name"] = u.Name
	}
	if u.Provider != "" {
		fields["provider"] = u.Provider
	}
	if u.Role != "" {
		fields["role"] = u.Role
	}
	if u.PhotoURL != "" {
		fields["photoURL"] = u.PhotoURL
	}
	if u.VerifiedAt != nil {
		fields["verifiedAt"] = *u.VerifiedAt
	}
	if !u.CreatedAt.IsZero() {
		fields["createdAt"] = u.CreatedAt
	}
	return fields
}

// WishlistItem is a product a user has saved under their wishlist
// sub-collection. Read-only from this service's perspective.
type WishlistItem struct {
	ProductID string `firestore:"productId" json:"productId"`
}
