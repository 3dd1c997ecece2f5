package domain

import "time"

// User represents a stored user account. Profile fields are taken from the
// first successful Google login for the email and are not refreshed afterwards.
type User struct {
	ID        string    `bson:"_id" json:"id"`
	Email     string    `bson:"email" json:"email"`
	Name      string    `bson:"name" json:"name"`
	Picture   string    `bson:"picture,omitempty" json:"picture,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// UserSummary is the author projection embedded in blog responses
type UserSummary struct {
	ID      string `bson:"_id" json:"id"`
	Email   string `bson:"email" json:"email"`
	Name    string `bson:"name" json:"name"`
	Picture string `bson:"picture,omitempty" json:"picture,omitempty"`
}

// Summary returns the author projection of a user
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Picture: u.Picture,
	}
}
