package models

import "time"

// Account is a registered customer or professional. Admin principals are
// operator-configured and have no account record.
type Account struct {
	ID           string `bson:"id" json:"id"`
	Role         Role   `bson:"role" json:"role"`
	DisplayName  string `bson:"displayName" json:"displayName"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"passwordHash" json:"-"`
	TokenHash    string `bson:"tokenHash,omitempty" json:"-"`
	// CancellationCount is the lifetime number of confirmed cancellations by
	// this account, across all of its jobs.
	CancellationCount int       `bson:"cancellationCount" json:"cancellationCount"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Principal returns the session principal for the account.
func (a *Account) Principal() *Principal {
	return &Principal{ID: a.ID, Role: a.Role, DisplayName: a.DisplayName}
}
