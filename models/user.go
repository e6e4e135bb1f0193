package models

import "time"

// User is an account document. Credential handling happens at the identity
// gate; the hash is stored but never serialized to clients.
type User struct {
	ID           string    `dynamodbav:"id" json:"id"`
	Name         string    `dynamodbav:"name" json:"name"`
	Email        string    `dynamodbav:"email" json:"email"`
	PasswordHash string    `dynamodbav:"passwordHash,omitempty" json:"-"`
	CreatedAt    time.Time `dynamodbav:"createdAt" json:"createdAt"`
}

// UserRef is the public projection embedded in posts, comments and
// suggestions.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UsersTable is the DynamoDB table name for user accounts
const UsersTable = "Users"
