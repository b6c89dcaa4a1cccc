package model

import "time"

// User is a registered customer.  PasswordHash is never serialized.
//
// Fields:
//
//	ID           – UUID primary key.
//	FirstName    – given name.
//	LastName     – family name.
//	Email        – unique, lower-cased address used to log in.
//	Phone        – contact number shown to the admin.
//	PasswordHash – bcrypt hash of the password.
//	CreatedAt    – registration timestamp.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	FirstName    string    `json:"firstName" bson:"first_name"`
	LastName     string    `json:"lastName" bson:"last_name"`
	Email        string    `json:"email" bson:"email"`
	Phone        string    `json:"phone" bson:"phone"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
}

// Summary returns the public projection embedded in reservations.
func (u User) Summary() *UserSummary {
	return &UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
	}
}

// FullName joins first and last name for greetings.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserSummary is the owner projection attached to reservations and reviews.
// Reviews only carry the names.
type UserSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Admin is an operator account.  Admins are created by the seed command and
// live in their own collection; an admin id never resolves as a user.
type Admin struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
}
