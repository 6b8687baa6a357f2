package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Account is a registered site user. Email is unique across accounts.
type Account struct {
	Id        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name" validate:"required,max=100"`
	Email     string             `bson:"email" json:"email" validate:"required,email"`
	Password  string             `bson:"password" json:"-" validate:"required"`
	Role      Role               `bson:"role" json:"role" validate:"required,oneof=user admin"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

func (a *Account) Normalize() {
	a.Name = strings.TrimSpace(a.Name)
	a.Email = NormalizeEmail(a.Email)
	a.Phone = strings.TrimSpace(a.Phone)
	if a.Role == "" {
		a.Role = RoleUser
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = Now()
	}
}

// Ref is the public projection attached to orders.
func (a *Account) Ref() *AccountRef {
	if a == nil {
		return nil
	}
	return &AccountRef{Id: a.Id, Name: a.Name, Email: a.Email, Phone: a.Phone}
}

// AccountRef is the subset of an account embedded in order responses.
type AccountRef struct {
	Id    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Phone string             `json:"phone,omitempty"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
