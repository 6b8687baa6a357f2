package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactStatus string

const (
	ContactPending  ContactStatus = "pending"
	ContactRead     ContactStatus = "read"
	ContactReplied  ContactStatus = "replied"
	ContactArchived ContactStatus = "archived"
)

var ContactStatuses = []ContactStatus{ContactPending, ContactRead, ContactReplied, ContactArchived}

func (s ContactStatus) Valid() bool { return contains(ContactStatuses, s) }

// ContactStatusList is the human readable enum, used in error messages.
func ContactStatusList() string { return joinValues(ContactStatuses) }

// Contact is a message left through the public contact form.
type Contact struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name" validate:"required,max=100"`
	Email     string             `json:"email" bson:"email" validate:"required,email"`
	Subject   string             `json:"subject" bson:"subject" validate:"required,max=200"`
	Message   string             `json:"message" bson:"message" validate:"required,max=2000"`
	Status    ContactStatus      `json:"status" bson:"status" validate:"required,oneof=pending read replied archived"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// Normalize applies the schema defaults: trimmed name and subject,
// lower-cased email, pending status and a creation time.
func (c *Contact) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Subject = strings.TrimSpace(c.Subject)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	if c.Status == "" {
		c.Status = ContactPending
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = Now()
	}
}
