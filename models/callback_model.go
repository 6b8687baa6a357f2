package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CallbackStatus string

const (
	CallbackPending   CallbackStatus = "pending"
	CallbackContacted CallbackStatus = "contacted"
	CallbackCompleted CallbackStatus = "completed"
	CallbackCancelled CallbackStatus = "cancelled"
)

var CallbackStatuses = []CallbackStatus{CallbackPending, CallbackContacted, CallbackCompleted, CallbackCancelled}

func (s CallbackStatus) Valid() bool { return contains(CallbackStatuses, s) }

func CallbackStatusList() string { return joinValues(CallbackStatuses) }

// MaxCallbackNotes bounds the free text an admin can attach to a callback.
const MaxCallbackNotes = 500

// Callback is a "call me back" request from the public site.
type Callback struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name" validate:"required,max=100"`
	Phone     string             `json:"phone" bson:"phone" validate:"required"`
	Status    CallbackStatus     `json:"status" bson:"status" validate:"required,oneof=pending contacted completed cancelled"`
	Notes     string             `json:"notes,omitempty" bson:"notes,omitempty" validate:"max=500"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

func (cb *Callback) Normalize() {
	cb.Name = strings.TrimSpace(cb.Name)
	cb.Phone = strings.TrimSpace(cb.Phone)
	if cb.Status == "" {
		cb.Status = CallbackPending
	}
	if cb.CreatedAt.IsZero() {
		cb.CreatedAt = Now()
	}
}

// NotesTooLong reports whether notes exceed MaxCallbackNotes characters.
func NotesTooLong(notes string) bool {
	return utf8.RuneCountInString(notes) > MaxCallbackNotes
}
