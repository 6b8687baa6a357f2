package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a shop catalog entry (supplements, apparel, equipment).
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `bson:"name" json:"name" validate:"required,max=200"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price" validate:"gt=0"`
	Category    string             `bson:"category" json:"category" validate:"required"`
	Image       string             `bson:"image" json:"image"`
	Stock       int                `bson:"stock" json:"stock" validate:"gte=0"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

func (p *Product) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	if p.Image == "" {
		p.Image = DefaultProductImage
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = Now()
	}
}
