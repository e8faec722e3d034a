package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Inquiry is a message a visitor sends an agent about a listing.
type Inquiry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PropertyID primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	AgentID    primitive.ObjectID `bson:"agentId" json:"agentId"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Message    string             `bson:"message" json:"message"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

type InquiryRequest struct {
	PropertyID string `json:"propertyId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
}

func (r *InquiryRequest) Validate() error {
	var fields []string
	if r.PropertyID == "" {
		fields = append(fields, "propertyId")
	}
	if r.Name == "" {
		fields = append(fields, "name")
	}
	if r.Email == "" {
		fields = append(fields, "email")
	}
	if r.Message == "" {
		fields = append(fields, "message")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
