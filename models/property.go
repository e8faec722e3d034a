package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var PropertyTypes = []string{"House", "Apartment", "Condo", "Townhouse", "Land", "Commercial"}

var PricingTypes = []string{"sale", "rent", "rent-yearly"}

var PropertyStatuses = []string{"available", "pending", "sold", "rented"}

type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

type Location struct {
	Address     string      `bson:"address" json:"address"`
	City        string      `bson:"city" json:"city"`
	State       string      `bson:"state" json:"state"`
	ZipCode     string      `bson:"zipCode" json:"zipCode"`
	Coordinates Coordinates `bson:"coordinates" json:"coordinates"`
}

// AgentProfile is the public subset of a user joined onto a property,
// the same field list the listing API has always exposed.
type AgentProfile struct {
	ID      primitive.ObjectID `bson:"_id" json:"_id"`
	Name    string             `bson:"name" json:"name"`
	Email   string             `bson:"email" json:"email"`
	Phone   string             `bson:"phone" json:"phone"`
	Photo   string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Company string             `bson:"company,omitempty" json:"company,omitempty"`
}

type Property struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	PropertyType string             `bson:"propertyType" json:"propertyType"`
	PricingType  string             `bson:"pricingType" json:"pricingType"`
	Price        float64            `bson:"price" json:"price"`
	Bedrooms     int                `bson:"bedrooms" json:"bedrooms"`
	Bathrooms    float64            `bson:"bathrooms" json:"bathrooms"`
	Area         float64            `bson:"area" json:"area"`
	YearBuilt    *int               `bson:"yearBuilt,omitempty" json:"yearBuilt,omitempty"`
	Location     Location           `bson:"location" json:"location"`
	Images       []string           `bson:"images" json:"images"`
	Amenities    []string           `bson:"amenities,omitempty" json:"amenities,omitempty"`
	AgentID      primitive.ObjectID `bson:"agent" json:"-"`
	// Agent is joined from the users collection on reads and serializes
	// under the "agent" key, the shape the frontend expects.
	Agent     *AgentProfile `bson:"agentProfile,omitempty" json:"agent,omitempty"`
	Status    string        `bson:"status" json:"status"`
	Featured  bool          `bson:"featured" json:"featured"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// PropertyPatch is a partial update; nil fields are left untouched.
type PropertyPatch struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	PropertyType *string   `json:"propertyType"`
	PricingType  *string   `json:"pricingType"`
	Price        *float64  `json:"price"`
	Bedrooms     *int      `json:"bedrooms"`
	Bathrooms    *float64  `json:"bathrooms"`
	Area         *float64  `json:"area"`
	YearBuilt    *int      `json:"yearBuilt"`
	Location     *Location `json:"location"`
	Images       *[]string `json:"images"`
	Amenities    *[]string `json:"amenities"`
	Status       *string   `json:"status"`
	Featured     *bool     `json:"featured"`
}

func isOneOf(value string, allowed []string) bool {
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}

// ValidateNew checks every creation invariant and reports all violated
// fields at once rather than stopping at the first.
func (p *Property) ValidateNew() error {
	var fields []string

	if p.Title == "" {
		fields = append(fields, "title")
	}
	if p.Description == "" {
		fields = append(fields, "description")
	}
	if !isOneOf(p.PropertyType, PropertyTypes) {
		fields = append(fields, "propertyType")
	}
	if !isOneOf(p.PricingType, PricingTypes) {
		fields = append(fields, "pricingType")
	}
	if p.Price < 0 {
		fields = append(fields, "price")
	}
	if p.Bedrooms < 0 {
		fields = append(fields, "bedrooms")
	}
	if p.Bathrooms < 0 {
		fields = append(fields, "bathrooms")
	}
	if p.Area < 0 {
		fields = append(fields, "area")
	}
	if p.Location.Address == "" {
		fields = append(fields, "location.address")
	}
	if p.Location.City == "" {
		fields = append(fields, "location.city")
	}
	if p.Location.State == "" {
		fields = append(fields, "location.state")
	}
	if p.Location.ZipCode == "" {
		fields = append(fields, "location.zipCode")
	}
	if len(p.Images) == 0 {
		fields = append(fields, "images")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Validate checks only the fields present in the patch; untouched fields
// keep whatever was enforced at creation.
func (p *PropertyPatch) Validate() error {
	var fields []string

	if p.PropertyType != nil && !isOneOf(*p.PropertyType, PropertyTypes) {
		fields = append(fields, "propertyType")
	}
	if p.PricingType != nil && !isOneOf(*p.PricingType, PricingTypes) {
		fields = append(fields, "pricingType")
	}
	if p.Status != nil && !isOneOf(*p.Status, PropertyStatuses) {
		fields = append(fields, "status")
	}
	if p.Price != nil && *p.Price < 0 {
		fields = append(fields, "price")
	}
	if p.Bedrooms != nil && *p.Bedrooms < 0 {
		fields = append(fields, "bedrooms")
	}
	if p.Bathrooms != nil && *p.Bathrooms < 0 {
		fields = append(fields, "bathrooms")
	}
	if p.Area != nil && *p.Area < 0 {
		fields = append(fields, "area")
	}
	if p.Images != nil && len(*p.Images) == 0 {
		fields = append(fields, "images")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
