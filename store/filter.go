package store

import (
	"net/url"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"

	"primeproperties/models"
)

const DefaultPageSize = 10

// ListingQuery is a built predicate over the properties collection plus
// its pagination window.
type ListingQuery struct {
	Filter bson.M
	Page   int
	Limit  int
}

// BuildListingQuery translates the public list endpoint's query string
// into a Mongo filter. Malformed numeric parameters are rejected with a
// ValidationError naming every offender; absent parameters leave their
// side of the predicate unbounded.
func BuildListingQuery(params url.Values) (ListingQuery, error) {
	filter := bson.M{}
	var bad []string

	if t := params.Get("type"); t != "" {
		filter["pricingType"] = t
	}

	price := bson.M{}
	if raw := params.Get("minPrice"); raw != "" {
		if min, err := strconv.ParseFloat(raw, 64); err == nil {
			price["$gte"] = min
		} else {
			bad = append(bad, "minPrice")
		}
	}
	if raw := params.Get("maxPrice"); raw != "" {
		if max, err := strconv.ParseFloat(raw, 64); err == nil {
			price["$lte"] = max
		} else {
			bad = append(bad, "maxPrice")
		}
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if raw := params.Get("bedrooms"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			filter["bedrooms"] = bson.M{"$gte": n}
		} else {
			bad = append(bad, "bedrooms")
		}
	}
	if raw := params.Get("bathrooms"); raw != "" {
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			filter["bathrooms"] = bson.M{"$gte": n}
		} else {
			bad = append(bad, "bathrooms")
		}
	}

	if search := params.Get("search"); search != "" {
		// Matching semantics belong to the title+description text index.
		filter["$text"] = bson.M{"$search": search}
	}

	page := 1
	if raw := params.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			page = n
		} else {
			bad = append(bad, "page")
		}
	}
	limit := DefaultPageSize
	if raw := params.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			limit = n
		} else {
			bad = append(bad, "limit")
		}
	}

	if len(bad) > 0 {
		return ListingQuery{}, &models.ValidationError{Fields: bad}
	}
	return ListingQuery{Filter: filter, Page: page, Limit: limit}, nil
}
