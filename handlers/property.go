package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"primeproperties/access"
	"primeproperties/logger"
	"primeproperties/metrics"
	"primeproperties/models"
	"primeproperties/store"
	"primeproperties/utils"
)

const (
	listCachePrefix = "properties"
	listCacheTTL    = 60 * time.Second
)

type PropertyController struct {
	properties PropertyStore
	users      UserStore
	cache      *utils.Cache
}

func NewPropertyController(properties PropertyStore, users UserStore, cache *utils.Cache) *PropertyController {
	return &PropertyController{properties: properties, users: users, cache: cache}
}

// PropertyListResponse is the paginated list envelope.
type PropertyListResponse struct {
	Properties  []models.Property `json:"properties"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
}

func (pc *PropertyController) ListProperties(c echo.Context) error {
	ctx := c.Request().Context()

	query, err := store.BuildListingQuery(c.QueryParams())
	if err != nil {
		return respondError(c, err, "")
	}

	params := map[string]string{}
	for key, values := range c.QueryParams() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	cacheKey := utils.QueryCacheKey(listCachePrefix+":list", params)

	var cached PropertyListResponse
	if hit, err := pc.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return c.JSON(http.StatusOK, cached)
	}

	properties, total, err := pc.properties.List(ctx, query)
	if err != nil {
		return respondError(c, err, "")
	}

	response := PropertyListResponse{
		Properties:  properties,
		TotalPages:  int((total + int64(query.Limit) - 1) / int64(query.Limit)),
		CurrentPage: query.Page,
	}

	if err := pc.cache.Set(ctx, cacheKey, response, listCacheTTL); err != nil {
		logger.FromEcho(c).Warn("cache set failed", zap.Error(err))
	}
	return c.JSON(http.StatusOK, response)
}

func (pc *PropertyController) GetFeaturedProperties(c echo.Context) error {
	ctx := c.Request().Context()
	cacheKey := listCachePrefix + ":featured"

	var cached []models.Property
	if hit, err := pc.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return c.JSON(http.StatusOK, cached)
	}

	properties, err := pc.properties.ListFeatured(ctx)
	if err != nil {
		return respondError(c, err, "")
	}

	if err := pc.cache.Set(ctx, cacheKey, properties, listCacheTTL); err != nil {
		logger.FromEcho(c).Warn("cache set failed", zap.Error(err))
	}
	return c.JSON(http.StatusOK, properties)
}

func (pc *PropertyController) GetProperty(c echo.Context) error {
	property, err := pc.properties.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "Property not found")
	}

	metrics.RecordPropertyView(property.PricingType)
	return c.JSON(http.StatusOK, property)
}

func (pc *PropertyController) GetAgentProperties(c echo.Context) error {
	properties, err := pc.properties.ListByAgent(c.Request().Context(), c.Param("agentId"))
	if err != nil {
		return respondError(c, err, "Agent not found")
	}
	return c.JSON(http.StatusOK, properties)
}

func (pc *PropertyController) CreateProperty(c echo.Context) error {
	ctx := c.Request().Context()

	caller, ok := actor(c)
	if !ok {
		return unauthorized(c, "Not authorized to create properties")
	}
	if err := access.Authorize(caller, caller.ID, access.ActionCreate); err != nil {
		return unauthorized(c, "Not authorized to create properties")
	}

	// The token's role can be stale; creation requires the directory to
	// still know the caller as an agent.
	agent, err := pc.users.FindByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return unauthorized(c, "Not authorized to create properties")
		}
		return respondError(c, err, "")
	}
	if access.ParseRole(agent.Role) != access.RoleAgent {
		return unauthorized(c, "Not authorized to create properties")
	}

	var property models.Property
	if err := c.Bind(&property); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}

	if err := property.ValidateNew(); err != nil {
		return respondError(c, err, "")
	}

	now := time.Now()
	property.ID = primitive.NilObjectID
	property.AgentID = caller.ID
	property.Agent = nil
	property.Status = "available"
	property.Featured = false
	property.CreatedAt = now
	property.UpdatedAt = now

	id, err := pc.properties.Insert(ctx, &property)
	if err != nil {
		return respondError(c, err, "")
	}

	metrics.RecordPropertyOperation("create")
	pc.invalidateListings(c)

	created, err := pc.properties.GetByID(ctx, id.Hex())
	if err != nil {
		return respondError(c, err, "Property not found")
	}
	return c.JSON(http.StatusCreated, created)
}

func (pc *PropertyController) UpdateProperty(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	caller, ok := actor(c)
	if !ok {
		return unauthorized(c, "Not authorized to update this property")
	}

	existing, err := pc.properties.FindByID(ctx, id)
	if err != nil {
		return respondError(c, err, "Property not found")
	}
	if err := access.Authorize(caller, existing.AgentID, access.ActionUpdate); err != nil {
		return unauthorized(c, "Not authorized to update this property")
	}

	var patch models.PropertyPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := patch.Validate(); err != nil {
		return respondError(c, err, "")
	}

	set := patchSet(&patch)
	set["updatedAt"] = time.Now()

	if err := pc.properties.UpdateSet(ctx, existing.ID, set); err != nil {
		return respondError(c, err, "Property not found")
	}

	metrics.RecordPropertyOperation("update")
	pc.invalidateListings(c)

	updated, err := pc.properties.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err, "Property not found")
	}
	return c.JSON(http.StatusOK, updated)
}

func (pc *PropertyController) DeleteProperty(c echo.Context) error {
	ctx := c.Request().Context()

	caller, ok := actor(c)
	if !ok {
		return unauthorized(c, "Not authorized to delete this property")
	}

	existing, err := pc.properties.FindByID(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "Property not found")
	}
	if err := access.Authorize(caller, existing.AgentID, access.ActionDelete); err != nil {
		return unauthorized(c, "Not authorized to delete this property")
	}

	if err := pc.properties.Delete(ctx, existing.ID); err != nil {
		return respondError(c, err, "Property not found")
	}

	metrics.RecordPropertyOperation("delete")
	pc.invalidateListings(c)

	return c.JSON(http.StatusOK, map[string]string{"message": "Property removed"})
}

func (pc *PropertyController) invalidateListings(c echo.Context) {
	if err := pc.cache.InvalidatePrefix(c.Request().Context(), listCachePrefix); err != nil {
		logger.FromEcho(c).Warn("cache invalidation failed", zap.Error(err))
	}
}

// patchSet turns the non-nil patch fields into a $set document.
func patchSet(patch *models.PropertyPatch) bson.M {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.PropertyType != nil {
		set["propertyType"] = *patch.PropertyType
	}
	if patch.PricingType != nil {
		set["pricingType"] = *patch.PricingType
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Bedrooms != nil {
		set["bedrooms"] = *patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		set["bathrooms"] = *patch.Bathrooms
	}
	if patch.Area != nil {
		set["area"] = *patch.Area
	}
	if patch.YearBuilt != nil {
		set["yearBuilt"] = *patch.YearBuilt
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Images != nil {
		set["images"] = *patch.Images
	}
	if patch.Amenities != nil {
		set["amenities"] = *patch.Amenities
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Featured != nil {
		set["featured"] = *patch.Featured
	}
	return set
}
