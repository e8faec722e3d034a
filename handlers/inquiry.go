package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"primeproperties/metrics"
	"primeproperties/models"
)

type InquiryController struct {
	inquiries  InquiryStore
	properties PropertyStore
}

func NewInquiryController(inquiries InquiryStore, properties PropertyStore) *InquiryController {
	return &InquiryController{inquiries: inquiries, properties: properties}
}

// CreateInquiry records a visitor's message and addresses it to the
// listing's agent. Public, no authentication.
func (ic *InquiryController) CreateInquiry(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.InquiryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err, "")
	}

	property, err := ic.properties.FindByID(ctx, req.PropertyID)
	if err != nil {
		return respondError(c, err, "Property not found")
	}

	inquiry := models.Inquiry{
		ID:         primitive.NewObjectID(),
		PropertyID: property.ID,
		AgentID:    property.AgentID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
		CreatedAt:  time.Now(),
	}

	if err := ic.inquiries.Insert(ctx, &inquiry); err != nil {
		return respondError(c, err, "")
	}

	metrics.RecordInquiry()
	return c.JSON(http.StatusCreated, inquiry)
}

// ListInquiries returns the inquiries addressed to the caller's listings.
func (ic *InquiryController) ListInquiries(c echo.Context) error {
	caller, ok := actor(c)
	if !ok {
		return unauthorized(c, "Not authenticated")
	}

	inquiries, err := ic.inquiries.ListByAgent(c.Request().Context(), caller.ID)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(http.StatusOK, inquiries)
}
