package handlers

import (
	"context"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"primeproperties/access"
	"primeproperties/models"
)

type fakeInquiryStore struct {
	inserted []models.Inquiry
	byAgent  map[primitive.ObjectID][]models.Inquiry
}

func (f *fakeInquiryStore) Insert(ctx context.Context, inquiry *models.Inquiry) error {
	f.inserted = append(f.inserted, *inquiry)
	return nil
}

func (f *fakeInquiryStore) ListByAgent(ctx context.Context, agentID primitive.ObjectID) ([]models.Inquiry, error) {
	return f.byAgent[agentID], nil
}

func TestCreateInquiryAddressesAgent(t *testing.T) {
	properties := newFakePropertyStore()
	agentID := primitive.NewObjectID()
	propertyID := primitive.NewObjectID()
	properties.byID[propertyID] = models.Property{ID: propertyID, AgentID: agentID}

	inquiries := &fakeInquiryStore{}
	ic := NewInquiryController(inquiries, properties)

	c, rec := newTestContext(t, http.MethodPost, "/api/inquiries", map[string]string{
		"propertyId": propertyID.Hex(),
		"name":       "Carol",
		"email":      "carol@example.com",
		"message":    "Is the loft still available?",
	})
	if err := ic.CreateInquiry(c); err != nil {
		t.Fatalf("CreateInquiry: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if len(inquiries.inserted) != 1 {
		t.Fatalf("inserted = %d, want 1", len(inquiries.inserted))
	}
	if inquiries.inserted[0].AgentID != agentID {
		t.Errorf("agent = %s, want %s", inquiries.inserted[0].AgentID.Hex(), agentID.Hex())
	}
}

func TestCreateInquiryUnknownProperty(t *testing.T) {
	ic := NewInquiryController(&fakeInquiryStore{}, newFakePropertyStore())

	c, rec := newTestContext(t, http.MethodPost, "/api/inquiries", map[string]string{
		"propertyId": primitive.NewObjectID().Hex(),
		"name":       "Carol",
		"email":      "carol@example.com",
		"message":    "Hello",
	})
	if err := ic.CreateInquiry(c); err != nil {
		t.Fatalf("CreateInquiry: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCreateInquiryValidation(t *testing.T) {
	ic := NewInquiryController(&fakeInquiryStore{}, newFakePropertyStore())

	c, rec := newTestContext(t, http.MethodPost, "/api/inquiries", map[string]string{})
	if err := ic.CreateInquiry(c); err != nil {
		t.Fatalf("CreateInquiry: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestListInquiriesScopedToCaller(t *testing.T) {
	agentID := primitive.NewObjectID()
	inquiries := &fakeInquiryStore{byAgent: map[primitive.ObjectID][]models.Inquiry{
		agentID: {{Name: "Carol"}, {Name: "Dan"}},
	}}
	ic := NewInquiryController(inquiries, newFakePropertyStore())

	c, rec := newTestContext(t, http.MethodGet, "/api/inquiries", nil)
	setActor(c, agentID, access.RoleAgent)
	if err := ic.ListInquiries(c); err != nil {
		t.Fatalf("ListInquiries: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp []models.Inquiry
	decodeBody(t, rec, &resp)
	if len(resp) != 2 {
		t.Errorf("len = %d, want 2", len(resp))
	}
}
