package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"primeproperties/access"
	"primeproperties/models"
	"primeproperties/store"
)

type fakePropertyStore struct {
	byID      map[primitive.ObjectID]models.Property
	listItems []models.Property
	listTotal int64
	lastQuery store.ListingQuery
	featured  []models.Property
}

func newFakePropertyStore() *fakePropertyStore {
	return &fakePropertyStore{byID: map[primitive.ObjectID]models.Property{}}
}

func (f *fakePropertyStore) List(ctx context.Context, q store.ListingQuery) ([]models.Property, int64, error) {
	f.lastQuery = q
	return f.listItems, f.listTotal, nil
}

func (f *fakePropertyStore) lookup(id string) (models.Property, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Property{}, store.ErrNotFound
	}
	property, ok := f.byID[objectID]
	if !ok {
		return models.Property{}, store.ErrNotFound
	}
	return property, nil
}

func (f *fakePropertyStore) GetByID(ctx context.Context, id string) (models.Property, error) {
	return f.lookup(id)
}

func (f *fakePropertyStore) FindByID(ctx context.Context, id string) (models.Property, error) {
	return f.lookup(id)
}

func (f *fakePropertyStore) ListByAgent(ctx context.Context, agentID string) ([]models.Property, error) {
	objectID, err := primitive.ObjectIDFromHex(agentID)
	if err != nil {
		return nil, store.ErrNotFound
	}
	var properties []models.Property
	for _, p := range f.byID {
		if p.AgentID == objectID {
			properties = append(properties, p)
		}
	}
	return properties, nil
}

func (f *fakePropertyStore) ListFeatured(ctx context.Context) ([]models.Property, error) {
	return f.featured, nil
}

func (f *fakePropertyStore) Insert(ctx context.Context, property *models.Property) (primitive.ObjectID, error) {
	if property.ID.IsZero() {
		property.ID = primitive.NewObjectID()
	}
	f.byID[property.ID] = *property
	return property.ID, nil
}

func (f *fakePropertyStore) UpdateSet(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	property, ok := f.byID[id]
	if !ok {
		return store.ErrNotFound
	}
	if title, ok := set["title"].(string); ok {
		property.Title = title
	}
	if price, ok := set["price"].(float64); ok {
		property.Price = price
	}
	if status, ok := set["status"].(string); ok {
		property.Status = status
	}
	f.byID[id] = property
	return nil
}

func (f *fakePropertyStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.byID[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeUserStore struct {
	byID map[primitive.ObjectID]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: map[primitive.ObjectID]models.User{}}
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (f *fakeUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserStore) FindByIDHex(ctx context.Context, id string) (models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, store.ErrNotFound
	}
	return f.FindByID(ctx, objectID)
}

func (f *fakeUserStore) Insert(ctx context.Context, user *models.User) error {
	f.byID[user.ID] = *user
	return nil
}

func (f *fakeUserStore) addAgent(name string) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.byID[id] = models.User{ID: id, Name: name, Email: name + "@example.com", Role: "agent", IsActive: true}
	return id
}

func newTestContext(t *testing.T, method, target string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func setActor(c echo.Context, id primitive.ObjectID, role access.Role) {
	c.Set("user_id", id)
	c.Set("user_role", role)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"title":        "Loft",
		"description":  "Bright corner loft",
		"propertyType": "Apartment",
		"pricingType":  "rent",
		"price":        1200,
		"bedrooms":     1,
		"bathrooms":    1,
		"area":         500,
		"location": map[string]interface{}{
			"address":     "12 Main St",
			"city":        "Springfield",
			"state":       "IL",
			"zipCode":     "62701",
			"coordinates": map[string]float64{"lat": 39.78, "lng": -89.65},
		},
		"images": []string{"a.jpg"},
	}
}

func TestListPropertiesPagination(t *testing.T) {
	properties := newFakePropertyStore()
	properties.listTotal = 25
	properties.listItems = make([]models.Property, 10)
	pc := NewPropertyController(properties, newFakeUserStore(), nil)

	c, rec := newTestContext(t, http.MethodGet, "/api/properties?page=2&limit=10", nil)
	if err := pc.ListProperties(c); err != nil {
		t.Fatalf("ListProperties: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp PropertyListResponse
	decodeBody(t, rec, &resp)
	if resp.TotalPages != 3 {
		t.Errorf("totalPages = %d, want 3", resp.TotalPages)
	}
	if resp.CurrentPage != 2 {
		t.Errorf("currentPage = %d, want 2", resp.CurrentPage)
	}
	if len(resp.Properties) != 10 {
		t.Errorf("len(properties) = %d", len(resp.Properties))
	}
	if properties.lastQuery.Page != 2 || properties.lastQuery.Limit != 10 {
		t.Errorf("query page/limit = %d/%d", properties.lastQuery.Page, properties.lastQuery.Limit)
	}
}

func TestListPropertiesRejectsMalformedPrice(t *testing.T) {
	pc := NewPropertyController(newFakePropertyStore(), newFakeUserStore(), nil)

	c, rec := newTestContext(t, http.MethodGet, "/api/properties?minPrice=cheap", nil)
	if err := pc.ListProperties(c); err != nil {
		t.Fatalf("ListProperties: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp struct {
		Fields []string `json:"fields"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Fields) != 1 || resp.Fields[0] != "minPrice" {
		t.Errorf("fields = %v, want [minPrice]", resp.Fields)
	}
}

func TestGetPropertyNotFound(t *testing.T) {
	pc := NewPropertyController(newFakePropertyStore(), newFakeUserStore(), nil)

	for _, id := range []string{primitive.NewObjectID().Hex(), "not-an-object-id"} {
		c, rec := newTestContext(t, http.MethodGet, "/api/properties/"+id, nil)
		c.SetParamNames("id")
		c.SetParamValues(id)
		if err := pc.GetProperty(c); err != nil {
			t.Fatalf("GetProperty: %v", err)
		}
		if rec.Code != http.StatusNotFound {
			t.Errorf("id %q: status = %d, want 404", id, rec.Code)
		}
	}
}

func TestCreatePropertyAsAgent(t *testing.T) {
	properties := newFakePropertyStore()
	users := newFakeUserStore()
	agentID := users.addAgent("alice")
	pc := NewPropertyController(properties, users, nil)

	c, rec := newTestContext(t, http.MethodPost, "/api/properties", validPayload())
	setActor(c, agentID, access.RoleAgent)
	if err := pc.CreateProperty(c); err != nil {
		t.Fatalf("CreateProperty: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created models.Property
	decodeBody(t, rec, &created)
	if created.Status != "available" {
		t.Errorf("status = %q, want available", created.Status)
	}
	if created.Featured {
		t.Error("featured should default to false")
	}

	stored, err := properties.lookup(created.ID.Hex())
	if err != nil {
		t.Fatalf("created property not stored: %v", err)
	}
	if stored.AgentID != agentID {
		t.Errorf("agent = %s, want %s", stored.AgentID.Hex(), agentID.Hex())
	}
	if stored.CreatedAt.IsZero() || !stored.CreatedAt.Equal(stored.UpdatedAt) {
		t.Errorf("timestamps: created %v updated %v", stored.CreatedAt, stored.UpdatedAt)
	}
}

func TestCreatePropertyEmptyImages(t *testing.T) {
	users := newFakeUserStore()
	agentID := users.addAgent("alice")
	pc := NewPropertyController(newFakePropertyStore(), users, nil)

	payload := validPayload()
	payload["images"] = []string{}

	c, rec := newTestContext(t, http.MethodPost, "/api/properties", payload)
	setActor(c, agentID, access.RoleAgent)
	if err := pc.CreateProperty(c); err != nil {
		t.Fatalf("CreateProperty: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp struct {
		Fields []string `json:"fields"`
	}
	decodeBody(t, rec, &resp)
	found := false
	for _, f := range resp.Fields {
		if f == "images" {
			found = true
		}
	}
	if !found {
		t.Errorf("fields = %v, want images mentioned", resp.Fields)
	}
}

func TestCreatePropertyRequiresAgentRole(t *testing.T) {
	users := newFakeUserStore()
	userID := primitive.NewObjectID()
	users.byID[userID] = models.User{ID: userID, Role: "user", IsActive: true}
	pc := NewPropertyController(newFakePropertyStore(), users, nil)

	c, rec := newTestContext(t, http.MethodPost, "/api/properties", validPayload())
	setActor(c, userID, access.RoleUser)
	if err := pc.CreateProperty(c); err != nil {
		t.Fatalf("CreateProperty: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestUpdatePropertyOwnership(t *testing.T) {
	properties := newFakePropertyStore()
	users := newFakeUserStore()
	agentA := users.addAgent("alice")
	agentB := users.addAgent("bob")
	admin := primitive.NewObjectID()

	propertyID := primitive.NewObjectID()
	properties.byID[propertyID] = models.Property{ID: propertyID, AgentID: agentA, Title: "Old"}

	pc := NewPropertyController(properties, users, nil)
	patch := map[string]interface{}{"title": "New"}

	tests := []struct {
		name       string
		actorID    primitive.ObjectID
		role       access.Role
		wantStatus int
	}{
		{"other agent denied", agentB, access.RoleAgent, http.StatusUnauthorized},
		{"owner allowed", agentA, access.RoleAgent, http.StatusOK},
		{"admin allowed", admin, access.RoleAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t, http.MethodPut, "/api/properties/"+propertyID.Hex(), patch)
			c.SetParamNames("id")
			c.SetParamValues(propertyID.Hex())
			setActor(c, tt.actorID, tt.role)
			if err := pc.UpdateProperty(c); err != nil {
				t.Fatalf("UpdateProperty: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}

	if properties.byID[propertyID].Title != "New" {
		t.Errorf("title = %q, want New", properties.byID[propertyID].Title)
	}
}

func TestUpdatePropertyRejectsBadEnum(t *testing.T) {
	properties := newFakePropertyStore()
	users := newFakeUserStore()
	agentID := users.addAgent("alice")

	propertyID := primitive.NewObjectID()
	properties.byID[propertyID] = models.Property{ID: propertyID, AgentID: agentID}

	pc := NewPropertyController(properties, users, nil)

	c, rec := newTestContext(t, http.MethodPut, "/api/properties/"+propertyID.Hex(),
		map[string]interface{}{"status": "vaporized"})
	c.SetParamNames("id")
	c.SetParamValues(propertyID.Hex())
	setActor(c, agentID, access.RoleAgent)
	if err := pc.UpdateProperty(c); err != nil {
		t.Fatalf("UpdateProperty: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestPropertyLifecycle walks the full scenario: agent A creates, agent B
// cannot delete, agent A deletes, then the listing is gone.
func TestPropertyLifecycle(t *testing.T) {
	properties := newFakePropertyStore()
	users := newFakeUserStore()
	agentA := users.addAgent("alice")
	agentB := users.addAgent("bob")
	pc := NewPropertyController(properties, users, nil)

	c, rec := newTestContext(t, http.MethodPost, "/api/properties", validPayload())
	setActor(c, agentA, access.RoleAgent)
	if err := pc.CreateProperty(c); err != nil {
		t.Fatalf("CreateProperty: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	var created models.Property
	decodeBody(t, rec, &created)
	id := created.ID.Hex()

	c, rec = newTestContext(t, http.MethodDelete, "/api/properties/"+id, nil)
	c.SetParamNames("id")
	c.SetParamValues(id)
	setActor(c, agentB, access.RoleAgent)
	if err := pc.DeleteProperty(c); err != nil {
		t.Fatalf("DeleteProperty: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("delete by other agent: status = %d, want 401", rec.Code)
	}

	c, rec = newTestContext(t, http.MethodDelete, "/api/properties/"+id, nil)
	c.SetParamNames("id")
	c.SetParamValues(id)
	setActor(c, agentA, access.RoleAgent)
	if err := pc.DeleteProperty(c); err != nil {
		t.Fatalf("DeleteProperty: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("delete by owner: status = %d, want 200", rec.Code)
	}

	c, rec = newTestContext(t, http.MethodGet, "/api/properties/"+id, nil)
	c.SetParamNames("id")
	c.SetParamValues(id)
	if err := pc.GetProperty(c); err != nil {
		t.Fatalf("GetProperty: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: status = %d, want 404", rec.Code)
	}
}

func TestGetFeaturedProperties(t *testing.T) {
	properties := newFakePropertyStore()
	properties.featured = make([]models.Property, 3)
	pc := NewPropertyController(properties, newFakeUserStore(), nil)

	c, rec := newTestContext(t, http.MethodGet, "/api/properties/featured", nil)
	if err := pc.GetFeaturedProperties(c); err != nil {
		t.Fatalf("GetFeaturedProperties: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp []models.Property
	decodeBody(t, rec, &resp)
	if len(resp) != 3 {
		t.Errorf("len = %d, want 3", len(resp))
	}
}
