package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/abdullahsadik00/craftconnect/domain"
	"github.com/abdullahsadik00/craftconnect/internal/mocks"
)

func newProviderRouter(providerSvc domain.ProviderService) *gin.Engine {
	h := NewProviderHandlers(providerSvc)
	r := gin.New()
	r.GET("/providers", h.List)
	r.GET("/providers/:id", h.Get)

	authed := r.Group("/")
	authed.Use(fakeIdentity("7", domain.RoleProvider))
	authed.POST("/providers", h.Create)
	authed.PUT("/providers/me", h.Update)
	authed.POST("/providers/me/portfolio", h.AddPortfolioItem)
	authed.DELETE("/providers/me/portfolio/:itemID", h.RemovePortfolioItem)
	authed.PUT("/providers/me/portfolio/reorder", h.ReorderPortfolio)
	authed.POST("/providers/:id/inquiries", h.SubmitInquiry)
	authed.GET("/inquiries", h.ListInquiries)
	authed.PUT("/inquiries/:id/status", h.UpdateInquiryStatus)
	return r
}

func TestProviderHandlers_List(t *testing.T) {
	providerSvc := mocks.NewMockProviderService()
	var gotFilter domain.ProviderFilter
	providerSvc.ListFunc = func(ctx context.Context, filter domain.ProviderFilter) ([]*domain.Provider, error) {
		gotFilter = filter
		return []*domain.Provider{
			{ID: 1, BusinessName: "Pipe Masters", Category: "plumbing", City: "Austin"},
			{ID: 2, BusinessName: "Flow State", Category: "plumbing", City: "Austin"},
		}, nil
	}
	router := newProviderRouter(providerSvc)

	w := doJSON(router, http.MethodGet, "/providers?category=plumbing&city=Austin&limit=10&offset=5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotFilter.Category != "plumbing" || gotFilter.City != "Austin" || gotFilter.Limit != 10 || gotFilter.Offset != 5 {
		t.Errorf("unexpected filter: %+v", gotFilter)
	}
	body := parseBody(t, w)
	providers, ok := body["providers"].([]any)
	if !ok || len(providers) != 2 {
		t.Errorf("expected 2 providers, got %v", body["providers"])
	}
}

func TestProviderHandlers_Get(t *testing.T) {
	providerSvc := mocks.NewMockProviderService()
	providerSvc.GetByIDFunc = func(ctx context.Context, id uint) (*domain.Provider, error) {
		if id != 3 {
			return nil, domain.ErrProviderNotFound
		}
		return &domain.Provider{ID: 3, BusinessName: "Deck Co", Category: "carpentry", City: "Dallas"}, nil
	}
	providerSvc.PortfolioFunc = func(ctx context.Context, providerID uint) ([]*domain.PortfolioItem, error) {
		return []*domain.PortfolioItem{
			{ID: 1, ProviderID: providerID, Title: "deck build", Position: 0},
		}, nil
	}
	router := newProviderRouter(providerSvc)

	w := doJSON(router, http.MethodGet, "/providers/3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := parseBody(t, w)
	provider, ok := body["provider"].(map[string]any)
	if !ok {
		t.Fatalf("response should embed provider, got %v", body)
	}
	portfolio, ok := provider["portfolio"].([]any)
	if !ok || len(portfolio) != 1 {
		t.Errorf("expected embedded portfolio with 1 item, got %v", provider["portfolio"])
	}

	w = doJSON(router, http.MethodGet, "/providers/999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}

	w = doJSON(router, http.MethodGet, "/providers/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric id, got %d", w.Code)
	}
}

func TestProviderHandlers_Create(t *testing.T) {
	providerSvc := mocks.NewMockProviderService()
	var gotUserID uint
	providerSvc.CreateProfileFunc = func(ctx context.Context, userID uint, provider *domain.Provider) (*domain.Provider, error) {
		gotUserID = userID
		provider.ID = 5
		provider.UserID = userID
		return provider, nil
	}
	router := newProviderRouter(providerSvc)

	w := doJSON(router, http.MethodPost, "/providers", gin.H{
		"businessName": "Pipe Masters",
		"category":     "plumbing",
		"city":         "Austin",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if gotUserID != 7 {
		t.Errorf("expected user 7, got %d", gotUserID)
	}
	body := parseBody(t, w)
	provider, ok := body["provider"].(map[string]any)
	if !ok {
		t.Fatalf("response should embed provider, got %v", body)
	}
	if provider["businessName"] != "Pipe Masters" {
		t.Errorf("unexpected provider: %v", provider)
	}
}

func TestProviderHandlers_Create_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     gin.H
		svcErr   error
		wantCode int
	}{
		{"duplicate profile", gin.H{"businessName": "Pipe Masters", "category": "plumbing", "city": "Austin"}, domain.ErrProviderExists, http.StatusConflict},
		{"missing category", gin.H{"businessName": "Pipe Masters", "city": "Austin"}, nil, http.StatusUnprocessableEntity},
		{"name too short", gin.H{"businessName": "P", "category": "plumbing", "city": "Austin"}, nil, http.StatusUnprocessableEntity},
		{"bad contact email", gin.H{"businessName": "Pipe Masters", "category": "plumbing", "city": "Austin", "contactEmail": "nope"}, nil, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providerSvc := mocks.NewMockProviderService()
			if tt.svcErr != nil {
				providerSvc.CreateProfileFunc = func(ctx context.Context, userID uint, provider *domain.Provider) (*domain.Provider, error) {
					return nil, tt.svcErr
				}
			}
			router := newProviderRouter(providerSvc)

			w := doJSON(router, http.MethodPost, "/providers", tt.body)
			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestProviderHandlers_Update_NoProfile(t *testing.T) {
	providerSvc := mocks.NewMockProviderService()
	providerSvc.UpdateProfileFunc = func(ctx context.Context, userID uint, provider *domain.Provider) (*domain.Provider, error) {
		return nil, domain.ErrProviderNotFound
	}
	router := newProviderRouter(providerSvc)

	w := doJSON(router, http.MethodPut, "/providers/me", gin.H{
		"businessName": "Pipe Masters",
		"category":     "plumbing",
		"city":         "Austin",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestProviderHandlers_AddPortfolioItem(t *testing.T) {
	providerSvc := mocks.NewMockProviderService()
	providerSvc.AddPortfolioItemFunc = func(ctx context.Context, userID uint, item *domain.PortfolioItem) (*domain.PortfolioItem, error) {
		item.ID = 9
		item.ProviderID = 5
		item.Position = 2
		return item, nil
	}
	router := newProviderRouter(providerSvc)

	w := doJSON(router, http.MethodPost, "/providers/me/portfolio", gin.H{
		"title":    "kitchen remodel",
		"imageUrl": "https://img.example.com/kitchen.jpg",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	body := parseBody(t, w)
	item, ok := body["item"].(map[string]any)
	if !ok {
		t.Fatalf("response should embed item, got %v", body)
	}
	if item["position"] != float64(2) {
		t.Errorf("expected position 2, got %v", item["position"])
	}

	// imageUrl must be a URL.
	w = doJSON(router, http.MethodPost, "/providers/me/portfolio", gin.H{
		"title":    "kitchen remodel",
		"imageUrl": "not-a-url",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
}

func TestProviderHandlers_ReorderPortfolio(t *testing.T) {
	tests := []struct {
		name     string
		body     any
		svcErr   error
		wantCode int
	}{
		{"success", gin.H{"itemIds": []uint{3, 1, 2}}, nil, http.StatusOK},
		{"incomplete order", gin.H{"itemIds": []uint{3, 1}}, domain.ErrPortfolioNotFound, http.StatusBadRequest},
		{"empty order", gin.H{"itemIds": []uint{}}, nil, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providerSvc := mocks.NewMockProviderService()
			if tt.svcErr != nil {
				providerSvc.ReorderPortfolioFunc = func(ctx context.Context, userID uint, itemIDs []uint) error {
					return tt.svcErr
				}
			}
			router := newProviderRouter(providerSvc)

			w := doJSON(router, http.MethodPut, "/providers/me/portfolio/reorder", tt.body)
			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestProviderHandlers_SubmitInquiry(t *testing.T) {
	providerSvc := mocks.NewMockProviderService()
	var gotProviderID, gotCustomerID uint
	providerSvc.SubmitInquiryFunc = func(ctx context.Context, customerID, providerID uint, subject, message string) (*domain.Inquiry, error) {
		gotCustomerID = customerID
		gotProviderID = providerID
		return &domain.Inquiry{ID: 1, ProviderID: providerID, CustomerID: customerID, Subject: subject, Message: message, Status: domain.InquiryStatusOpen}, nil
	}
	router := newProviderRouter(providerSvc)

	w := doJSON(router, http.MethodPost, "/providers/4/inquiries", gin.H{
		"subject": "quote request",
		"message": "How much for a repaint?",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if gotProviderID != 4 || gotCustomerID != 7 {
		t.Errorf("expected provider 4 customer 7, got %d %d", gotProviderID, gotCustomerID)
	}
	body := parseBody(t, w)
	inquiry, ok := body["inquiry"].(map[string]any)
	if !ok {
		t.Fatalf("response should embed inquiry, got %v", body)
	}
	if inquiry["status"] != domain.InquiryStatusOpen {
		t.Errorf("new inquiry should be open, got %v", inquiry["status"])
	}
}

func TestProviderHandlers_ListInquiries(t *testing.T) {
	providerSvc := mocks.NewMockProviderService()
	providerSvc.ListInquiriesFunc = func(ctx context.Context, userID uint, filter domain.InquiryFilter) ([]*domain.Inquiry, int64, error) {
		return []*domain.Inquiry{
			{ID: 1, ProviderID: 5, CustomerID: 2, Status: domain.InquiryStatusOpen},
		}, 12, nil
	}
	router := newProviderRouter(providerSvc)

	w := doJSON(router, http.MethodGet, "/inquiries?status=OPEN&limit=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := parseBody(t, w)
	if body["total"] != float64(12) {
		t.Errorf("expected total 12, got %v", body["total"])
	}
	inquiries, ok := body["inquiries"].([]any)
	if !ok || len(inquiries) != 1 {
		t.Errorf("expected 1 inquiry in page, got %v", body["inquiries"])
	}
}

func TestProviderHandlers_UpdateInquiryStatus(t *testing.T) {
	tests := []struct {
		name     string
		svcErr   error
		wantCode int
	}{
		{"success", nil, http.StatusOK},
		{"not found", domain.ErrInquiryNotFound, http.StatusNotFound},
		{"foreign inquiry", domain.ErrNotInquiryOwner, http.StatusForbidden},
		{"bad status", domain.ErrInvalidStatus, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providerSvc := mocks.NewMockProviderService()
			if tt.svcErr != nil {
				providerSvc.UpdateInquiryStatusFunc = func(ctx context.Context, userID, inquiryID uint, status string) error {
					return tt.svcErr
				}
			}
			router := newProviderRouter(providerSvc)

			w := doJSON(router, http.MethodPut, "/inquiries/8/status", gin.H{"status": "RESPONDED"})
			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
		})
	}
}
