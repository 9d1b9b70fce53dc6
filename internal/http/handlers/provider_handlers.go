package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abdullahsadik00/craftconnect/domain"
)

// ProviderHandlers handles provider profile, portfolio and inquiry requests
type ProviderHandlers struct {
	providerSvc domain.ProviderService
}

// NewProviderHandlers creates new provider handlers
func NewProviderHandlers(providerSvc domain.ProviderService) *ProviderHandlers {
	return &ProviderHandlers{providerSvc: providerSvc}
}

// ProviderRequest represents profile create/update payloads
type ProviderRequest struct {
	BusinessName string `json:"businessName" binding:"required,min=2"`
	Description  string `json:"description"`
	Category     string `json:"category" binding:"required"`
	City         string `json:"city" binding:"required"`
	ContactEmail string `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone string `json:"contactPhone" binding:"omitempty,e164"`
}

// PortfolioItemRequest represents a portfolio item payload
type PortfolioItemRequest struct {
	Title    string `json:"title" binding:"required"`
	ImageURL string `json:"imageUrl" binding:"required,url"`
}

// ReorderRequest carries the full portfolio order, first to last
type ReorderRequest struct {
	ItemIDs []uint `json:"itemIds" binding:"required,min=1"`
}

// InquiryRequest represents an inquiry submission
type InquiryRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// InquiryStatusRequest represents an inquiry status change
type InquiryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// List handles public provider listing with filters and pagination
func (h *ProviderHandlers) List(c *gin.Context) {
	filter := domain.ProviderFilter{
		Category: c.Query("category"),
		City:     c.Query("city"),
		Limit:    queryInt(c, "limit", 0),
		Offset:   queryInt(c, "offset", 0),
	}

	providers, err := h.providerSvc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list providers"})
		return
	}

	out := make([]gin.H, 0, len(providers))
	for _, p := range providers {
		out = append(out, providerJSON(p))
	}
	c.JSON(http.StatusOK, gin.H{"providers": out})
}

// Get handles public provider detail including portfolio
func (h *ProviderHandlers) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider ID"})
		return
	}

	provider, err := h.providerSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProviderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get provider"})
		return
	}

	items, err := h.providerSvc.Portfolio(c.Request.Context(), provider.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get portfolio"})
		return
	}

	body := providerJSON(provider)
	body["portfolio"] = portfolioJSON(items)
	c.JSON(http.StatusOK, gin.H{"provider": body})
}

// Create handles provider profile creation for the authenticated user
func (h *ProviderHandlers) Create(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	var req ProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	provider, err := h.providerSvc.CreateProfile(c.Request.Context(), userID, &domain.Provider{
		BusinessName: req.BusinessName,
		Description:  req.Description,
		Category:     req.Category,
		City:         req.City,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		if errors.Is(err, domain.ErrProviderExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "Provider profile already exists", "code": "CONFLICT"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create provider profile"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"provider": providerJSON(provider)})
}

// Update handles provider profile updates for the authenticated user
func (h *ProviderHandlers) Update(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	var req ProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	provider, err := h.providerSvc.UpdateProfile(c.Request.Context(), userID, &domain.Provider{
		BusinessName: req.BusinessName,
		Description:  req.Description,
		Category:     req.Category,
		City:         req.City,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		if errors.Is(err, domain.ErrProviderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update provider profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"provider": providerJSON(provider)})
}

// AddPortfolioItem appends a work sample to the caller's portfolio
func (h *ProviderHandlers) AddPortfolioItem(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	var req PortfolioItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	item, err := h.providerSvc.AddPortfolioItem(c.Request.Context(), userID, &domain.PortfolioItem{
		Title:    req.Title,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, domain.ErrProviderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add portfolio item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": portfolioItemJSON(item)})
}

// RemovePortfolioItem deletes a work sample from the caller's portfolio
func (h *ProviderHandlers) RemovePortfolioItem(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	itemID, err := pathID(c, "itemID")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	if err := h.providerSvc.RemovePortfolioItem(c.Request.Context(), userID, itemID); err != nil {
		switch {
		case errors.Is(err, domain.ErrProviderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider profile not found"})
		case errors.Is(err, domain.ErrPortfolioNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio item not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove portfolio item"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Portfolio item removed"})
}

// ReorderPortfolio rewrites the display order of the caller's portfolio
func (h *ProviderHandlers) ReorderPortfolio(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.providerSvc.ReorderPortfolio(c.Request.Context(), userID, req.ItemIDs); err != nil {
		switch {
		case errors.Is(err, domain.ErrProviderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider profile not found"})
		case errors.Is(err, domain.ErrPortfolioNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order must include every portfolio item exactly once"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder portfolio"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Portfolio reordered"})
}

// SubmitInquiry creates an inquiry from the authenticated customer
func (h *ProviderHandlers) SubmitInquiry(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	providerID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider ID"})
		return
	}

	var req InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	inquiry, err := h.providerSvc.SubmitInquiry(c.Request.Context(), userID, providerID, req.Subject, req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrProviderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit inquiry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"inquiry": inquiryJSON(inquiry)})
}

// ListInquiries returns the authenticated provider's inbox
func (h *ProviderHandlers) ListInquiries(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	filter := domain.InquiryFilter{
		Status: c.Query("status"),
		Limit:  queryInt(c, "limit", 0),
		Offset: queryInt(c, "offset", 0),
	}

	inquiries, total, err := h.providerSvc.ListInquiries(c.Request.Context(), userID, filter)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProviderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider profile not found"})
		case errors.Is(err, domain.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inquiry status"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list inquiries"})
		}
		return
	}

	out := make([]gin.H, 0, len(inquiries))
	for _, inq := range inquiries {
		out = append(out, inquiryJSON(inq))
	}
	c.JSON(http.StatusOK, gin.H{"inquiries": out, "total": total})
}

// UpdateInquiryStatus moves an inquiry through its lifecycle
func (h *ProviderHandlers) UpdateInquiryStatus(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	inquiryID, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inquiry ID"})
		return
	}

	var req InquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.providerSvc.UpdateInquiryStatus(c.Request.Context(), userID, inquiryID, req.Status); err != nil {
		switch {
		case errors.Is(err, domain.ErrInquiryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Inquiry not found"})
		case errors.Is(err, domain.ErrNotInquiryOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access Denied"})
		case errors.Is(err, domain.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inquiry status"})
		case errors.Is(err, domain.ErrProviderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider profile not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update inquiry"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Inquiry updated"})
}

func providerJSON(p *domain.Provider) gin.H {
	return gin.H{
		"id":           p.ID,
		"userId":       p.UserID,
		"businessName": p.BusinessName,
		"description":  p.Description,
		"category":     p.Category,
		"city":         p.City,
		"contactEmail": p.ContactEmail,
		"contactPhone": p.ContactPhone,
		"createdAt":    p.CreatedAt,
		"updatedAt":    p.UpdatedAt,
	}
}

func portfolioJSON(items []*domain.PortfolioItem) []gin.H {
	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, portfolioItemJSON(item))
	}
	return out
}

func portfolioItemJSON(item *domain.PortfolioItem) gin.H {
	return gin.H{
		"id":         item.ID,
		"providerId": item.ProviderID,
		"title":      item.Title,
		"imageUrl":   item.ImageURL,
		"position":   item.Position,
		"createdAt":  item.CreatedAt,
	}
}

func inquiryJSON(inq *domain.Inquiry) gin.H {
	return gin.H{
		"id":         inq.ID,
		"providerId": inq.ProviderID,
		"customerId": inq.CustomerID,
		"subject":    inq.Subject,
		"message":    inq.Message,
		"status":     inq.Status,
		"createdAt":  inq.CreatedAt,
		"updatedAt":  inq.UpdatedAt,
	}
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(id), err
}

// queryInt parses an optional integer query parameter.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
