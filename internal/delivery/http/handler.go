package http

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantryrank/backend/internal/domain"
	"github.com/pantryrank/backend/internal/infrastructure/inventory"
	"github.com/pantryrank/backend/internal/usecase"
)

const (
	serviceName    = "pantryrank-backend"
	serviceVersion = "1.0.0"
)

// Where the inventory for a request came from
const (
	inventorySourceSample   = "sample"
	inventorySourceUploaded = "uploaded"
	inventorySourceRequest  = "request"
)

// Recommender is the recipe ranking surface the handlers need
type Recommender interface {
	SearchRecipes(ctx context.Context, query domain.RecipeSearchQuery, inv domain.Inventory) (*usecase.SearchResult, error)
	GetRecipe(ctx context.Context, id int, inv domain.Inventory) (*domain.Recipe, error)
	MatchIngredient(ingredient string, inv domain.Inventory) (*usecase.MatchExplanation, error)
}

// InventoryStore keeps uploaded inventories between requests
type InventoryStore interface {
	Save(ctx context.Context, inv domain.Inventory) (string, error)
	Load(ctx context.Context, id string) (domain.Inventory, error)
}

// MatchingInfo is reported by the info endpoint
type MatchingInfo struct {
	FuzzyThreshold int    `json:"fuzzyThreshold"`
	Algorithm      string `json:"algorithm"`
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recommender Recommender
	inventories InventoryStore
	matching    MatchingInfo
	logger      *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(recommender Recommender, inventories InventoryStore, matching MatchingInfo, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		recommender: recommender,
		inventories: inventories,
		matching:    matching,
		logger:      logger,
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// inventoryRequest is embedded by requests that may carry or reference an inventory
type inventoryRequest struct {
	InventoryID string                 `json:"inventoryId"`
	Pantry      []domain.InventoryItem `json:"pantry"`
	Commissary  []domain.InventoryItem `json:"commissary"`
}

type searchRequest struct {
	Query              string   `json:"query"`
	Type               string   `json:"type"`
	Cuisine            string   `json:"cuisine"`
	Diet               string   `json:"diet"`
	Intolerances       string   `json:"intolerances"`
	IncludeIngredients []string `json:"includeIngredients"`
	Number             int      `json:"number"`
	Offset             int      `json:"offset"`
	inventoryRequest
}

type searchResponse struct {
	*usecase.SearchResult
	InventorySource string `json:"inventorySource"`
}

type matchRequest struct {
	Ingredient string `json:"ingredient" binding:"required"`
	inventoryRequest
}

type uploadedList struct {
	Filename  string               `json:"filename"`
	Format    string               `json:"format"`
	Items     int                  `json:"items"`
	RowErrors []inventory.RowError `json:"rowErrors,omitempty"`
}

type uploadResponse struct {
	InventoryID string        `json:"inventoryId"`
	Pantry      *uploadedList `json:"pantry,omitempty"`
	Commissary  *uploadedList `json:"commissary,omitempty"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// Info describes the API surface and the active matcher settings
func (h *Handler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":  serviceName,
		"version":  serviceVersion,
		"matching": h.matching,
		"tiers":    []domain.Tier{domain.TierPantry, domain.TierCommissary, domain.TierStore},
		"endpoints": gin.H{
			"health":       "GET /health",
			"upload":       "POST /api/v1/inventory/upload",
			"search":       "POST /api/v1/recipes/search",
			"recipe":       "GET /api/v1/recipes/:id",
			"matchExplain": "POST /api/v1/ingredients/match",
		},
	})
}

// UploadInventory parses pantry and commissary sheets (CSV or xlsx) and stores them for later requests
func (h *Handler) UploadInventory(c *gin.Context) {
	pantryFile, _ := c.FormFile("pantry")
	commissaryFile, _ := c.FormFile("commissary")
	if pantryFile == nil && commissaryFile == nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "No files uploaded",
			Code:    "INVALID_REQUEST",
			Message: "Please upload at least one file (pantry or commissary)",
		})
		return
	}

	var (
		inv  domain.Inventory
		resp uploadResponse
		err  error
	)
	if pantryFile != nil {
		if inv.Pantry, resp.Pantry, err = parseUpload(pantryFile); err != nil {
			h.writeError(c, err)
			return
		}
	}
	if commissaryFile != nil {
		if inv.Commissary, resp.Commissary, err = parseUpload(commissaryFile); err != nil {
			h.writeError(c, err)
			return
		}
	}

	if resp.InventoryID, err = h.inventories.Save(c.Request.Context(), inv); err != nil {
		h.writeError(c, err)
		return
	}

	h.logger.Info("inventory uploaded",
		zap.String("inventory_id", resp.InventoryID),
		zap.Int("pantry", len(inv.Pantry)),
		zap.Int("commissary", len(inv.Commissary)))
	c.JSON(http.StatusCreated, resp)
}

func parseUpload(header *multipart.FileHeader) ([]domain.InventoryItem, *uploadedList, error) {
	format, err := inventory.DetectFormat(header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		return nil, nil, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	items, rowErrors, err := inventory.Parse(format, f)
	if err != nil {
		return nil, nil, err
	}
	return items, &uploadedList{Filename: header.Filename, Format: format, Items: len(items), RowErrors: rowErrors}, nil
}

// SearchRecipes returns recipes ranked by how much of each the inventory covers
func (h *Handler) SearchRecipes(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(c, badRequest(err))
		return
	}

	inv, source, err := h.resolveInventory(c.Request.Context(), req.inventoryRequest)
	if err != nil {
		h.writeError(c, err)
		return
	}

	result, err := h.recommender.SearchRecipes(c.Request.Context(), domain.RecipeSearchQuery{
		Query:              req.Query,
		DishType:           req.Type,
		Cuisine:            req.Cuisine,
		Diet:               req.Diet,
		Intolerances:       req.Intolerances,
		IncludeIngredients: req.IncludeIngredients,
		Number:             req.Number,
		Offset:             req.Offset,
	}, inv)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, searchResponse{SearchResult: result, InventorySource: source})
}

// GetRecipe returns one recipe with its ingredient analysis
func (h *Handler) GetRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.writeError(c, domain.ErrInvalidRequest)
		return
	}

	inv, _, err := h.resolveInventory(c.Request.Context(), inventoryRequest{InventoryID: c.Query("inventoryId")})
	if err != nil {
		h.writeError(c, err)
		return
	}

	recipe, err := h.recommender.GetRecipe(c.Request.Context(), id, inv)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// MatchIngredient explains how a single ingredient resolves against the inventory
func (h *Handler) MatchIngredient(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, badRequest(err))
		return
	}

	inv, _, err := h.resolveInventory(c.Request.Context(), req.inventoryRequest)
	if err != nil {
		h.writeError(c, err)
		return
	}

	explanation, err := h.recommender.MatchIngredient(req.Ingredient, inv)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, explanation)
}

// resolveInventory prefers a stored inventory, then inline lists, then the sample data
func (h *Handler) resolveInventory(ctx context.Context, req inventoryRequest) (domain.Inventory, string, error) {
	if id := strings.TrimSpace(req.InventoryID); id != "" {
		inv, err := h.inventories.Load(ctx, id)
		if err != nil {
			return domain.Inventory{}, "", err
		}
		return inv, inventorySourceUploaded, nil
	}

	inv := domain.Inventory{Pantry: req.Pantry, Commissary: req.Commissary}
	if !inv.Empty() {
		return inv, inventorySourceRequest, nil
	}
	return inventory.SampleInventory(), inventorySourceSample, nil
}

type requestError struct{ err error }

func (e requestError) Error() string { return e.err.Error() }
func (e requestError) Unwrap() error { return domain.ErrInvalidRequest }

func badRequest(err error) error {
	return requestError{err: err}
}

// writeError maps domain errors onto HTTP statuses
func (h *Handler) writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	status, code, msg := http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status, code, msg = http.StatusBadRequest, "INVALID_REQUEST", "Invalid request"
	case errors.Is(err, domain.ErrInvalidInventory):
		status, code, msg = http.StatusBadRequest, "INVALID_INVENTORY", "Invalid inventory file"
	case errors.Is(err, domain.ErrInventoryNotFound):
		status, code, msg = http.StatusNotFound, "INVENTORY_NOT_FOUND", "Inventory not found"
	case errors.Is(err, domain.ErrRecipeNotFound):
		status, code, msg = http.StatusNotFound, "RECIPE_NOT_FOUND", "Recipe not found"
	case errors.Is(err, domain.ErrQuotaExceeded):
		status, code, msg = http.StatusPaymentRequired, "QUOTA_EXCEEDED", "Recipe API quota exceeded"
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrRecipeAPIFailure):
		status, code, msg = http.StatusBadGateway, "UPSTREAM_ERROR", "Recipe API unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		status, code, msg = http.StatusGatewayTimeout, "TIMEOUT", "Request timed out"
	}

	resp := errorResponse{Error: msg, Code: code}
	if status < http.StatusInternalServerError {
		resp.Message = err.Error()
	}
	c.JSON(status, resp)
}
