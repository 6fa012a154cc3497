package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"larder/internal/inventory"
	"larder/internal/models"
	"larder/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// ingredientRequest is the write shape for creating or updating stock.
// OtherLocation lets the user type a free-text storage place, which is
// created as a location master on the fly.
type ingredientRequest struct {
	Name          string  `json:"name" binding:"required"`
	CategoryID    *uint   `json:"category_id"`
	LocationID    uint    `json:"location_id"`
	OtherLocation string  `json:"other_location"`
	ExpiryDate    string  `json:"expiry_date" binding:"required"`
	Quantity      int     `json:"quantity"`
	Price         *int64  `json:"price"`
	StoreName     *string `json:"store_name"`
}

// ingredientResponse enriches the stored row with the derived expiry
// classification.
type ingredientResponse struct {
	models.Ingredient
	DaysLeft int                     `json:"days_left"`
	Status   models.IngredientStatus `json:"status"`
}

func toResponse(ing models.Ingredient) ingredientResponse {
	now := time.Now()
	return ingredientResponse{
		Ingredient: ing,
		DaysLeft:   ing.DaysLeft(now),
		Status:     ing.Status(now),
	}
}

// ListIngredients returns the caller's stock ordered by ascending expiry
// date. Supports ?category=<id> and ?expiring_within=<days> filters.
func (a *API) ListIngredients(c *gin.Context) {
	var filter store.IngredientFilter
	if v := c.Query("category"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}
		cid := uint(id)
		filter.CategoryID = &cid
	}
	if v := c.Query("expiring_within"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expiring_within"})
			return
		}
		filter.ExpiringWithinDays = &days
	}

	ings, err := a.store.ListIngredients(owner(c), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]ingredientResponse, 0, len(ings))
	for _, ing := range ings {
		out = append(out, toResponse(ing))
	}
	c.JSON(http.StatusOK, out)
}

// CreateIngredient registers a new stock record for the caller.
func (a *API) CreateIngredient(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ing, err := a.ingredientFromRequest(c, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ing.Owner = owner(c)

	if err := a.store.CreateIngredient(ing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toResponse(*ing))
}

// GetIngredient returns one of the caller's stock records.
func (a *API) GetIngredient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	ing, err := a.store.GetIngredient(owner(c), id)
	if err != nil {
		a.renderStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(*ing))
}

// UpdateIngredient edits one of the caller's stock records.
func (a *API) UpdateIngredient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	existing, err := a.store.GetIngredient(owner(c), id)
	if err != nil {
		a.renderStoreError(c, err)
		return
	}

	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := a.ingredientFromRequest(c, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing.Name = updated.Name
	existing.CategoryID = updated.CategoryID
	existing.Category = nil
	existing.LocationID = updated.LocationID
	existing.Location = nil
	existing.ExpiryDate = updated.ExpiryDate
	existing.Quantity = updated.Quantity
	existing.Price = updated.Price
	existing.StoreName = updated.StoreName

	if err := a.store.SaveIngredient(existing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toResponse(*existing))
}

// DeleteIngredient discards one of the caller's stock records, recording
// the remaining quantity into usage history.
func (a *API) DeleteIngredient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.manager.Discard(owner(c), id); err != nil {
		a.renderStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ingredient discarded"})
}

// UseIngredient consumes an amount of one ingredient. Using at least the
// quantity on hand consumes everything and removes the row.
func (a *API) UseIngredient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Amount int `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := a.manager.Decrement(owner(c), id, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

// BulkOperate applies "delete" or "use" to a selection of the caller's
// ingredients.
func (a *API) BulkOperate(c *gin.Context) {
	var req struct {
		IDs    []uint `json:"ids"`
		Action string `json:"action"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := a.manager.BulkOperate(owner(c), req.IDs, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrEmptySelection):
			c.JSON(http.StatusBadRequest, gin.H{"warning": "no items selected"})
		case errors.Is(err, inventory.ErrUnknownAction):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// ListQuickAdd returns the templates available for one-tap registration.
func (a *API) ListQuickAdd(c *gin.Context) {
	templates, err := a.store.ListQuickAddIngredients()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, templates)
}

// QuickAdd instantiates an ingredient from a template with today's date as
// the expiry. The new record is returned for the client to route to edit.
func (a *API) QuickAdd(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	ing, err := a.manager.QuickAdd(owner(c), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		case errors.Is(err, inventory.ErrNoDefaultLocation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "template has no default location"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, toResponse(*ing))
}

// ingredientFromRequest resolves the request into a stock record,
// creating a location master when a free-text one was typed.
func (a *API) ingredientFromRequest(_ *gin.Context, req *ingredientRequest) (*models.Ingredient, error) {
	expiry, err := time.Parse(dateLayout, req.ExpiryDate)
	if err != nil {
		return nil, errors.New("expiry_date must be YYYY-MM-DD")
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	locationID := req.LocationID
	if req.OtherLocation != "" {
		loc, err := a.store.GetOrCreateLocation(req.OtherLocation)
		if err != nil {
			return nil, err
		}
		locationID = loc.ID
	}
	if locationID == 0 {
		return nil, errors.New("location_id or other_location is required")
	}

	return &models.Ingredient{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		LocationID: locationID,
		ExpiryDate: expiry,
		Quantity:   quantity,
		Price:      req.Price,
		StoreName:  req.StoreName,
	}, nil
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func (a *API) renderStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrLocationInUse):
		c.JSON(http.StatusConflict, gin.H{"error": "location still referenced by ingredients"})
	default:
		a.log.Error("store error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
