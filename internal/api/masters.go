package api

import (
	"net/http"

	"larder/internal/models"

	"github.com/gin-gonic/gin"
)

type masterRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListLocations returns all storage-place masters.
func (a *API) ListLocations(c *gin.Context) {
	locs, err := a.store.ListLocations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, locs)
}

// CreateLocation adds a storage-place master.
func (a *API) CreateLocation(c *gin.Context) {
	var req masterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	loc := models.Location{Name: req.Name}
	if err := a.store.CreateLocation(&loc); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "location already exists"})
		return
	}
	c.JSON(http.StatusCreated, loc)
}

// DeleteLocation removes a storage-place master. Responds 409 while
// ingredients still reference it.
func (a *API) DeleteLocation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.store.DeleteLocation(id); err != nil {
		a.renderStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Location deleted"})
}

// ListCategories returns all category masters.
func (a *API) ListCategories(c *gin.Context) {
	cats, err := a.store.ListCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cats)
}

// CreateCategory adds a category master.
func (a *API) CreateCategory(c *gin.Context) {
	var req masterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat := models.Category{Name: req.Name}
	if err := a.store.CreateCategory(&cat); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "category already exists"})
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// DeleteCategory removes a category master; ingredient and template
// references are nulled, not cascaded.
func (a *API) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.store.DeleteCategory(id); err != nil {
		a.renderStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
