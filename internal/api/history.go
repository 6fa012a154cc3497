package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListHistory returns the caller's usage history, newest first.
func (a *API) ListHistory(c *gin.Context) {
	history, err := a.store.ListUsage(owner(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, history)
}

// SpendSummary returns the caller's spend totals grouped by calendar month
// and by snapshotted category.
func (a *API) SpendSummary(c *gin.Context) {
	summary, err := a.manager.SpendSummary(owner(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
