package api

import (
	"net/http"

	"larder/internal/inventory"
	"larder/internal/monitoring"
	"larder/internal/recipes"
	"larder/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// API is the HTTP surface over the inventory manager, the data store and
// the recipe search connector.
type API struct {
	Router *gin.Engine

	store     *store.Store
	manager   *inventory.Manager
	connector *recipes.Connector
	metrics   *monitoring.Collector
	jwtSecret []byte
	log       *zap.Logger
}

// New creates the API and wires all routes.
func New(st *store.Store, mgr *inventory.Manager, conn *recipes.Connector, metrics *monitoring.Collector, jwtSecret string, log *zap.Logger) *API {
	router := gin.New()

	a := &API{
		Router:    router,
		store:     st,
		manager:   mgr,
		connector: conn,
		metrics:   metrics,
		jwtSecret: []byte(jwtSecret),
		log:       log,
	}

	router.Use(gin.Recovery(), a.requestLogger())
	a.setupRoutes()
	return a
}

// setupRoutes configures all API endpoints.
func (a *API) setupRoutes() {
	// Health check
	a.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := a.Router.Group("/api/v1")
	v1.Use(a.authRequired())
	{
		// Stock management
		v1.GET("/ingredients", a.ListIngredients)
		v1.POST("/ingredients", a.CreateIngredient)
		v1.GET("/ingredients/:id", a.GetIngredient)
		v1.PUT("/ingredients/:id", a.UpdateIngredient)
		v1.DELETE("/ingredients/:id", a.DeleteIngredient)
		v1.POST("/ingredients/:id/use", a.UseIngredient)
		v1.POST("/ingredients/bulk", a.BulkOperate)

		// Quick add templates
		v1.GET("/quick-add", a.ListQuickAdd)
		v1.POST("/quick-add/:id", a.QuickAdd)

		// Masters
		v1.GET("/locations", a.ListLocations)
		v1.POST("/locations", a.CreateLocation)
		v1.DELETE("/locations/:id", a.DeleteLocation)
		v1.GET("/categories", a.ListCategories)
		v1.POST("/categories", a.CreateCategory)
		v1.DELETE("/categories/:id", a.DeleteCategory)

		// Usage history and spend aggregation
		v1.GET("/history", a.ListHistory)
		v1.GET("/history/summary", a.SpendSummary)

		// External recipe lookup
		v1.GET("/recipes/search", a.SearchRecipes)
	}
}
