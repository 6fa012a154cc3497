package api

import (
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"larder/internal/models"
	"larder/internal/recipes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchRecipes looks up external recipes for ?q=<keyword>. An empty
// keyword returns an empty list without a network call; a fetch failure is
// reported, never passed off as an empty success.
func (a *API) SearchRecipes(c *gin.Context) {
	keyword := c.Query("q")
	limit := recipes.DefaultLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	if strings.TrimSpace(keyword) == "" {
		a.metrics.RecordSearch("skipped", 0)
		c.JSON(http.StatusOK, gin.H{"keyword": keyword, "results": []recipes.Summary{}})
		return
	}

	start := time.Now()
	results, err := a.connector.Search(c.Request.Context(), keyword, limit)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		a.metrics.RecordSearch("error", elapsed)
		a.log.Warn("recipe search failed", zap.String("keyword", keyword), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "recipe site fetch failed"})
		return
	}
	a.metrics.RecordSearch("ok", elapsed)

	a.cacheResults(results)
	c.JSON(http.StatusOK, gin.H{"keyword": keyword, "results": results})
}

// cacheResults stores the fetched summaries in the recipe table, keyed on
// the external recipe ID. Failures only log; the search response is what
// matters.
func (a *API) cacheResults(results []recipes.Summary) {
	for _, r := range results {
		id := externalRecipeID(r.URL)
		if id == "" {
			continue
		}
		rec := models.Recipe{RecipeID: id, Title: r.Title, URL: r.URL}
		if r.ImageURL != "" {
			img := r.ImageURL
			rec.ImageURL = &img
		}
		if err := a.store.UpsertRecipe(&rec); err != nil {
			a.log.Warn("recipe cache write failed", zap.String("recipe_id", id), zap.Error(err))
		}
	}
}

// externalRecipeID is the trailing path segment of the recipe URL.
func externalRecipeID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" || u.Path == "/" {
		return ""
	}
	return path.Base(u.Path)
}
