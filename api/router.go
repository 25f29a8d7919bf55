package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/notiontext/api/handler"
	"github.com/use-agent/notiontext/api/middleware"
	"github.com/use-agent/notiontext/config"
	"github.com/use-agent/notiontext/models"
	"github.com/use-agent/notiontext/scraper"
)

// NewRouter creates a configured Gin engine.
//
// Middleware chain: Recovery → Logger → CORS → RateLimit (if enabled).
//
// The service exposes a single resource: GET /scrape. OPTIONS requests are
// answered by the CORS middleware before routing, and every other path falls
// through to the NoRoute hint. The CORS header set travels on all of them.
func NewRouter(prov scraper.Provisioner, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.CORS(cfg.CORS))

	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.RateLimit))
	}

	r.GET("/scrape", handler.Scrape(prov, cfg))

	r.NoRoute(func(c *gin.Context) {
		c.IndentedJSON(http.StatusNotFound, models.ErrorResponse{
			Error: "Use /scrape endpoint with ?url=<notion-url>",
		})
	})

	return r
}
