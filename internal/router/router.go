package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/auth"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/middleware"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoremodel"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoring"
)

type Handlers struct {
	Scoring *scoring.Handler
	Models  *scoremodel.Handler
}

func NewRouter(h Handlers, allowOrigins []string) *gin.Engine {
	r := gin.Default()

	if len(allowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     allowOrigins,
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── SCORING ─────────────────────────
	r.POST("/score", h.Scoring.Score())
	r.POST("/score/batch", h.Scoring.ScoreBatch())

	me := r.Group("/users/me")
	me.Use(middleware.AuthMiddleware())
	{
		me.POST("/score", h.Scoring.ScoreForUser())
	}

	// ───────────────────────── MODELS ─────────────────────────
	r.GET("/models", h.Models.List())
	r.GET("/models/:name", h.Models.Get())

	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		admin.POST("/models", h.Models.Publish())
	}

	return r
}
