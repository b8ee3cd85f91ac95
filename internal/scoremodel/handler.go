package scoremodel

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

//
// --------------------------------------------------
// GET /models
// --------------------------------------------------
//

func (h *Handler) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"models": h.service.List()})
	}
}

//
// --------------------------------------------------
// GET /models/:name
// --------------------------------------------------
//

func (h *Handler) Get() gin.HandlerFunc {
	return func(c *gin.Context) {

		m, err := h.service.Get(c.Param("name"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, m)
	}
}

//
// --------------------------------------------------
// POST /admin/models
// --------------------------------------------------
//

// Publish answers 201 once the model is stored, even if the catalog refresh
// that follows fails; the model is then served after the next reload.
func (h *Handler) Publish() gin.HandlerFunc {
	return func(c *gin.Context) {

		m, err := Decode(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rec, err := h.service.Publish(c.Request.Context(), m)
		switch {
		case errors.Is(err, ErrReadOnly):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		case errors.Is(err, ErrInvalidModel), errors.Is(err, ErrModelNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case err != nil:
			log.Printf("[MODELS] publish %s failed: %v", m.Name, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to publish model"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "model published",
			"id":      rec.ID,
			"name":    rec.Name,
			"version": rec.Version,
		})
	}
}
