// Package api exposes the kitchen service over HTTP.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rasoimate/internal/donations"
	"rasoimate/internal/inventory"
	"rasoimate/internal/models"
	"rasoimate/internal/monitoring"
	"rasoimate/internal/recipes"
	"rasoimate/internal/report"
)

// Server is the HTTP surface over the inventory store, the recipe
// generator and the donation tracker.
type Server struct {
	Router    *gin.Engine
	store     *inventory.Store
	generator *recipes.Generator
	donations *donations.Tracker
	hub       *Hub
	now       func() time.Time
}

// NewServer wires the handlers and the websocket inventory feed
func NewServer(store *inventory.Store, generator *recipes.Generator, tracker *donations.Tracker) *Server {
	s := &Server{
		Router:    gin.Default(),
		store:     store,
		generator: generator,
		donations: tracker,
		hub:       NewHub(),
		now:       time.Now,
	}

	// Every mutation and scheduled recompute pushes the full collection
	// to connected websocket clients.
	store.Subscribe(s.hub.BroadcastInventory)

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "RasoiMate API is running"})
	})

	s.Router.GET("/ws", s.handleWebSocket)

	v1 := s.Router.Group("/api/v1")
	{
		// Inventory management
		v1.GET("/inventory", s.ListInventory)
		v1.POST("/inventory", s.AddItem)
		v1.PUT("/inventory/:id", s.UpdateItem)
		v1.DELETE("/inventory/:id", s.DeleteItem)

		// Recipe generation
		v1.POST("/recipes/generate", s.GenerateRecipe)

		// Donations
		v1.GET("/donations", s.GetDonationStats)
		v1.POST("/donations", s.Donate)
		v1.GET("/shelters", s.ListShelters)

		// Reports
		v1.GET("/reports/monthly", s.MonthlyReport)
	}
}

// Inventory handlers

func (s *Server) ListInventory(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Items())
}

func (s *Server) AddItem(c *gin.Context) {
	var draft models.ItemDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := s.store.Add(draft)
	if err != nil {
		s.renderError(c, err)
		return
	}

	monitoring.InventoryMutated("add", len(s.store.Items()))
	c.JSON(http.StatusCreated, item)
}

func (s *Server) UpdateItem(c *gin.Context) {
	var patch models.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := s.store.Update(c.Param("id"), patch)
	if err != nil {
		s.renderError(c, err)
		return
	}

	monitoring.InventoryMutated("update", len(s.store.Items()))
	c.JSON(http.StatusOK, item)
}

func (s *Server) DeleteItem(c *gin.Context) {
	// Deleting an unknown id is a no-op, not an error.
	s.store.Delete(c.Param("id"))
	monitoring.InventoryMutated("delete", len(s.store.Items()))
	c.Status(http.StatusNoContent)
}

// Recipe handlers

func (s *Server) GenerateRecipe(c *gin.Context) {
	var req models.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := s.generator.Generate(c.Request.Context(), req)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// Donation handlers

func (s *Server) GetDonationStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.donations.Stats())
}

func (s *Server) Donate(c *gin.Context) {
	c.JSON(http.StatusOK, s.donations.Donate())
}

func (s *Server) ListShelters(c *gin.Context) {
	c.JSON(http.StatusOK, donations.Shelters())
}

// Report handlers

func (s *Server) MonthlyReport(c *gin.Context) {
	c.JSON(http.StatusOK, report.BuildMonthly(s.store.Items(), s.now()))
}

// renderError maps domain error kinds to HTTP statuses
func (s *Server) renderError(c *gin.Context, err error) {
	var verr *models.ValidationError
	var nfe *models.NotFoundError
	var uerr *models.UpstreamError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.As(err, &nfe):
		c.JSON(http.StatusNotFound, gin.H{"error": nfe.Error()})
	case errors.As(err, &uerr):
		c.JSON(http.StatusBadGateway, gin.H{"error": uerr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
