package garage

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"garagehub/internal/catalog"
	"garagehub/internal/loader"
	"garagehub/internal/query"
)

// Reloader is the part of the loader the handler needs.
type Reloader interface {
	Load(ctx context.Context) (*catalog.Snapshot, error)
	Status() loader.Status
}

type Handler struct {
	Views  *Views
	Loader Reloader
}

func NewHandler(views *Views, l Reloader) *Handler {
	return &Handler{Views: views, Loader: l}
}

func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/cars", h.list)                // GET /cars
	rg.GET("/cars/:id", h.getByID)         // GET /cars/:id
	rg.GET("/share", h.share)              // GET /share?car=name
	rg.GET("/filters", h.filters)          // GET /filters
	rg.GET("/exchange", h.exchange)        // GET /exchange
	rg.GET("/home", h.home)                // GET /home
	rg.GET("/gifters/:name", h.gifts)      // GET /gifters/:name
	rg.GET("/catalog/status", h.status)    // GET /catalog/status
	rg.POST("/catalog/refresh", h.refresh) // POST /catalog/refresh
}

// SpecFromQuery reads a query spec from URL parameters. Invalid values are
// left for the engine to replace with defaults.
func SpecFromQuery(c *gin.Context) query.Spec {
	return query.Spec{
		Text:              c.Query("q"),
		Manufacturer:      c.Query("manufacturer"),
		Series:            c.Query("series"),
		Brand:             c.Query("brand"),
		VariantsOnly:      parseBool(c.Query("variants")),
		DuplicatesOnly:    parseBool(c.Query("duplicates")),
		TreasureHuntsOnly: parseBool(c.Query("th")),
		Gifter:            c.Query("gifter"),
		Sort:              query.SortMode(c.Query("sort")),
		Page:              parseInt(c.Query("page"), 0),
		PageSize:          parseInt(c.Query("page_size"), 0),
	}
}

func (h *Handler) list(c *gin.Context) {
	c.JSON(http.StatusOK, h.Views.Cars(SpecFromQuery(c)))
}

func (h *Handler) exchange(c *gin.Context) {
	c.JSON(http.StatusOK, h.Views.Exchange(SpecFromQuery(c)))
}

func (h *Handler) getByID(c *gin.Context) {
	d, err := h.Views.Details(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) share(c *gin.Context) {
	name := c.Query("car")
	if strings.TrimSpace(name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "car is required"})
		return
	}
	d, err := h.Views.Share(name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) filters(c *gin.Context) {
	c.JSON(http.StatusOK, h.Views.Filters())
}

func (h *Handler) home(c *gin.Context) {
	c.JSON(http.StatusOK, h.Views.Home())
}

func (h *Handler) gifts(c *gin.Context) {
	g, err := h.Views.Gifts(c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *Handler) status(c *gin.Context) {
	c.JSON(http.StatusOK, h.Loader.Status())
}

func (h *Handler) refresh(c *gin.Context) {
	snap, err := h.Loader.Load(c.Request.Context())
	if err != nil {
		log.Warn().Err(err).Str("component", "garage").Msg("refresh failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error":  err.Error(),
			"status": h.Loader.Status(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"snapshot_id": snap.ID,
		"items":       snap.Len(),
		"status":      h.Loader.Status(),
	})
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}
