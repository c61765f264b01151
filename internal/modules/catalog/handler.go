package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photobooking/internal/pkg/response"
)

// Handler exposes read-through catalog endpoints so the configurator UI talks
// to a single origin.
type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog/services", h.ListServices)
	rg.GET("/catalog/addons", h.ListAddons)
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.client.Services(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusBadGateway, "CATALOG_ERROR", "Failed to load services")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": services})
}

func (h *Handler) ListAddons(c *gin.Context) {
	serviceName := c.Query("service_name")
	if serviceName == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "service_name is required")
		return
	}

	addons, err := h.client.AddonsForService(c.Request.Context(), serviceName)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "CATALOG_ERROR", "Failed to load addons")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"addons": addons})
}
