package draft

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"photobooking/internal/domain"
	"photobooking/internal/middleware"
	"photobooking/internal/modules/catalog"
	"photobooking/internal/pkg/response"
	"photobooking/internal/pkg/validator"
)

type Handler struct {
	store   *Store
	catalog CatalogReader
	proofs  ProofSaver
	tokens  TokenIssuer
}

func NewHandler(store *Store, catalogReader CatalogReader, proofs ProofSaver, tokens TokenIssuer) *Handler {
	return &Handler{store: store, catalog: catalogReader, proofs: proofs, tokens: tokens}
}

// RegisterPublicRoutes mounts the one route that needs no instance token.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/drafts", h.Create)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/drafts/current", h.GetCurrent)
	rg.PUT("/drafts/service", h.SelectService)
	rg.PUT("/drafts/addons", h.SetAddon)
	rg.PUT("/drafts/schedule", h.SetSchedule)
	rg.PUT("/drafts/contact", h.SetContact)
	rg.PUT("/drafts/payment", h.SetPayment)
	rg.POST("/drafts/proof", h.UploadProof)
	rg.DELETE("/drafts", h.Cancel)
}

func (h *Handler) Create(c *gin.Context) {
	d, err := h.store.Create(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create draft")
		return
	}

	tok, err := h.tokens.IssueDraftToken(d.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue draft token")
		return
	}

	response.Success(c, http.StatusCreated, CreateDraftResponse{DraftID: d.ID, Token: tok})
}

func (h *Handler) GetCurrent(c *gin.Context) {
	d, err := h.store.Get(c.Request.Context(), middleware.DraftID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": d})
}

func (h *Handler) SelectService(c *gin.Context) {
	var req SelectServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc, err := h.catalog.ServiceByID(c.Request.Context(), req.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "SERVICE_NOT_FOUND", "Service not found or inactive")
			return
		}
		response.Error(c, http.StatusBadGateway, "CATALOG_ERROR", "Failed to load service")
		return
	}

	d, err := h.store.SelectService(c.Request.Context(), middleware.DraftID(c), *svc)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": d})
}

func (h *Handler) SetAddon(c *gin.Context) {
	var req SetAddonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	draftID := middleware.DraftID(c)
	current, err := h.store.Get(c.Request.Context(), draftID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if current.Service == nil {
		h.fail(c, ErrNoService)
		return
	}

	sel := domain.AddonSelection{AddonID: req.AddonID, Quantity: req.Quantity}
	if req.Quantity >= 1 {
		// Snapshot name and price at selection time so later catalog changes
		// cannot move this draft.
		addons, err := h.catalog.AddonsForService(c.Request.Context(), current.Service.Name)
		if err != nil {
			response.Error(c, http.StatusBadGateway, "CATALOG_ERROR", "Failed to load addons")
			return
		}
		found := false
		for _, a := range addons {
			if a.ID == req.AddonID {
				sel.Name = a.Name
				sel.PriceAtBooking = a.Price
				found = true
				break
			}
		}
		if !found {
			h.fail(c, ErrAddonNotFound)
			return
		}
	}

	d, err := h.store.SetAddon(c.Request.Context(), draftID, sel)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": d})
}

func (h *Handler) SetSchedule(c *gin.Context) {
	var req SetScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d, err := h.store.SetSchedule(c.Request.Context(), middleware.DraftID(c), domain.Schedule{
		Date:         req.Date,
		Time:         req.Time,
		LocationLink: req.LocationLink,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": d})
}

func (h *Handler) SetContact(c *gin.Context) {
	var req SetContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid contact details", details)
		return
	}

	d, err := h.store.SetContact(c.Request.Context(), middleware.DraftID(c), domain.Contact{
		Name:     req.Name,
		WhatsApp: req.WhatsApp,
		Notes:    req.Notes,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": d})
}

func (h *Handler) SetPayment(c *gin.Context) {
	var req SetPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d, err := h.store.SetDPAmount(c.Request.Context(), middleware.DraftID(c), req.DPAmount)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": d})
}

func (h *Handler) UploadProof(c *gin.Context) {
	fileHeader, err := c.FormFile("payment_proof")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "payment_proof file is required")
		return
	}

	draftID := middleware.DraftID(c)
	path, url, err := h.proofs.SaveProof(c.Request.Context(), draftID, fileHeader)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "UPLOAD_ERROR", err.Error())
		return
	}

	d, err := h.store.SetProof(c.Request.Context(), draftID, path, url)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": d})
}

func (h *Handler) Cancel(c *gin.Context) {
	if err := h.store.Reset(c.Request.Context(), middleware.DraftID(c)); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel draft")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "DRAFT_NOT_FOUND", "Draft not found")
	case errors.Is(err, ErrNoService):
		response.Error(c, http.StatusConflict, "NO_SERVICE", "Select a service before adding add-ons")
	case errors.Is(err, ErrAddonNotFound):
		response.Error(c, http.StatusNotFound, "ADDON_NOT_FOUND", "Addon not available for this service")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Draft operation failed")
	}
}
