package coupon

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"photobooking/internal/domain"
	"photobooking/internal/middleware"
	"photobooking/internal/modules/draft"
	"photobooking/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Handler struct {
	service         *Service
	hub             *Hub
	suggestInterval time.Duration
}

func NewHandler(service *Service, hub *Hub, suggestInterval time.Duration) *Handler {
	if suggestInterval <= 0 {
		suggestInterval = 30 * time.Second
	}
	return &Handler{service: service, hub: hub, suggestInterval: suggestInterval}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/coupon/apply", h.Apply)
	rg.DELETE("/coupon", h.Remove)
	rg.GET("/coupon/suggestions", h.Suggestions)
	rg.GET("/coupon/ws", h.SuggestStream)
}

type applyRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *Handler) Apply(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "EMPTY_CODE", "Coupon code is required")
		return
	}

	result, err := h.service.Apply(c.Request.Context(), middleware.DraftID(c), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCode):
			response.Error(c, http.StatusBadRequest, "EMPTY_CODE", "Coupon code is required")
		case errors.Is(err, ErrZeroSubtotal):
			response.Error(c, http.StatusBadRequest, "ZERO_SUBTOTAL", "Select a service before applying a coupon")
		case errors.Is(err, ErrUnavailable):
			response.Error(c, http.StatusBadGateway, "COUPON_SERVICE_ERROR", "Coupon validation is temporarily unavailable")
		case errors.Is(err, draft.ErrNotFound):
			response.Error(c, http.StatusNotFound, "DRAFT_NOT_FOUND", "Draft not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to apply coupon")
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Remove(c *gin.Context) {
	d, err := h.service.Remove(c.Request.Context(), middleware.DraftID(c))
	if err != nil {
		if errors.Is(err, draft.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "DRAFT_NOT_FOUND", "Draft not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to remove coupon")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": d})
}

func (h *Handler) Suggestions(c *gin.Context) {
	coupons, err := h.service.Suggest(c.Request.Context(), middleware.DraftID(c))
	if err != nil {
		if errors.Is(err, draft.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "DRAFT_NOT_FOUND", "Draft not found")
			return
		}
		// Suggestions are not a critical path; an empty list is a fine answer.
		response.Success(c, http.StatusOK, gin.H{"coupons": []interface{}{}})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"coupons": coupons})
}

// SuggestStream upgrades to a websocket and pushes each suggestion poll to the
// client. The poll loop dies with the connection, so no update can land after
// the configurator is torn down.
func (h *Handler) SuggestStream(c *gin.Context) {
	draftID := middleware.DraftID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	h.hub.Register(draftID, conn)

	// The request context dies when this handler returns; the loop's lifetime
	// is the connection's instead.
	ctx, cancel := context.WithCancel(context.Background())

	go h.service.RunSuggestLoop(ctx, draftID, h.suggestInterval, func(coupons []domain.CouponDescriptor) {
		h.hub.SendToDraft(draftID, gin.H{"type": "coupon_suggestions", "coupons": coupons})
	})

	go func() {
		defer cancel()
		defer h.hub.Unregister(draftID)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
