package submission

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"photobooking/internal/middleware"
	"photobooking/internal/modules/draft"
	"photobooking/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/submit", h.Submit)
}

func (h *Handler) Submit(c *gin.Context) {
	result, err := h.service.Submit(c.Request.Context(), middleware.DraftID(c))
	if err != nil {
		var remote *RemoteError
		switch {
		case errors.Is(err, ErrNotReady):
			response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
				"Booking is not ready to submit", result.StepErrors)
		case errors.As(err, &remote):
			// The collaborator's message goes to the user verbatim.
			response.Error(c, http.StatusBadGateway, "BOOKING_REJECTED", remote.Message)
		case errors.Is(err, draft.ErrNotFound):
			response.Error(c, http.StatusNotFound, "DRAFT_NOT_FOUND", "Draft not found")
		default:
			response.Error(c, http.StatusBadGateway, "SUBMISSION_FAILED", "Failed to submit booking, please try again")
		}
		return
	}

	response.Success(c, http.StatusCreated, result)
}
