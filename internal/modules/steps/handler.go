package steps

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"photobooking/internal/middleware"
	"photobooking/internal/modules/draft"
	"photobooking/internal/pkg/response"
)

type Handler struct {
	machine *Machine
}

func NewHandler(machine *Machine) *Handler {
	return &Handler{machine: machine}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/steps", h.GetState)
	rg.POST("/steps/next", h.Next)
	rg.POST("/steps/prev", h.Prev)
	rg.POST("/steps/goto", h.GoTo)
	rg.POST("/steps/validate", h.Validate)
}

func (h *Handler) GetState(c *gin.Context) {
	st, err := h.machine.State(c.Request.Context(), middleware.DraftID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}

func (h *Handler) Next(c *gin.Context) {
	st, err := h.machine.Next(c.Request.Context(), middleware.DraftID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}

func (h *Handler) Prev(c *gin.Context) {
	st, err := h.machine.Prev(c.Request.Context(), middleware.DraftID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}

type goToRequest struct {
	Step int `json:"step" binding:"required"`
}

func (h *Handler) GoTo(c *gin.Context) {
	var req goToRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	st, err := h.machine.GoTo(c.Request.Context(), middleware.DraftID(c), req.Step)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}

type validateRequest struct {
	Step int `json:"step" binding:"required"`
}

func (h *Handler) Validate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	errs, err := h.machine.Validate(c.Request.Context(), middleware.DraftID(c), req.Step)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"step":   req.Step,
		"valid":  len(errs) == 0,
		"errors": errs,
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidStep):
		response.Error(c, http.StatusBadRequest, "INVALID_STEP", "Step out of range")
	case errors.Is(err, draft.ErrNotFound):
		response.Error(c, http.StatusNotFound, "DRAFT_NOT_FOUND", "Draft not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Step operation failed")
	}
}
