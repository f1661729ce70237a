package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/justute/tutorboard-api/internal/service"
	appErrors "github.com/justute/tutorboard-api/pkg/errors"
	"github.com/justute/tutorboard-api/pkg/planner"
	"github.com/justute/tutorboard-api/pkg/response"
)

// AgendaHandler serves the day and month schedule views plus exports.
type AgendaHandler struct {
	service       *service.AgendaService
	exportEnabled bool
}

// NewAgendaHandler creates a new handler.
func NewAgendaHandler(svc *service.AgendaService, exportEnabled bool) *AgendaHandler {
	return &AgendaHandler{service: svc, exportEnabled: exportEnabled}
}

// Day returns the day view. The date query defaults to today.
func (h *AgendaHandler) Day(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	day := planner.KeyOf(time.Now().UTC())
	if raw := c.Query("date"); raw != "" {
		parsed, err := planner.ParseDayKey(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid date"))
			return
		}
		day = parsed
	}

	agenda, err := h.service.Day(c.Request.Context(), claims.UserID, day)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, agenda, nil)
}

// Month returns the 42-cell month grid. The month query defaults to the
// current month.
func (h *AgendaHandler) Month(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	ref := time.Now().UTC()
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid month"))
			return
		}
		ref = parsed
	}

	month, err := h.service.Month(c.Request.Context(), claims.UserID, ref)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, month, nil)
}

// Export streams the teacher's schedule between from and to as CSV or PDF.
func (h *AgendaHandler) Export(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if !h.exportEnabled {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "exports are disabled"))
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid from date"))
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid to date"))
		return
	}
	to = to.AddDate(0, 0, 1)

	format := c.DefaultQuery("format", "csv")
	payload, contentType, err := h.service.Export(c.Request.Context(), claims.UserID, from, to, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("schedule_%s.%s", time.Now().UTC().Format("20060102"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
