package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/justute/tutorboard-api/internal/models"
	"github.com/justute/tutorboard-api/internal/service"
	appErrors "github.com/justute/tutorboard-api/pkg/errors"
	"github.com/justute/tutorboard-api/pkg/response"
)

// SessionHandler wires HTTP endpoints to the session service.
type SessionHandler struct {
	service *service.SessionService
	agenda  *service.AgendaService
}

// NewSessionHandler creates a new handler. The agenda service is used to
// invalidate cached views after mutations.
func NewSessionHandler(svc *service.SessionService, agenda *service.AgendaService) *SessionHandler {
	return &SessionHandler{service: svc, agenda: agenda}
}

// List returns the teacher's sessions, optionally bounded by from/to dates.
func (h *SessionHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	filter := models.SessionFilter{TeacherID: claims.UserID}
	filter.StudentID = c.Query("student_id")
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "200"))

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid from date"))
			return
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid to date"))
			return
		}
		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}

	sessions, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, sessions, pagination)
}

// Get returns one session.
func (h *SessionHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	session, err := h.service.Get(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, session, nil)
}

// Create stores a new session.
func (h *SessionHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
		return
	}

	session, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.invalidate(c, claims.UserID)
	response.Created(c, session)
}

// Update applies a partial update to a session.
func (h *SessionHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
		return
	}

	session, err := h.service.Update(c.Request.Context(), claims.UserID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.invalidate(c, claims.UserID)
	response.JSON(c, http.StatusOK, session, nil)
}

// Delete removes a session.
func (h *SessionHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	h.invalidate(c, claims.UserID)
	response.NoContent(c)
}

func (h *SessionHandler) invalidate(c *gin.Context, teacherID string) {
	if h.agenda != nil {
		h.agenda.InvalidateTeacher(c.Request.Context(), teacherID)
	}
}
