package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justute/tutorboard-api/internal/models"
	"github.com/justute/tutorboard-api/internal/service"
	appErrors "github.com/justute/tutorboard-api/pkg/errors"
	"github.com/justute/tutorboard-api/pkg/response"
)

// ExportHandler exposes the background export pipeline.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Create queues a schedule export and returns the pending job.
func (h *ExportHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.CreateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}

	job, err := h.service.Enqueue(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusAccepted, job, nil)
}

// Get returns the state of one export job.
func (h *ExportHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	job, err := h.service.Job(claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, job, nil)
}

// Download serves a finished export. Authentication is carried by the signed
// token, not a bearer header, so links can be opened directly.
func (h *ExportHandler) Download(c *gin.Context) {
	file, contentType, err := h.service.OpenByToken(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to stat export"))
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+info.Name()+"\"")
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, nil)
}
