package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/honeycarbs/jobkit/internal/domain"
	"github.com/honeycarbs/jobkit/internal/domain/export"
	"github.com/honeycarbs/jobkit/internal/domain/tracker"
)

// ListJobs is GET /api/jobs?status
func (h *Handler) ListJobs(c *gin.Context) {
	jobs, err := h.tracker.List(c.Request.Context(), currentUser(c), c.Query("status"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// GetJob is GET /api/jobs/:id
func (h *Handler) GetJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}
	job, err := h.tracker.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// CreateJob is POST /api/jobs
func (h *Handler) CreateJob(c *gin.Context) {
	var in tracker.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid JSON body: "+err.Error())
		return
	}
	job, err := h.tracker.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// SaveJob is POST /api/jobs/save; the body is a search result posting
func (h *Handler) SaveJob(c *gin.Context) {
	var posting domain.JobPosting
	if err := c.ShouldBindJSON(&posting); err != nil {
		badRequest(c, "invalid JSON body: "+err.Error())
		return
	}
	job, err := h.tracker.SaveFromPosting(c.Request.Context(), currentUser(c), posting)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// UpdateJob is PUT /api/jobs/:id
func (h *Handler) UpdateJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}
	var in tracker.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid JSON body: "+err.Error())
		return
	}
	job, err := h.tracker.Update(c.Request.Context(), currentUser(c), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// DeleteJob is DELETE /api/jobs/:id
func (h *Handler) DeleteJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}
	if err := h.tracker.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// Stats is GET /api/jobs/stats
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.tracker.Stats(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetChecklist is GET /api/jobs/:id/checklist
func (h *Handler) GetChecklist(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}
	list, err := h.tracker.Checklist(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpdateChecklist is PUT /api/jobs/:id/checklist
func (h *Handler) UpdateChecklist(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}
	var in tracker.ChecklistUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid JSON body: "+err.Error())
		return
	}
	list, err := h.tracker.UpdateChecklist(c.Request.Context(), currentUser(c), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Export is POST /api/jobs/export
func (h *Handler) Export(c *gin.Context) {
	var req export.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body: "+err.Error())
		return
	}
	res, err := h.exporter.Export(c.Request.Context(), currentUser(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func jobID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid job id")
		return uuid.Nil, false
	}
	return id, true
}
