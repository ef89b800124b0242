package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/honeycarbs/jobkit/internal/domain/assist"
	"github.com/honeycarbs/jobkit/internal/domain/tracker"
)

type tailorRequest struct {
	assist.TailorRequest
	// JobID, when set, stores the tailored score on that saved job
	JobID string `json:"jobId"`
}

// GenerateOutreach is POST /api/ai/generate-outreach
func (h *Handler) GenerateOutreach(c *gin.Context) {
	var req assist.OutreachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body: "+err.Error())
		return
	}
	res, err := h.assist.Outreach(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// TailorResume is POST /api/ai/tailor-resume
func (h *Handler) TailorResume(c *gin.Context) {
	var req tailorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body: "+err.Error())
		return
	}

	var jobID uuid.UUID
	if s := strings.TrimSpace(req.JobID); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			badRequest(c, "invalid jobId")
			return
		}
		jobID = id
	}

	res, err := h.assist.TailorResume(c.Request.Context(), req.TailorRequest)
	if err != nil {
		h.fail(c, err)
		return
	}

	if jobID != uuid.Nil {
		score := res.ScoreAfter
		if _, err := h.tracker.Update(c.Request.Context(), currentUser(c), jobID, tracker.UpdateInput{AIScore: &score}); err != nil {
			h.fail(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, res)
}

// InterviewPrep is POST /api/ai/interview-prep
func (h *Handler) InterviewPrep(c *gin.Context) {
	var req assist.InterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body: "+err.Error())
		return
	}
	res, err := h.assist.InterviewPrep(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
