package http

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	resumeUC "github.com/Yeralkhan06/MyProfile3/internal/application/usecase/resume"
)

type ResumeHandler struct {
	resumeUseCase *resumeUC.ResumeUseCase
}

func NewResumeHandler(uc *resumeUC.ResumeUseCase) *ResumeHandler {
	return &ResumeHandler{resumeUseCase: uc}
}

func (h *ResumeHandler) DownloadPDF(c *gin.Context) {
	output, err := h.resumeUseCase.ExecuteGenerate(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": output.Filename}))
	c.Data(http.StatusOK, "application/pdf", output.PDF)
}
