package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	profileUC "github.com/Yeralkhan06/MyProfile3/internal/application/usecase/profile"
	"github.com/Yeralkhan06/MyProfile3/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		logger:         log,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	output, err := h.profileUseCase.ExecuteGetProfile(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := bindProfileUpdate(c, &req); err != nil {
		c.Error(err)
		return
	}

	if _, err := h.profileUseCase.ExecuteUpdateProfile(c.Request.Context(), req.ToInput()); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}
