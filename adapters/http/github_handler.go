package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	githubUC "github.com/Yeralkhan06/MyProfile3/internal/application/usecase/github"
)

type GitHubHandler struct {
	listReposUseCase *githubUC.ListReposUseCase
}

func NewGitHubHandler(uc *githubUC.ListReposUseCase) *GitHubHandler {
	return &GitHubHandler{listReposUseCase: uc}
}

func (h *GitHubHandler) ListRepos(c *gin.Context) {
	output, err := h.listReposUseCase.Execute(c.Request.Context(), githubUC.ListReposInput{
		Username: c.Param("username"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, output.Repos)
}
