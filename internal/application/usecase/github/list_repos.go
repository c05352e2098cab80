package github

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Yeralkhan06/MyProfile3/internal/domain/github"
	"github.com/Yeralkhan06/MyProfile3/pkg/apperror"
)

var tracer = otel.Tracer("github_usecase")

type ListReposUseCase struct {
	source github.RepoSource
}

func NewListReposUseCase(source github.RepoSource) *ListReposUseCase {
	return &ListReposUseCase{source: source}
}

type ListReposInput struct {
	Username string
}

type ListReposOutput struct {
	Repos []github.Repo
}

func (uc *ListReposUseCase) Execute(ctx context.Context, input ListReposInput) (*ListReposOutput, error) {
	ctx, span := tracer.Start(ctx, "ListRepos")
	defer span.End()

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, apperror.NewInvalidInput("username is required", nil)
	}
	span.SetAttributes(attribute.String("github.username", username))

	repos, err := uc.source.ListUserRepos(ctx, username)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &ListReposOutput{Repos: github.Latest(repos)}, nil
}
