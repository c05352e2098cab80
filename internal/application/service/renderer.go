package service

import (
	"context"

	"github.com/Yeralkhan06/MyProfile3/internal/domain/resume"
)

// ResumeRenderer turns a laid out résumé into PDF bytes.
type ResumeRenderer interface {
	Render(ctx context.Context, doc resume.Document) ([]byte, error)
}
