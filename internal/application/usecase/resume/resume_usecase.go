package resume

import (
	"bytes"
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/Yeralkhan06/MyProfile3/internal/application/service"
	"github.com/Yeralkhan06/MyProfile3/internal/domain/profile"
	"github.com/Yeralkhan06/MyProfile3/internal/domain/resume"
	"github.com/Yeralkhan06/MyProfile3/pkg/apperror"
	"github.com/Yeralkhan06/MyProfile3/pkg/logger"
)

// ArchiveFolder is where rendered snapshots are uploaded.
const ArchiveFolder = "resumes"

var tracer = otel.Tracer("resume_usecase")

type ResumeUseCase struct {
	profileRepo profile.Repository
	renderer    service.ResumeRenderer
	uploader    service.Uploader
	locale      language.Tag
	logger      logger.Logger
}

// NewResumeUseCase builds the use case. uploader may be nil when archiving is not configured.
func NewResumeUseCase(repo profile.Repository, renderer service.ResumeRenderer, uploader service.Uploader, locale language.Tag, log logger.Logger) *ResumeUseCase {
	return &ResumeUseCase{
		profileRepo: repo,
		renderer:    renderer,
		uploader:    uploader,
		locale:      locale,
		logger:      log,
	}
}

type GenerateOutput struct {
	Filename string
	PDF      []byte
}

func (uc *ResumeUseCase) ExecuteGenerate(ctx context.Context) (*GenerateOutput, error) {
	ctx, span := tracer.Start(ctx, "GenerateResume")
	defer span.End()

	p, err := uc.profileRepo.Get(ctx, profile.OwnerProfileID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	doc := resume.Build(p, uc.locale)
	pdf, err := uc.renderer.Render(ctx, doc)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to render resume", err)
	}
	span.SetAttributes(attribute.Int("resume.bytes", len(pdf)), attribute.Int("resume.sections", len(doc.Sections)))

	return &GenerateOutput{Filename: resume.Filename(p), PDF: pdf}, nil
}

type ArchiveInput struct {
	// PreviousFilename names a snapshot to remove once the new one is stored.
	PreviousFilename string
}

type ArchiveOutput struct {
	URL string
	// Removed is the public id of the deleted stale snapshot, if any.
	Removed string
}

// ExecuteArchive renders the current résumé and uploads it over the snapshot of the
// same name. A renamed résumé also drops the snapshot stored under the old name.
func (uc *ResumeUseCase) ExecuteArchive(ctx context.Context, input ArchiveInput) (*ArchiveOutput, error) {
	ctx, span := tracer.Start(ctx, "ArchiveResume")
	defer span.End()

	if uc.uploader == nil {
		return nil, apperror.NewInternal("resume archive is not configured", nil)
	}

	out, err := uc.ExecuteGenerate(ctx)
	if err != nil {
		return nil, err
	}

	publicID := archiveID(out.Filename)
	url, err := uc.uploader.Upload(ctx, bytes.NewReader(out.PDF), ArchiveFolder, publicID)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to upload resume", err)
	}
	uc.logger.Info("Resume archived", zap.String("public_id", publicID), zap.String("url", url))

	result := &ArchiveOutput{URL: url}
	if input.PreviousFilename == "" || input.PreviousFilename == out.Filename {
		return result, nil
	}

	// Cloudinary prefixes the folder onto the stored public id.
	stale := ArchiveFolder + "/" + archiveID(input.PreviousFilename)
	if err := uc.uploader.Delete(ctx, stale); err != nil {
		span.RecordError(err)
		uc.logger.Warn("Failed to remove stale resume", zap.String("public_id", stale), zap.Error(err))
		return result, nil
	}
	uc.logger.Info("Stale resume removed", zap.String("public_id", stale))
	result.Removed = stale
	return result, nil
}

func archiveID(filename string) string {
	return strings.TrimSuffix(filename, ".pdf")
}
