package profile

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/Yeralkhan06/MyProfile3/internal/application/service"
	"github.com/Yeralkhan06/MyProfile3/internal/domain/profile"
	"github.com/Yeralkhan06/MyProfile3/internal/domain/resume"
	"github.com/Yeralkhan06/MyProfile3/pkg/logger"
)

var tracer = otel.Tracer("profile_usecase")

type ProfileUseCase struct {
	profileRepo profile.Repository
	publisher   service.EventPublisher
	logger      logger.Logger
	now         func() time.Time
}

func NewProfileUseCase(repo profile.Repository, publisher service.EventPublisher, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		publisher:   publisher,
		logger:      log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context) (*GetProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "GetProfile")
	defer span.End()

	p, err := uc.profileRepo.Get(ctx, profile.OwnerProfileID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "get profile failed")
		return nil, err
	}
	return &GetProfileOutput{Profile: p}, nil
}

// UpdateProfileInput carries already validated values. A nil collection pointer
// leaves that collection untouched; a pointer to an empty slice clears it.
type UpdateProfileInput struct {
	Fields     profile.Fields
	Skills     *[]profile.Skill
	Experience *[]profile.Experience
	Education  *[]profile.Education
	Projects   *[]profile.Project
}

// Collections lists the collections the input replaces, in write order.
func (in UpdateProfileInput) Collections() []profile.Collection {
	out := make([]profile.Collection, 0, 4)
	if in.Skills != nil {
		out = append(out, profile.CollectionSkills)
	}
	if in.Experience != nil {
		out = append(out, profile.CollectionExperience)
	}
	if in.Education != nil {
		out = append(out, profile.CollectionEducation)
	}
	if in.Projects != nil {
		out = append(out, profile.CollectionProjects)
	}
	return out
}

type UpdateProfileOutput struct {
	Collections []profile.Collection
}

func (uc *ProfileUseCase) ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "UpdateProfile")
	defer span.End()

	collections := input.Collections()
	names := make([]string, len(collections))
	for i, c := range collections {
		names[i] = string(c)
	}
	span.SetAttributes(attribute.StringSlice("profile.collections", names))

	before, err := uc.profileRepo.Get(ctx, profile.OwnerProfileID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update profile failed")
		return nil, err
	}

	err = uc.profileRepo.Apply(ctx, profile.OwnerProfileID, func(ctx context.Context, w profile.Writer) error {
		if err := w.ReplaceProfile(ctx, input.Fields); err != nil {
			return err
		}
		if input.Skills != nil {
			if err := w.ReplaceSkills(ctx, *input.Skills); err != nil {
				return err
			}
		}
		if input.Experience != nil {
			if err := w.ReplaceExperience(ctx, *input.Experience); err != nil {
				return err
			}
		}
		if input.Education != nil {
			if err := w.ReplaceEducation(ctx, *input.Education); err != nil {
				return err
			}
		}
		if input.Projects != nil {
			if err := w.ReplaceProjects(ctx, *input.Projects); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update profile failed")
		return nil, err
	}

	uc.logger.Info("Profile updated", zap.Int64("profile_id", profile.OwnerProfileID), zap.Strings("collections", names))

	ev := service.ProfileEvent{
		EventType:   service.EventTypeProfileUpdated,
		ProfileID:   profile.OwnerProfileID,
		Collections: collections,
		OccurredAt:  uc.now(),
	}
	if prev := resume.Filename(before); prev != resume.Filename(&profile.Profile{Fields: input.Fields}) {
		ev.PreviousResume = prev
	}
	if err := uc.publisher.PublishProfileEvent(ctx, ev); err != nil {
		uc.logger.Warn("Failed to publish profile event", zap.Int64("profile_id", ev.ProfileID), zap.Error(err))
	}

	return &UpdateProfileOutput{Collections: collections}, nil
}
