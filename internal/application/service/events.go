package service

import (
	"context"
	"time"

	"github.com/Yeralkhan06/MyProfile3/internal/domain/profile"
)

const EventTypeProfileUpdated = "profile.updated"

type ProfileEvent struct {
	EventType   string               `json:"event_type"`
	ProfileID   int64                `json:"profile_id"`
	Collections []profile.Collection `json:"collections"`
	OccurredAt  time.Time            `json:"occurred_at"`
	// PreviousResume is the résumé filename before the change. Set only when the change renamed it.
	PreviousResume string `json:"previous_resume,omitempty"`
}

// EventPublisher announces committed profile changes.
type EventPublisher interface {
	PublishProfileEvent(ctx context.Context, ev ProfileEvent) error
}
