// Package profiletest provides an in-memory profile.Repository for tests.
package profiletest

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/Yeralkhan06/MyProfile3/internal/domain/profile"
	"github.com/Yeralkhan06/MyProfile3/pkg/apperror"
)

// ErrInjected is returned by Replace* for the collection configured with FailOn.
var ErrInjected = errors.New("injected storage failure")

// Repository keeps one profile in memory and commits Apply only when fn succeeds.
type Repository struct {
	mu      sync.Mutex
	profile *profile.Profile
	nextID  int64
	now     func() time.Time

	// FailOn makes the matching Replace* call fail inside Apply.
	FailOn profile.Collection
	// GetErr, when set, is returned by Get.
	GetErr error

	Applies int
}

func New(seed *profile.Profile) *Repository {
	r := &Repository{nextID: 100, now: func() time.Time { return time.Now().UTC() }}
	if seed != nil {
		r.profile = clone(seed)
	}
	return r
}

func (r *Repository) Get(_ context.Context, id int64) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	if r.profile == nil || r.profile.ID != id {
		return nil, apperror.NewNotFound("profile", "1")
	}
	return clone(r.profile), nil
}

func (r *Repository) Apply(ctx context.Context, id int64, fn func(ctx context.Context, w profile.Writer) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.profile == nil || r.profile.ID != id {
		return apperror.NewNotFound("profile", "1")
	}

	draft := clone(r.profile)
	draft.UpdatedAt = r.now()
	w := &writer{repo: r, draft: draft}
	if err := fn(ctx, w); err != nil {
		return err
	}
	r.profile = draft
	r.Applies++
	return nil
}

type writer struct {
	repo  *Repository
	draft *profile.Profile
}

func (w *writer) fail(c profile.Collection) error {
	if w.repo.FailOn == c {
		return apperror.NewInternal("failed to replace "+string(c), ErrInjected)
	}
	return nil
}

func (w *writer) id() int64 {
	w.repo.nextID++
	return w.repo.nextID
}

func (w *writer) ReplaceProfile(_ context.Context, fields profile.Fields) error {
	w.draft.Fields = fields
	return nil
}

func (w *writer) ReplaceSkills(_ context.Context, items []profile.Skill) error {
	if err := w.fail(profile.CollectionSkills); err != nil {
		return err
	}
	w.draft.Skills = slices.Clone(items)
	return nil
}

func (w *writer) ReplaceExperience(_ context.Context, items []profile.Experience) error {
	if err := w.fail(profile.CollectionExperience); err != nil {
		return err
	}
	out := make([]profile.Experience, len(items))
	for i, e := range items {
		e.ID = w.id()
		e.Technologies = technologies(e.Technologies)
		out[i] = e
	}
	w.draft.Experience = out
	return nil
}

func (w *writer) ReplaceEducation(_ context.Context, items []profile.Education) error {
	if err := w.fail(profile.CollectionEducation); err != nil {
		return err
	}
	out := make([]profile.Education, len(items))
	for i, e := range items {
		e.ID = w.id()
		out[i] = e
	}
	w.draft.Education = out
	return nil
}

func (w *writer) ReplaceProjects(_ context.Context, items []profile.Project) error {
	if err := w.fail(profile.CollectionProjects); err != nil {
		return err
	}
	out := make([]profile.Project, len(items))
	for i, p := range items {
		p.ID = w.id()
		p.Technologies = technologies(p.Technologies)
		out[i] = p
	}
	w.draft.Projects = out
	return nil
}

func technologies(in []string) []string {
	if in == nil {
		return []string{}
	}
	return slices.Clone(in)
}

func clone(p *profile.Profile) *profile.Profile {
	c := *p
	c.Skills = slices.Clone(p.Skills)
	c.Experience = make([]profile.Experience, len(p.Experience))
	for i, e := range p.Experience {
		e.Technologies = slices.Clone(e.Technologies)
		c.Experience[i] = e
	}
	c.Education = slices.Clone(p.Education)
	c.Projects = make([]profile.Project, len(p.Projects))
	for i, pr := range p.Projects {
		pr.Technologies = slices.Clone(pr.Technologies)
		c.Projects[i] = pr
	}
	return &c
}

// Seed returns a small profile matching the bootstrap data shape.
func Seed() *profile.Profile {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	frontend, backend := "Frontend", "Backend"
	location := "Казахстан"
	bio := "Веб-разработчик и Java разработчик."
	github := "Yeralkhan06"
	desc := "Разработка и поддержка веб-приложений, архитектура проектов"
	graduated := "2022-06-30"
	field := "Программирование и веб-разработка"
	repo := "https://github.com/Yeralkhan06/Video-Production"
	started := "2024-01-01"

	return &profile.Profile{
		ID: profile.OwnerProfileID,
		Fields: profile.Fields{
			FirstName:      "Мақсұт",
			LastName:       "Ералхан",
			Email:          "yeralkhan@example.com",
			Location:       &location,
			Bio:            &bio,
			GithubUsername: &github,
		},
		CreatedAt: now,
		UpdatedAt: now,
		Skills: []profile.Skill{
			{Name: "Верстка сайтов", Level: 85, Category: &frontend},
			{Name: "Java разработка", Level: 80, Category: &backend},
		},
		Experience: []profile.Experience{
			{ID: 1, CompanyName: "ТехКомпани", Position: "Senior Web Developer", StartDate: "2022-01-01",
				Description: &desc, Technologies: []string{"React", "Node.js", "PostgreSQL", "AWS"}},
		},
		Education: []profile.Education{
			{ID: 1, InstitutionName: "Международный Университет Астана", Degree: "Выпускник",
				FieldOfStudy: &field, StartDate: "2018-09-01", EndDate: &graduated},
		},
		Projects: []profile.Project{
			{ID: 1, Name: "Video Production", GithubURL: &repo, Technologies: []string{"HTML", "CSS", "JavaScript"}, StartDate: &started},
		},
	}
}
