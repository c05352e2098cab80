package profile

import (
	"context"
	"time"
)

// OwnerProfileID is the id of the one profile row the site serves.
const OwnerProfileID int64 = 1

// Collection names one of the child tables owned by the profile.
type Collection string

const (
	CollectionSkills     Collection = "skills"
	CollectionExperience Collection = "experience"
	CollectionEducation  Collection = "education"
	CollectionProjects   Collection = "projects"
)

// Fields are the scalar columns of the profile row. Nil pointers are stored as NULL.
type Fields struct {
	FirstName      string
	LastName       string
	MiddleName     *string
	Email          string
	Phone          *string
	Location       *string
	Bio            *string
	PhotoURL       *string
	GithubUsername *string
	LinkedinURL    *string
	WebsiteURL     *string
}

type Profile struct {
	ID int64
	Fields
	CreatedAt time.Time
	UpdatedAt time.Time

	Skills     []Skill
	Experience []Experience
	Education  []Education
	Projects   []Project
}

type Skill struct {
	Name     string
	Level    int
	Category *string
}

type Experience struct {
	ID           int64
	CompanyName  string
	Position     string
	StartDate    string
	EndDate      *string
	Description  *string
	Technologies []string
}

type Education struct {
	ID              int64
	InstitutionName string
	Degree          string
	FieldOfStudy    *string
	StartDate       string
	EndDate         *string
	Description     *string
}

type Project struct {
	ID           int64
	Name         string
	Description  *string
	GithubURL    *string
	DemoURL      *string
	Technologies []string
	ImageURL     *string
	StartDate    *string
	EndDate      *string
}

// FullName joins first, last and middle name the way the résumé header prints it.
func (p *Profile) FullName() string {
	name := p.FirstName + " " + p.LastName
	if p.MiddleName != nil && *p.MiddleName != "" {
		name += " " + *p.MiddleName
	}
	return name
}

// Writer mutates the profile inside a transaction opened by Repository.Apply.
// Every Replace* call discards all existing rows of its collection and inserts
// items in the given order; an empty slice leaves the collection empty.
type Writer interface {
	ReplaceProfile(ctx context.Context, fields Fields) error
	ReplaceSkills(ctx context.Context, items []Skill) error
	ReplaceExperience(ctx context.Context, items []Experience) error
	ReplaceEducation(ctx context.Context, items []Education) error
	ReplaceProjects(ctx context.Context, items []Project) error
}

type Repository interface {
	Get(ctx context.Context, id int64) (*Profile, error)
	// Apply runs fn atomically. The profile's updated_at is touched exactly once,
	// and any error returned by fn discards every write made through the Writer.
	Apply(ctx context.Context, id int64, fn func(ctx context.Context, w Writer) error) error
}
