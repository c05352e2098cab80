package http

import (
	"strings"
	"time"

	profileUC "github.com/Yeralkhan06/MyProfile3/internal/application/usecase/profile"
	"github.com/Yeralkhan06/MyProfile3/internal/domain/profile"
)

// Profile DTOs
type SkillDTO struct {
	SkillName  string  `json:"skill_name"`
	SkillLevel int     `json:"skill_level"`
	Category   *string `json:"category"`
}

type ExperienceDTO struct {
	ID           int64    `json:"id"`
	CompanyName  string   `json:"company_name"`
	Position     string   `json:"position"`
	StartDate    string   `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	Description  *string  `json:"description"`
	Technologies []string `json:"technologies"`
}

type EducationDTO struct {
	ID              int64   `json:"id"`
	InstitutionName string  `json:"institution_name"`
	Degree          string  `json:"degree"`
	FieldOfStudy    *string `json:"field_of_study"`
	StartDate       string  `json:"start_date"`
	EndDate         *string `json:"end_date"`
	Description     *string `json:"description"`
}

type ProjectDTO struct {
	ID           int64    `json:"id"`
	ProjectName  string   `json:"project_name"`
	Description  *string  `json:"description"`
	GithubURL    *string  `json:"github_url"`
	DemoURL      *string  `json:"demo_url"`
	Technologies []string `json:"technologies"`
	ImageURL     *string  `json:"image_url"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
}

type ProfileDTO struct {
	ID             int64           `json:"id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	MiddleName     *string         `json:"middle_name"`
	Email          string          `json:"email"`
	Phone          *string         `json:"phone"`
	Location       *string         `json:"location"`
	Bio            *string         `json:"bio"`
	PhotoURL       *string         `json:"photo_url"`
	GithubUsername *string         `json:"github_username"`
	LinkedinURL    *string         `json:"linkedin_url"`
	WebsiteURL     *string         `json:"website_url"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Skills         []SkillDTO      `json:"skills"`
	Experience     []ExperienceDTO `json:"experience"`
	Education      []EducationDTO  `json:"education"`
	Projects       []ProjectDTO    `json:"projects"`
}

// ToProfileDTO never leaves a list nil, so empty collections encode as [].
func ToProfileDTO(p *profile.Profile) ProfileDTO {
	dto := ProfileDTO{
		ID:             p.ID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		MiddleName:     p.MiddleName,
		Email:          p.Email,
		Phone:          p.Phone,
		Location:       p.Location,
		Bio:            p.Bio,
		PhotoURL:       p.PhotoURL,
		GithubUsername: p.GithubUsername,
		LinkedinURL:    p.LinkedinURL,
		WebsiteURL:     p.WebsiteURL,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}

	dto.Skills = make([]SkillDTO, len(p.Skills))
	for i, s := range p.Skills {
		dto.Skills[i] = SkillDTO{SkillName: s.Name, SkillLevel: s.Level, Category: s.Category}
	}

	dto.Experience = make([]ExperienceDTO, len(p.Experience))
	for i, e := range p.Experience {
		dto.Experience[i] = ExperienceDTO{
			ID:           e.ID,
			CompanyName:  e.CompanyName,
			Position:     e.Position,
			StartDate:    e.StartDate,
			EndDate:      e.EndDate,
			Description:  e.Description,
			Technologies: nonNil(e.Technologies),
		}
	}

	dto.Education = make([]EducationDTO, len(p.Education))
	for i, e := range p.Education {
		dto.Education[i] = EducationDTO{
			ID:              e.ID,
			InstitutionName: e.InstitutionName,
			Degree:          e.Degree,
			FieldOfStudy:    e.FieldOfStudy,
			StartDate:       e.StartDate,
			EndDate:         e.EndDate,
			Description:     e.Description,
		}
	}

	dto.Projects = make([]ProjectDTO, len(p.Projects))
	for i, pr := range p.Projects {
		dto.Projects[i] = ProjectDTO{
			ID:           pr.ID,
			ProjectName:  pr.Name,
			Description:  pr.Description,
			GithubURL:    pr.GithubURL,
			DemoURL:      pr.DemoURL,
			Technologies: nonNil(pr.Technologies),
			ImageURL:     pr.ImageURL,
			StartDate:    pr.StartDate,
			EndDate:      pr.EndDate,
		}
	}
	return dto
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

// Request DTOs. Validation runs after Normalize, so tags see trimmed values.
type SkillRequest struct {
	SkillName  string  `json:"skill_name" binding:"required"`
	SkillLevel int     `json:"skill_level"`
	Category   *string `json:"category"`
}

type ExperienceRequest struct {
	CompanyName  string   `json:"company_name" binding:"required"`
	Position     string   `json:"position" binding:"required"`
	StartDate    string   `json:"start_date" binding:"required"`
	EndDate      *string  `json:"end_date"`
	Description  *string  `json:"description"`
	Technologies []string `json:"technologies"`
}

type EducationRequest struct {
	InstitutionName string  `json:"institution_name" binding:"required"`
	Degree          string  `json:"degree" binding:"required"`
	FieldOfStudy    *string `json:"field_of_study"`
	StartDate       string  `json:"start_date" binding:"required"`
	EndDate         *string `json:"end_date"`
	Description     *string `json:"description"`
}

type ProjectRequest struct {
	ProjectName  string   `json:"project_name" binding:"required"`
	Description  *string  `json:"description"`
	GithubURL    *string  `json:"github_url"`
	DemoURL      *string  `json:"demo_url"`
	Technologies []string `json:"technologies"`
	ImageURL     *string  `json:"image_url"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
}

// UpdateProfileRequest uses pointers to slices: an absent or null array stays nil
// and leaves the stored collection alone, while [] clears it.
type UpdateProfileRequest struct {
	FirstName      string  `json:"first_name" binding:"required"`
	LastName       string  `json:"last_name" binding:"required"`
	MiddleName     *string `json:"middle_name"`
	Email          string  `json:"email" binding:"required,email"`
	Phone          *string `json:"phone"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	PhotoURL       *string `json:"photo_url"`
	GithubUsername *string `json:"github_username"`
	LinkedinURL    *string `json:"linkedin_url"`
	WebsiteURL     *string `json:"website_url"`

	Skills     *[]SkillRequest      `json:"skills" binding:"omitempty,dive"`
	Experience *[]ExperienceRequest `json:"experience" binding:"omitempty,dive"`
	Education  *[]EducationRequest  `json:"education" binding:"omitempty,dive"`
	Projects   *[]ProjectRequest    `json:"projects" binding:"omitempty,dive"`
}

// Normalize trims every string, lower-cases the email and turns blank optional values into nulls.
func (req *UpdateProfileRequest) Normalize() {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	for _, p := range []**string{
		&req.MiddleName, &req.Phone, &req.Location, &req.Bio, &req.PhotoURL,
		&req.GithubUsername, &req.LinkedinURL, &req.WebsiteURL,
	} {
		*p = optional(*p)
	}

	if req.Skills != nil {
		for i := range *req.Skills {
			s := &(*req.Skills)[i]
			s.SkillName = strings.TrimSpace(s.SkillName)
			s.Category = optional(s.Category)
		}
	}
	if req.Experience != nil {
		for i := range *req.Experience {
			e := &(*req.Experience)[i]
			e.CompanyName = strings.TrimSpace(e.CompanyName)
			e.Position = strings.TrimSpace(e.Position)
			e.StartDate = strings.TrimSpace(e.StartDate)
			e.EndDate = optional(e.EndDate)
			e.Description = optional(e.Description)
		}
	}
	if req.Education != nil {
		for i := range *req.Education {
			e := &(*req.Education)[i]
			e.InstitutionName = strings.TrimSpace(e.InstitutionName)
			e.Degree = strings.TrimSpace(e.Degree)
			e.FieldOfStudy = optional(e.FieldOfStudy)
			e.StartDate = strings.TrimSpace(e.StartDate)
			e.EndDate = optional(e.EndDate)
			e.Description = optional(e.Description)
		}
	}
	if req.Projects != nil {
		for i := range *req.Projects {
			p := &(*req.Projects)[i]
			p.ProjectName = strings.TrimSpace(p.ProjectName)
			for _, f := range []**string{&p.Description, &p.GithubURL, &p.DemoURL, &p.ImageURL, &p.StartDate, &p.EndDate} {
				*f = optional(*f)
			}
		}
	}
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (req *UpdateProfileRequest) ToInput() profileUC.UpdateProfileInput {
	input := profileUC.UpdateProfileInput{
		Fields: profile.Fields{
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			MiddleName:     req.MiddleName,
			Email:          req.Email,
			Phone:          req.Phone,
			Location:       req.Location,
			Bio:            req.Bio,
			PhotoURL:       req.PhotoURL,
			GithubUsername: req.GithubUsername,
			LinkedinURL:    req.LinkedinURL,
			WebsiteURL:     req.WebsiteURL,
		},
	}

	if req.Skills != nil {
		items := make([]profile.Skill, len(*req.Skills))
		for i, s := range *req.Skills {
			items[i] = profile.Skill{Name: s.SkillName, Level: s.SkillLevel, Category: s.Category}
		}
		input.Skills = &items
	}
	if req.Experience != nil {
		items := make([]profile.Experience, len(*req.Experience))
		for i, e := range *req.Experience {
			items[i] = profile.Experience{
				CompanyName:  e.CompanyName,
				Position:     e.Position,
				StartDate:    e.StartDate,
				EndDate:      e.EndDate,
				Description:  e.Description,
				Technologies: nonNil(e.Technologies),
			}
		}
		input.Experience = &items
	}
	if req.Education != nil {
		items := make([]profile.Education, len(*req.Education))
		for i, e := range *req.Education {
			items[i] = profile.Education{
				InstitutionName: e.InstitutionName,
				Degree:          e.Degree,
				FieldOfStudy:    e.FieldOfStudy,
				StartDate:       e.StartDate,
				EndDate:         e.EndDate,
				Description:     e.Description,
			}
		}
		input.Education = &items
	}
	if req.Projects != nil {
		items := make([]profile.Project, len(*req.Projects))
		for i, p := range *req.Projects {
			items[i] = profile.Project{
				Name:         p.ProjectName,
				Description:  p.Description,
				GithubURL:    p.GithubURL,
				DemoURL:      p.DemoURL,
				Technologies: nonNil(p.Technologies),
				ImageURL:     p.ImageURL,
				StartDate:    p.StartDate,
				EndDate:      p.EndDate,
			}
		}
		input.Projects = &items
	}
	return input
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
