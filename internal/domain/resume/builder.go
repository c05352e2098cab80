package resume

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Yeralkhan06/MyProfile3/internal/domain/profile"
)

// Build lays out p in the fixed résumé order using labels for locale.
func Build(p *profile.Profile, locale language.Tag) Document {
	pr := message.NewPrinter(locale)

	doc := Document{Title: strings.TrimSpace(p.FullName())}
	doc.Contacts = append(doc.Contacts, pr.Sprintf(keyEmail, p.Email))
	if v := deref(p.Phone); v != "" {
		doc.Contacts = append(doc.Contacts, pr.Sprintf(keyPhone, v))
	}
	if v := deref(p.Location); v != "" {
		doc.Contacts = append(doc.Contacts, pr.Sprintf(keyLocation, v))
	}

	if len(p.Skills) > 0 {
		doc.Sections = append(doc.Sections, Section{
			Kind:      SectionSkills,
			Heading:   pr.Sprintf(keySkills),
			Paragraph: strings.Join(SkillLines(p.Skills), ", "),
		})
	}

	if len(p.Experience) > 0 {
		present := pr.Sprintf(keyPresent)
		entries := make([]Entry, len(p.Experience))
		for i, e := range p.Experience {
			entries[i] = Entry{
				Title:  pr.Sprintf(keyPositionAt, e.Position, e.CompanyName),
				Period: Period(e.StartDate, e.EndDate, present),
				Body:   deref(e.Description),
			}
		}
		doc.Sections = append(doc.Sections, Section{Kind: SectionExperience, Heading: pr.Sprintf(keyExperience), Entries: entries})
	}

	if len(p.Education) > 0 {
		present := pr.Sprintf(keyPresent)
		entries := make([]Entry, len(p.Education))
		for i, e := range p.Education {
			subtitle := e.Degree
			if field := deref(e.FieldOfStudy); field != "" {
				subtitle += ", " + field
			}
			entries[i] = Entry{
				Title:    e.InstitutionName,
				Subtitle: subtitle,
				Period:   Period(e.StartDate, e.EndDate, present),
			}
		}
		doc.Sections = append(doc.Sections, Section{Kind: SectionEducation, Heading: pr.Sprintf(keyEducation), Entries: entries})
	}

	if bio := deref(p.Bio); bio != "" {
		doc.Sections = append(doc.Sections, Section{Kind: SectionBio, Heading: pr.Sprintf(keyBio), Paragraph: bio})
	}

	return doc
}

// SkillLines flattens skills to "name (level%)".
func SkillLines(skills []profile.Skill) []string {
	out := make([]string, len(skills))
	for i, s := range skills {
		out[i] = fmt.Sprintf("%s (%d%%)", s.Name, s.Level)
	}
	return out
}

// Period renders "start - end", using present when the end is open.
func Period(start string, end *string, present string) string {
	e := deref(end)
	if e == "" {
		e = present
	}
	return start + " - " + e
}

// Filename is the attachment name offered for download, e.g. "Ivan_Petrov_resume.pdf".
func Filename(p *profile.Profile) string {
	clean := strings.NewReplacer("/", "", "\\", "", "\"", "", " ", "_")
	return clean.Replace(p.FirstName) + "_" + clean.Replace(p.LastName) + "_resume.pdf"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
