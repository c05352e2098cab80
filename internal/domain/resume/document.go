// Package resume turns a stored profile into the fixed résumé layout:
// header, skills, experience, education, bio. Empty sections are left out.
package resume

type SectionKind string

const (
	SectionSkills     SectionKind = "skills"
	SectionExperience SectionKind = "experience"
	SectionEducation  SectionKind = "education"
	SectionBio        SectionKind = "bio"
)

type Document struct {
	Title    string
	Contacts []string
	Sections []Section
}

// Section carries either a single Paragraph (skills, bio) or a list of Entries.
type Section struct {
	Kind      SectionKind
	Heading   string
	Paragraph string
	Entries   []Entry
}

type Entry struct {
	Title    string
	Subtitle string
	Period   string
	Body     string
}

// HasSection reports whether the document contains a section of the given kind.
func (d Document) HasSection(kind SectionKind) bool {
	for _, s := range d.Sections {
		if s.Kind == kind {
			return true
		}
	}
	return false
}
