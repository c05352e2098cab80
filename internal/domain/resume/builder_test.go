package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/Yeralkhan06/MyProfile3/internal/domain/profile"
	"github.com/Yeralkhan06/MyProfile3/internal/domain/profile/profiletest"
)

func strPtr(s string) *string { return &s }

func TestBuildOrdersSections(t *testing.T) {
	p := profiletest.Seed()
	p.Phone = strPtr("8 777 199 9922")

	doc := Build(p, language.Russian)

	assert.Equal(t, "Мақсұт Ералхан", doc.Title)
	assert.Equal(t, []string{
		"Email: yeralkhan@example.com",
		"Телефон: 8 777 199 9922",
		"Местоположение: Казахстан",
	}, doc.Contacts)

	kinds := make([]SectionKind, len(doc.Sections))
	for i, s := range doc.Sections {
		kinds[i] = s.Kind
	}
	assert.Equal(t, []SectionKind{SectionSkills, SectionExperience, SectionEducation, SectionBio}, kinds)

	skills := doc.Sections[0]
	assert.Equal(t, "Навыки", skills.Heading)
	assert.Equal(t, "Верстка сайтов (85%), Java разработка (80%)", skills.Paragraph)

	exp := doc.Sections[1]
	assert.Equal(t, "Опыт работы", exp.Heading)
	require.Len(t, exp.Entries, 1)
	assert.Equal(t, "Senior Web Developer в ТехКомпани", exp.Entries[0].Title)
	assert.Equal(t, "2022-01-01 - н.в.", exp.Entries[0].Period)

	edu := doc.Sections[2]
	assert.Equal(t, "Выпускник, Программирование и веб-разработка", edu.Entries[0].Subtitle)
	assert.Equal(t, "2018-09-01 - 2022-06-30", edu.Entries[0].Period)
}

func TestBuildOmitsEmptySections(t *testing.T) {
	p := profiletest.Seed()
	p.Experience = nil
	p.Skills = []profile.Skill{}
	p.Bio = strPtr("   ")
	p.Location = nil

	doc := Build(p, language.Russian)

	assert.False(t, doc.HasSection(SectionExperience))
	assert.False(t, doc.HasSection(SectionSkills))
	assert.False(t, doc.HasSection(SectionBio))
	assert.True(t, doc.HasSection(SectionEducation))
	for _, s := range doc.Sections {
		assert.NotEqual(t, "Опыт работы", s.Heading)
	}
	assert.Equal(t, []string{"Email: yeralkhan@example.com"}, doc.Contacts)
}

func TestBuildEnglishLabels(t *testing.T) {
	doc := Build(profiletest.Seed(), ParseLocale("en-US"))

	assert.Equal(t, "Skills", doc.Sections[0].Heading)
	assert.Equal(t, "Senior Web Developer at ТехКомпани", doc.Sections[1].Entries[0].Title)
	assert.Equal(t, "2022-01-01 - present", doc.Sections[1].Entries[0].Period)
}

func TestParseLocaleFallsBackToRussian(t *testing.T) {
	assert.Equal(t, language.Russian, ParseLocale("ru"))
	assert.Equal(t, language.English, ParseLocale("en"))
	assert.Equal(t, language.Russian, ParseLocale("not a locale!"))
}

func TestFilename(t *testing.T) {
	p := &profile.Profile{Fields: profile.Fields{FirstName: "Ivan", LastName: "Petrov"}}
	assert.Equal(t, "Ivan_Petrov_resume.pdf", Filename(p))

	p.LastName = "Van Dyke/../x"
	assert.Equal(t, "Ivan_Van_Dyke..x_resume.pdf", Filename(p))
}

func TestFullNameIncludesMiddleName(t *testing.T) {
	p := &profile.Profile{Fields: profile.Fields{FirstName: "Мақсұт", LastName: "Ералхан", MiddleName: strPtr("Дарханұлы")}}
	assert.Equal(t, "Мақсұт Ералхан Дарханұлы", p.FullName())
}
