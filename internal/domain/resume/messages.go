package resume

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	keyEmail      = "resume.contact.email"
	keyPhone      = "resume.contact.phone"
	keyLocation   = "resume.contact.location"
	keySkills     = "resume.section.skills"
	keyExperience = "resume.section.experience"
	keyEducation  = "resume.section.education"
	keyBio        = "resume.section.bio"
	keyPositionAt = "resume.experience.position_at"
	keyPresent    = "resume.period.present"
)

var supportedLocales = []language.Tag{language.Russian, language.English}

var localeMatcher = language.NewMatcher(supportedLocales)

// ParseLocale maps a configured locale onto a supported one, Russian when nothing matches.
func ParseLocale(s string) language.Tag {
	tag, err := language.Parse(s)
	if err != nil {
		return language.Russian
	}
	_, idx, conf := localeMatcher.Match(tag)
	if conf == language.No {
		return language.Russian
	}
	return supportedLocales[idx]
}

func init() {
	ru := language.Russian
	message.SetString(ru, keyEmail, "Email: %s")
	message.SetString(ru, keyPhone, "Телефон: %s")
	message.SetString(ru, keyLocation, "Местоположение: %s")
	message.SetString(ru, keySkills, "Навыки")
	message.SetString(ru, keyExperience, "Опыт работы")
	message.SetString(ru, keyEducation, "Образование")
	message.SetString(ru, keyBio, "О себе")
	message.SetString(ru, keyPositionAt, "%s в %s")
	message.SetString(ru, keyPresent, "н.в.")

	en := language.English
	message.SetString(en, keyEmail, "Email: %s")
	message.SetString(en, keyPhone, "Phone: %s")
	message.SetString(en, keyLocation, "Location: %s")
	message.SetString(en, keySkills, "Skills")
	message.SetString(en, keyExperience, "Work experience")
	message.SetString(en, keyEducation, "Education")
	message.SetString(en, keyBio, "About")
	message.SetString(en, keyPositionAt, "%s at %s")
	message.SetString(en, keyPresent, "present")
}
