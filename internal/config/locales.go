package config

const (
	LangID = "id"
	LangEN = "en"
)

func SupportedLanguages() []string {
	return []string{LangID, LangEN}
}

func IsSupportedLanguage(lang string) bool {
	for _, l := range SupportedLanguages() {
		if l == lang {
			return true
		}
	}
	return false
}
