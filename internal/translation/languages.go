package translation

// Language is a supported language code (ISO 639-1) with its display name.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SupportedLanguages lists the languages meanings can be requested in.
var SupportedLanguages = []Language{
	{Code: "pt", Name: "Português (Brasil)"},
	{Code: "en", Name: "English"},
	{Code: "es", Name: "Español"},
	{Code: "fr", Name: "Français"},
	{Code: "de", Name: "Deutsch"},
	{Code: "it", Name: "Italiano"},
	{Code: "ja", Name: "Japanese"},
	{Code: "zh", Name: "Chinese"},
}

// SupportedCodes returns the codes of SupportedLanguages in order.
func SupportedCodes() []string {
	codes := make([]string, 0, len(SupportedLanguages))
	for _, language := range SupportedLanguages {
		codes = append(codes, language.Code)
	}
	return codes
}

// LanguageName returns the display name for code, or code itself for unknown languages.
func LanguageName(code string) string {
	for _, language := range SupportedLanguages {
		if language.Code == code {
			return language.Name
		}
	}
	return code
}
