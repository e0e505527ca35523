package transcription

import "strings"

// DefaultLanguage is the language the hallucination filter treats as
// expected. Codes are compared as the service reports them (ISO 639-3).
const DefaultLanguage = "eng"

// hallucinatedText is the placeholder the model emits on silence or noise
// when it also misdetects the language.
const hallucinatedText = "none"

// FilterHallucination returns the response text, or "" when the detected
// language differs from expectedLanguage and the text is exactly "none".
// An empty expectedLanguage means DefaultLanguage.
func FilterHallucination(resp *Response, expectedLanguage string) string {
	if resp == nil {
		return ""
	}
	if expectedLanguage == "" {
		expectedLanguage = DefaultLanguage
	}
	if resp.LanguageCode != expectedLanguage && resp.Text == hallucinatedText {
		return ""
	}
	return resp.Text
}

// NormalizeText folds recognized text into a Phrase: lowercase, strip one
// trailing period, trim surrounding whitespace, split on single spaces.
//
// Splitting is on the single space character, so runs of spaces yield empty
// tokens. Text that normalizes to nothing yields an empty Phrase.
func NormalizeText(text string) Phrase {
	if text == "" {
		return Phrase{}
	}
	text = strings.ToLower(text)
	text = strings.TrimSuffix(text, ".")
	text = strings.TrimSpace(text)
	// Whitespace-only input and a lone "." both end up here as no words.
	if text == "" {
		return Phrase{}
	}
	return Phrase(strings.Split(text, " "))
}

// NormalizeResponse applies FilterHallucination followed by NormalizeText.
func NormalizeResponse(resp *Response, expectedLanguage string) Phrase {
	return NormalizeText(FilterHallucination(resp, expectedLanguage))
}
