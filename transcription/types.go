package transcription

// DefaultSampleRate is the host's capture rate for utterance buffers.
const DefaultSampleRate = 16000

// Request holds one utterance to transcribe.
type Request struct {
	// Samples are mono samples normalized to [-1, 1].
	Samples []float64 `json:"samples"`
	// SampleRate of Samples in Hz. Zero means the backend's configured rate.
	SampleRate int `json:"sample_rate,omitempty"`
	// Language is an optional language-code hint (e.g. "en", "eng").
	Language string `json:"language,omitempty"`
	// Model overrides the backend's default model identifier.
	Model string `json:"model,omitempty"`
}

// Response is the service's recognition result for one utterance.
type Response struct {
	// Text is the recognized text, as returned by the service.
	Text string `json:"text"`
	// LanguageCode is the detected language (ISO 639-3, e.g. "eng").
	LanguageCode string `json:"language_code"`
	// LanguageProbability is the detection confidence in [0, 1].
	LanguageProbability float64 `json:"language_probability"`
}

// Phrase is an ordered sequence of lowercase word tokens. An empty Phrase
// means nothing was recognized and is not an error.
type Phrase []string

// Empty reports whether the phrase holds no words.
func (p Phrase) Empty() bool { return len(p) == 0 }
