package tts

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Backend identifies one of the supported TTS engines.
type Backend string

const (
	BackendSpeechDispatcher Backend = "speech-dispatcher"
	BackendEspeakNG         Backend = "espeak-ng"
	BackendPiper            Backend = "piper"
)

// Backends returns every supported backend in probe order.
func Backends() []Backend {
	return []Backend{BackendSpeechDispatcher, BackendEspeakNG, BackendPiper}
}

// Valid reports whether b is one of the supported backends.
func (b Backend) Valid() bool {
	switch b {
	case BackendSpeechDispatcher, BackendEspeakNG, BackendPiper:
		return true
	}
	return false
}

// Gender of a voice, when the backend reports one.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = ""
)

// Voice is a single synthesis profile discovered on the system.
// Identity is (Backend, ID); a Voice is immutable once constructed.
type Voice struct {
	ID           string
	Backend      Backend
	Language     string // language code as reported by the backend, e.g. "pt-BR"
	Name         string // human-readable display name
	Gender       Gender
	OutputModule string // speech-dispatcher only, e.g. "rhvoice"
	ModelPath    string // Piper only: absolute path to the .onnx model
	Quality      string // quality tier, e.g. "standard", "high", "neural"
}

// LanguageName returns the English display name for the voice's language,
// falling back to the raw code when it cannot be parsed.
func (v Voice) LanguageName() string {
	return languageName(v.Language)
}

func languageName(code string) string {
	if code == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}
