package tts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const spdModuleListing = `OUTPUT MODULES
espeak-ng
rhvoice
dummy
`

const spdVoiceListing = `             NAME                 LANGUAGE  VARIANT
             Leticia-F123         pt-BR     none
             Evgeniy-Eng          en        male1
             Anna                 ru        female2
             dummy                          none
incomplete
`

func TestParseSpdModules(t *testing.T) {
	modules := parseSpdModules(spdModuleListing)
	assert.Equal(t, []string{"espeak-ng", "rhvoice"}, modules,
		"header and dummy module must be skipped")
}

func TestParseSpdVoices(t *testing.T) {
	voices := parseSpdVoices(spdVoiceListing, "rhvoice")
	require.Len(t, voices, 3, "header, dummy and malformed lines are skipped")

	leticia := voices[0]
	assert.Equal(t, "Leticia-F123", leticia.ID)
	assert.Equal(t, BackendSpeechDispatcher, leticia.Backend)
	assert.Equal(t, "pt-BR", leticia.Language)
	assert.Equal(t, "Leticia F123", leticia.Name)
	assert.Equal(t, "rhvoice", leticia.OutputModule)
	assert.Equal(t, GenderUnknown, leticia.Gender)
	assert.Equal(t, "high", leticia.Quality)

	assert.Equal(t, GenderMale, voices[1].Gender)
	assert.Equal(t, GenderFemale, voices[2].Gender)
}

func TestParseSpdVoicesEmptyOutput(t *testing.T) {
	assert.Empty(t, parseSpdVoices("", "rhvoice"))
}

func TestGenderFromVariant(t *testing.T) {
	tests := []struct {
		variant  string
		expected Gender
	}{
		{"male1", GenderMale},
		{"MALE2", GenderMale},
		{"female1", GenderFemale},
		{"none", GenderUnknown},
		{"", GenderUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, genderFromVariant(tt.variant), "variant %q", tt.variant)
	}
}

func TestSpdInvocationShape(t *testing.T) {
	v := Voice{ID: "Leticia-F123", Backend: BackendSpeechDispatcher, OutputModule: "rhvoice"}
	inv, err := speechDispatcher{}.Invocation(v, DefaultParameters(), "olá mundo")
	if err != nil {
		assert.ErrorIs(t, err, ErrBackendUnavailable)
		t.Skip("spd-say not installed")
	}

	require.Len(t, inv.Stages, 1)
	argv := inv.Stages[0]
	assert.Equal(t, "spd-say", argv[0])
	assert.Contains(t, argv, "--wait")
	assert.Contains(t, argv, "rhvoice")
	assert.Equal(t, "olá mundo", argv[len(argv)-1])
	assert.Equal(t, [][]string{{"spd-say", "-C"}}, inv.Cancel,
		"stopping must also clear the daemon queue")
}
