package tts

import (
	"context"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// espeakNG invokes the espeak-ng binary directly. Voices are enumerated with
// `espeak-ng --voices`.
type espeakNG struct{}

func (espeakNG) Backend() Backend { return BackendEspeakNG }

func (espeakNG) Discover(ctx context.Context) []Voice {
	if _, err := exec.LookPath("espeak-ng"); err != nil {
		log.Debug().Msg("espeak-ng not installed, skipping")
		return nil
	}

	out, err := probeOutput(ctx, "espeak-ng", "--voices")
	if err != nil {
		log.Debug().Err(err).Msg("espeak-ng voice listing failed")
		return nil
	}

	voices := parseEspeakVoices(out)
	log.Debug().Int("voices", len(voices)).Msg("espeak-ng discovery done")
	return voices
}

// parseEspeakVoices parses `espeak-ng --voices` tabular output:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  pt-BR          --/M      portuguese-brazil  roa/pt-BR
//
// Malformed lines are skipped, not fatal. The language code doubles as the
// voice id because `espeak-ng -v` accepts it directly.
func parseEspeakVoices(out string) []Voice {
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		return nil
	}

	var voices []Voice
	for _, line := range lines[1:] { // skip header
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		lang := fields[1]
		ageGender := fields[2]
		name := fields[3]
		if lang == "" || name == "" {
			continue
		}

		gender := GenderUnknown
		switch {
		case strings.Contains(ageGender, "/M"):
			gender = GenderMale
		case strings.Contains(ageGender, "/F"):
			gender = GenderFemale
		}

		voices = append(voices, Voice{
			ID:       lang,
			Backend:  BackendEspeakNG,
			Language: lang,
			Name:     displayName(name),
			Gender:   gender,
			Quality:  "standard",
		})
	}
	return voices
}

func (espeakNG) Invocation(v Voice, p Parameters, text string) (*invocation, error) {
	if _, err := exec.LookPath("espeak-ng"); err != nil {
		return nil, ErrBackendUnavailable
	}

	args := []string{"espeak-ng"}
	if v.ID != "" {
		args = append(args, "-v", v.ID)
	}
	args = append(args, p.EspeakArgs()...)
	args = append(args, text)

	return &invocation{Stages: [][]string{args}}, nil
}
