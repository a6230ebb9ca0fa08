package tts

import (
	"context"
	"os/exec"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// speechDispatcher speaks through the speech-dispatcher daemon via spd-say.
// Voices are enumerated per output module with `spd-say -o <module> -L`.
type speechDispatcher struct{}

func (speechDispatcher) Backend() Backend { return BackendSpeechDispatcher }

func (e speechDispatcher) Discover(ctx context.Context) []Voice {
	if _, err := exec.LookPath("spd-say"); err != nil {
		log.Debug().Msg("spd-say not installed, skipping speech-dispatcher")
		return nil
	}

	modules := e.outputModules(ctx)
	if len(modules) == 0 {
		// No module listing; fall back to the daemon's default module.
		modules = []string{""}
	}

	var voices []Voice
	for _, module := range modules {
		args := []string{"-L"}
		if module != "" {
			args = []string{"-o", module, "-L"}
		}
		out, err := probeOutput(ctx, "spd-say", args...)
		if err != nil {
			log.Debug().Err(err).Str("module", module).Msg("spd-say voice listing failed")
			continue
		}
		voices = append(voices, parseSpdVoices(out, module)...)
	}

	log.Debug().Int("voices", len(voices)).Msg("speech-dispatcher discovery done")
	return voices
}

// outputModules enumerates installed output modules via `spd-say -O`.
func (speechDispatcher) outputModules(ctx context.Context) []string {
	out, err := probeOutput(ctx, "spd-say", "-O")
	if err != nil {
		log.Debug().Err(err).Msg("spd-say module listing failed")
		return nil
	}
	return parseSpdModules(out)
}

func parseSpdModules(out string) []string {
	var modules []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "OUTPUT MODULES") || line == "dummy" {
			continue
		}
		modules = append(modules, line)
	}
	return modules
}

var spdColumns = regexp.MustCompile(`\s{2,}`)

// parseSpdVoices parses `spd-say -L` output. Columns are separated by runs
// of two or more spaces: NAME  LANGUAGE  VARIANT. The header line and the
// dummy voice are skipped, as is any line without at least name and language.
func parseSpdVoices(out, module string) []Voice {
	var voices []Voice
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "NAME") || strings.Contains(line, "dummy") {
			continue
		}
		parts := spdColumns.Split(line, -1)
		if len(parts) < 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		lang := strings.TrimSpace(parts[1])
		if name == "" || lang == "" {
			continue
		}
		variant := ""
		if len(parts) > 2 {
			variant = strings.TrimSpace(parts[2])
		}
		voices = append(voices, Voice{
			ID:           name,
			Backend:      BackendSpeechDispatcher,
			Language:     lang,
			Name:         displayName(name),
			Gender:       genderFromVariant(variant),
			OutputModule: module,
			Quality:      spdQuality(module),
		})
	}
	return voices
}

// genderFromVariant reads the gender out of the VARIANT column when the
// module reports one (e.g. "male1", "female2").
func genderFromVariant(variant string) Gender {
	v := strings.ToLower(variant)
	switch {
	case strings.HasPrefix(v, "female"):
		return GenderFemale
	case strings.HasPrefix(v, "male"):
		return GenderMale
	}
	return GenderUnknown
}

func spdQuality(module string) string {
	if module == "rhvoice" {
		return "high"
	}
	return "standard"
}

func displayName(id string) string {
	s := strings.ReplaceAll(id, "-", " ")
	return strings.ReplaceAll(s, "_", " ")
}

func (speechDispatcher) Invocation(v Voice, p Parameters, text string) (*invocation, error) {
	if _, err := exec.LookPath("spd-say"); err != nil {
		return nil, ErrBackendUnavailable
	}

	args := []string{"--wait"}
	if v.OutputModule != "" {
		args = append(args, "-o", v.OutputModule)
	}
	if v.ID != "" {
		args = append(args, "-y", v.ID)
	}
	args = append(args, p.SpeechDispatcherArgs()...)
	// "--" forces the text to be taken as a positional argument.
	args = append(args, "--", text)

	return &invocation{
		Stages: [][]string{append([]string{"spd-say"}, args...)},
		// Stopping spd-say alone leaves queued text in the daemon; clear it.
		Cancel: [][]string{{"spd-say", "-C"}},
	}, nil
}
