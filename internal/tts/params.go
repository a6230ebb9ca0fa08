package tts

import (
	"fmt"
	"strconv"
)

// Parameter ranges shared by all backends. Rate and pitch follow the
// speech-dispatcher convention of -100..100; volume is 0..100.
const (
	RateMin   = -100
	RateMax   = 100
	PitchMin  = -100
	PitchMax  = 100
	VolumeMin = 0
	VolumeMax = 100
)

// espeak-ng native ranges: words per minute and pitch steps.
const (
	espeakMinWPM  = 80
	espeakMaxWPM  = 450
	espeakMaxStep = 99
)

// Parameters is the normalized speech parameter triple. Values outside the
// valid ranges are clamped at the boundary, never rejected.
type Parameters struct {
	Rate   int // -100 (slow) .. 100 (fast)
	Pitch  int // -100 (low) .. 100 (high)
	Volume int // 0 .. 100
}

// DefaultParameters matches the defaults the settings layer ships with.
func DefaultParameters() Parameters {
	return Parameters{Rate: -25, Pitch: -25, Volume: 75}
}

// Clamp returns a copy of p with every field forced into its valid range.
func (p Parameters) Clamp() Parameters {
	return Parameters{
		Rate:   clampInt(p.Rate, RateMin, RateMax),
		Pitch:  clampInt(p.Pitch, PitchMin, PitchMax),
		Volume: clampInt(p.Volume, VolumeMin, VolumeMax),
	}
}

// Args returns the engine-specific flags for the given backend. The mapping
// is pure: identical inputs always produce identical flags.
func (p Parameters) Args(b Backend) ([]string, error) {
	switch b {
	case BackendSpeechDispatcher:
		return p.SpeechDispatcherArgs(), nil
	case BackendEspeakNG:
		return p.EspeakArgs(), nil
	case BackendPiper:
		return p.PiperArgs(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, b)
}

// SpeechDispatcherArgs maps to spd-say flags. Rate and pitch are already in
// speech-dispatcher's native -100..100 range and pass through unchanged;
// volume passes through as 0..100.
func (p Parameters) SpeechDispatcherArgs() []string {
	p = p.Clamp()
	return []string{
		"-r", strconv.Itoa(p.Rate),
		"-p", strconv.Itoa(p.Pitch),
		"-i", strconv.Itoa(p.Volume),
	}
}

// EspeakArgs maps to espeak-ng flags. Rate maps linearly onto 80..450 words
// per minute, pitch onto espeak's 0..99 scale; volume passes through.
func (p Parameters) EspeakArgs() []string {
	p = p.Clamp()
	wpm := espeakMinWPM + (p.Rate+100)*(espeakMaxWPM-espeakMinWPM)/200
	pitch := (p.Pitch + 100) * espeakMaxStep / 200
	return []string{
		"-s", strconv.Itoa(wpm),
		"-p", strconv.Itoa(pitch),
		"-a", strconv.Itoa(p.Volume),
	}
}

// PiperArgs maps to piper flags. Piper has no rate knob; speed is expressed
// inversely through the length-scale multiplier. Pitch has no Piper
// equivalent and is dropped by the invocation builder. Volume is handled
// post-synthesis (see SoxGain), not here.
func (p Parameters) PiperArgs() []string {
	return []string{
		"--length_scale", fmt.Sprintf("%.2f", p.PiperLengthScale()),
	}
}

// PiperLengthScale converts the normalized rate into Piper's inverse-speed
// multiplier: rate=0 yields 1.0, rate=100 yields 0.3 (fast), rate=-100
// yields 2.5 (slow). Monotonically decreasing in rate.
func (p Parameters) PiperLengthScale() float64 {
	r := float64(clampInt(p.Rate, RateMin, RateMax))
	if r >= 0 {
		return 1.0 - r/100*0.7
	}
	return 1.0 - r/100*1.5
}

// SoxGain converts the 0..100 volume into the gain factor applied by the
// optional sox stage of the Piper pipeline. Volume 50 is unity gain; the
// floor of 0.2 keeps output audible rather than silently muted.
func (p Parameters) SoxGain() float64 {
	v := float64(clampInt(p.Volume, VolumeMin, VolumeMax))
	gain := v / 50.0
	if gain < 0.2 {
		return 0.2
	}
	if gain > 2.0 {
		return 2.0
	}
	return gain
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
