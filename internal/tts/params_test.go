package tts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		in       Parameters
		expected Parameters
	}{
		{
			name:     "values in range pass through",
			in:       Parameters{Rate: -25, Pitch: 30, Volume: 75},
			expected: Parameters{Rate: -25, Pitch: 30, Volume: 75},
		},
		{
			name:     "values above range clamp to max",
			in:       Parameters{Rate: 500, Pitch: 101, Volume: 9999},
			expected: Parameters{Rate: 100, Pitch: 100, Volume: 100},
		},
		{
			name:     "values below range clamp to min",
			in:       Parameters{Rate: -101, Pitch: -500, Volume: -1},
			expected: Parameters{Rate: -100, Pitch: -100, Volume: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.in.Clamp())
		})
	}
}

func TestSpeechDispatcherArgsPassThrough(t *testing.T) {
	args := Parameters{Rate: -25, Pitch: 10, Volume: 75}.SpeechDispatcherArgs()
	assert.Equal(t, []string{"-r", "-25", "-p", "10", "-i", "75"}, args)
}

func TestEspeakArgs(t *testing.T) {
	tests := []struct {
		name          string
		params        Parameters
		expectedWPM   string
		expectedPitch string
	}{
		{
			name:          "maximum rate maps to 450 wpm",
			params:        Parameters{Rate: 100, Pitch: 100, Volume: 100},
			expectedWPM:   "450",
			expectedPitch: "99",
		},
		{
			name:          "minimum rate maps to 80 wpm",
			params:        Parameters{Rate: -100, Pitch: -100},
			expectedWPM:   "80",
			expectedPitch: "0",
		},
		{
			name:          "neutral rate lands mid-range",
			params:        Parameters{Rate: 0, Pitch: 0, Volume: 100},
			expectedWPM:   "265",
			expectedPitch: "49",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.params.EspeakArgs()
			require.Len(t, args, 6)
			assert.Equal(t, "-s", args[0])
			assert.Equal(t, tt.expectedWPM, args[1])
			assert.Equal(t, "-p", args[2])
			assert.Equal(t, tt.expectedPitch, args[3])
		})
	}
}

func TestPiperLengthScale(t *testing.T) {
	tests := []struct {
		name     string
		rate     int
		expected float64
	}{
		{name: "neutral rate is unity", rate: 0, expected: 1.0},
		{name: "maximum rate is fastest", rate: 100, expected: 0.3},
		{name: "minimum rate is slowest", rate: -100, expected: 2.5},
		{name: "half speed up", rate: 50, expected: 0.65},
		{name: "half slow down", rate: -50, expected: 1.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scale := Parameters{Rate: tt.rate}.PiperLengthScale()
			assert.InDelta(t, tt.expected, scale, 1e-9)
		})
	}
}

func TestPiperLengthScaleMonotonicDecreasing(t *testing.T) {
	prev := Parameters{Rate: -100}.PiperLengthScale()
	for rate := -99; rate <= 100; rate++ {
		scale := Parameters{Rate: rate}.PiperLengthScale()
		require.Less(t, scale, prev, "length scale must strictly decrease, broke at rate=%d", rate)
		prev = scale
	}
}

func TestSoxGain(t *testing.T) {
	tests := []struct {
		volume   int
		expected float64
	}{
		{volume: 50, expected: 1.0},
		{volume: 100, expected: 2.0},
		{volume: 0, expected: 0.2},
		{volume: 25, expected: 0.5},
	}

	for _, tt := range tests {
		gain := Parameters{Volume: tt.volume}.SoxGain()
		assert.InDelta(t, tt.expected, gain, 1e-9, "volume=%d", tt.volume)
	}
}

func TestArgsAreDeterministic(t *testing.T) {
	p := Parameters{Rate: 42, Pitch: -13, Volume: 88}
	for _, backend := range Backends() {
		first, err := p.Args(backend)
		require.NoError(t, err)
		second, err := p.Args(backend)
		require.NoError(t, err)
		assert.Equal(t, first, second, "backend %s", backend)
	}
}

func TestArgsUnknownBackend(t *testing.T) {
	_, err := Parameters{}.Args(Backend("festival"))
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
