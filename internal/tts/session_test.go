package tts

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biglinux/tts-biglinux/internal/textproc"
)

// testSession wires the state machine to an arbitrary command so no TTS
// engine is needed to exercise it.
func testSession(argv ...string) *Session {
	s := NewSession()
	s.build = func(v Voice, p Parameters, text string) (*invocation, error) {
		return &invocation{Stages: [][]string{argv}}, nil
	}
	return s
}

func testVoice() Voice {
	return Voice{ID: "test", Backend: BackendEspeakNG, Language: "en"}
}

func TestStopOnFreshSessionIsNoop(t *testing.T) {
	s := NewSession()
	s.Stop()
	s.Stop() // idempotent
	assert.Equal(t, StateIdle, s.State())
	assert.Empty(t, s.PIDs())
}

func TestDoneClosedWhileIdle(t *testing.T) {
	s := NewSession()
	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("Done must be closed for an idle session")
	}
}

func TestSpeakEmptyTextNeverLaunches(t *testing.T) {
	s := NewSession()
	built := false
	s.build = func(Voice, Parameters, string) (*invocation, error) {
		built = true
		return nil, errors.New("must not be reached")
	}

	tests := []struct {
		name string
		text string
		opts textproc.Options
	}{
		{name: "blank text", text: "   \n\t"},
		{name: "markup only", text: "<div><span></span></div>", opts: textproc.Options{StripFormatting: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Speak(context.Background(), tt.text, testVoice(), Parameters{}, tt.opts)
			assert.NoError(t, err)
			assert.False(t, built, "no process may be launched for empty text")
			assert.Equal(t, StateIdle, s.State())
		})
	}
}

func TestSpeakLaunchFailureReturnsToIdle(t *testing.T) {
	s := testSession("/nonexistent/definitely-not-a-binary")
	err := s.Speak(context.Background(), "hello", testVoice(), Parameters{}, textproc.Options{})

	var launchErr *LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, BackendEspeakNG, launchErr.Backend)
	assert.Equal(t, StateIdle, s.State(), "a failed launch must never leave the session Speaking")
}

func TestSpeakUnknownBackend(t *testing.T) {
	s := NewSession() // real invocation builder
	v := Voice{ID: "x", Backend: Backend("festival")}
	err := s.Speak(context.Background(), "hello", v, Parameters{}, textproc.Options{})
	assert.ErrorIs(t, err, ErrUnknownBackend)
	assert.Equal(t, StateIdle, s.State())
}

func TestSpeakThenStop(t *testing.T) {
	s := testSession("sleep", "5")
	err := s.Speak(context.Background(), "hello", testVoice(), Parameters{}, textproc.Options{})
	require.NoError(t, err)
	assert.Equal(t, StateSpeaking, s.State())

	pids := s.PIDs()
	require.Len(t, pids, 1)

	s.Stop()
	assert.Equal(t, StateIdle, s.State())
	assert.Empty(t, s.PIDs())

	assert.Eventually(t, func() bool {
		return syscall.Kill(pids[0], 0) != nil
	}, 3*time.Second, 50*time.Millisecond, "stopped process must go away")

	s.Stop() // racing a finished pipeline stays a no-op
	assert.Equal(t, StateIdle, s.State())
}

func TestNaturalCompletionFlipsBackToIdle(t *testing.T) {
	s := testSession("sleep", "0.5")
	err := s.Speak(context.Background(), "hello", testVoice(), Parameters{}, textproc.Options{})
	require.NoError(t, err)
	assert.Equal(t, StateSpeaking, s.State())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Wait(ctx))
	assert.Equal(t, StateIdle, s.State())
}

func TestSpeakWhileSpeakingReplaces(t *testing.T) {
	s := testSession("sleep", "5")

	require.NoError(t, s.Speak(context.Background(), "first", testVoice(), Parameters{}, textproc.Options{}))
	first := s.PIDs()
	require.Len(t, first, 1)

	require.NoError(t, s.Speak(context.Background(), "second", testVoice(), Parameters{}, textproc.Options{}))
	second := s.PIDs()
	require.Len(t, second, 1, "at most one live pipeline after overlapping Speak")
	assert.NotEqual(t, first[0], second[0])

	assert.Eventually(t, func() bool {
		return syscall.Kill(first[0], 0) != nil
	}, 3*time.Second, 50*time.Millisecond, "the superseded process must be terminated")

	s.Stop()
	assert.Equal(t, StateIdle, s.State())
}

func TestStateChangeCallback(t *testing.T) {
	s := testSession("sleep", "5")
	var transitions []State
	s.OnStateChange(func(st State) { transitions = append(transitions, st) })

	require.NoError(t, s.Speak(context.Background(), "hello", testVoice(), Parameters{}, textproc.Options{}))
	s.Stop()

	assert.Equal(t, []State{StateSpeaking, StateIdle}, transitions)
}
