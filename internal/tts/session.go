package tts

import (
	"context"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/biglinux/tts-biglinux/internal/textproc"
)

// State of the speech session.
type State int

const (
	StateIdle State = iota
	StateSpeaking
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSpeaking:
		return "speaking"
	}
	return "unknown"
}

const (
	// launchGrace is how long Speak watches a fresh pipeline for an
	// immediate failure before reporting success.
	launchGrace = 150 * time.Millisecond

	// termGrace is how long a stopped process gets to honor SIGTERM before
	// it is killed.
	termGrace = 2 * time.Second
)

// Session owns the single in-flight synthesis pipeline. Speak and Stop
// serialize against each other, so at most one external synthesis process
// tree is ever alive. The zero state is Idle.
type Session struct {
	mu         sync.Mutex
	state      State
	stages     []*exec.Cmd
	cancel     [][]string
	generation int
	done       chan struct{}
	exitErr    error
	onState    func(State)

	// build constructs the invocation for a speak request. Overridable so
	// tests can run the state machine against harmless commands.
	build func(Voice, Parameters, string) (*invocation, error)
}

// NewSession creates an idle session.
func NewSession() *Session {
	return &Session{build: buildInvocation}
}

func buildInvocation(v Voice, p Parameters, text string) (*invocation, error) {
	eng, err := engineFor(v.Backend)
	if err != nil {
		return nil, err
	}
	return eng.Invocation(v, p, text)
}

// OnStateChange registers a callback invoked on every state transition. The
// callback runs with the session lock held and must not call back in.
func (s *Session) OnStateChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onState = fn
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// PIDs returns the process ids of the running pipeline, outermost first.
// Empty when idle.
func (s *Session) PIDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var pids []int
	for _, cmd := range s.stages {
		if cmd.Process != nil {
			pids = append(pids, cmd.Process.Pid)
		}
	}
	return pids
}

// Speak normalizes the text and starts synthesis with the given voice and
// parameters. Text that normalizes to empty is a no-op and the session stays
// Idle. Any active speech is stopped first; the last caller wins.
func (s *Session) Speak(ctx context.Context, text string, v Voice, p Parameters, opts textproc.Options) error {
	normalized := textproc.Process(text, opts)
	if strings.TrimSpace(normalized) == "" {
		log.Debug().Msg("text empty after normalization, nothing to speak")
		return nil
	}

	inv, err := s.build(v, p.Clamp(), normalized)
	if err != nil {
		return &LaunchError{Backend: v.Backend, Err: err}
	}

	s.mu.Lock()
	if s.state == StateSpeaking {
		s.stopLocked()
	}

	stages, err := startPipeline(ctx, inv)
	if err != nil {
		s.setStateLocked(StateIdle)
		s.mu.Unlock()
		return &LaunchError{Backend: v.Backend, Err: err}
	}

	s.stages = stages
	s.cancel = inv.Cancel
	s.exitErr = nil
	s.generation++
	s.done = make(chan struct{})
	gen, done := s.generation, s.done
	s.setStateLocked(StateSpeaking)
	s.mu.Unlock()

	go s.watch(gen, stages, done)

	// Catch processes that die right away (bad model, broken audio setup) so
	// the caller gets a speak failure instead of a phantom Speaking state.
	select {
	case <-done:
		s.mu.Lock()
		exitErr := s.exitErr
		s.mu.Unlock()
		if exitErr != nil {
			return &LaunchError{Backend: v.Backend, Err: exitErr}
		}
		return nil
	case <-time.After(launchGrace):
		return nil
	}
}

// watch waits for the playback process to finish, reaps the rest of the
// pipeline and flips the session back to Idle unless a newer speak or an
// explicit stop already superseded this generation.
func (s *Session) watch(gen int, stages []*exec.Cmd, done chan struct{}) {
	last := stages[len(stages)-1]
	err := last.Wait()

	for _, stage := range stages[:len(stages)-1] {
		if stage.Process != nil {
			_ = stage.Process.Kill()
		}
		_ = stage.Wait()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return // stopped or replaced; state already handled
	}
	if err != nil {
		log.Debug().Err(err).Msg("speech process exited with error")
		s.exitErr = err
	}
	s.stages = nil
	s.setStateLocked(StateIdle)
	close(done)
}

// Stop terminates the current speech. Idempotent: stopping an idle session,
// or racing a pipeline that already finished on its own, is a no-op.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Session) stopLocked() {
	if s.state != StateSpeaking {
		return
	}

	for _, cmd := range s.stages {
		terminate(cmd)
	}
	for _, argv := range s.cancel {
		runCancel(argv)
	}

	// Invalidate the watcher for this generation; it will still reap the
	// processes but must not touch the state again.
	s.generation++
	s.stages = nil
	s.cancel = nil
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	s.setStateLocked(StateIdle)
	log.Debug().Msg("speech stopped")
}

// Done returns a channel closed when the current speech finishes or is
// stopped. A closed channel is returned while idle.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateIdle || s.done == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return s.done
}

// Wait blocks until the current speech finishes, is stopped, or ctx is done.
func (s *Session) Wait(ctx context.Context) error {
	select {
	case <-s.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) setStateLocked(state State) {
	if state == s.state {
		return
	}
	old := s.state
	s.state = state
	log.Debug().Stringer("from", old).Stringer("to", state).Msg("session state")
	if s.onState != nil {
		s.onState(state)
	}
}

// terminate asks a process to exit and kills it if it lingers. Errors are
// ignored: the process may already have exited on its own.
func terminate(cmd *exec.Cmd) {
	proc := cmd.Process
	if proc == nil {
		return
	}
	_ = proc.Signal(syscall.SIGTERM)
	time.AfterFunc(termGrace, func() {
		_ = proc.Kill()
	})
}

// runCancel fires a backend cancel command (e.g. spd-say -C) with a short
// deadline, ignoring failures.
func runCancel(argv []string) {
	ctx, cancel := context.WithTimeout(context.Background(), termGrace)
	defer cancel()
	if err := exec.CommandContext(ctx, argv[0], argv[1:]...).Run(); err != nil {
		log.Debug().Err(err).Str("cmd", argv[0]).Msg("backend cancel command failed")
	}
}

// startPipeline launches the invocation's stages connected stdout-to-stdin.
// On any start failure the already-started stages are killed.
func startPipeline(ctx context.Context, inv *invocation) ([]*exec.Cmd, error) {
	cmds := make([]*exec.Cmd, 0, len(inv.Stages))
	for i, argv := range inv.Stages {
		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
		if i == 0 && inv.Input != "" {
			cmd.Stdin = strings.NewReader(inv.Input)
		}
		if i > 0 {
			pipe, err := cmds[i-1].StdoutPipe()
			if err != nil {
				return nil, err
			}
			cmd.Stdin = pipe
		}
		cmds = append(cmds, cmd)
	}

	for i, cmd := range cmds {
		if err := cmd.Start(); err != nil {
			for _, started := range cmds[:i] {
				if started.Process != nil {
					_ = started.Process.Kill()
				}
				go func(c *exec.Cmd) { _ = c.Wait() }(started)
			}
			return nil, err
		}
	}
	return cmds, nil
}
