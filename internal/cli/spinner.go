package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/matzehuels/qrnoize/pkg/observability"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a one-line status until stopped or until its context ends.
// The message can change while it runs.
type Spinner struct {
	w      io.Writer
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	message string
	width   int // widest line drawn so far
	started bool
	stopped chan struct{}
}

// spinnerOutput returns stderr when it is a terminal and io.Discard
// otherwise, so redirected output carries no animation frames.
func spinnerOutput() io.Writer {
	if fd := os.Stderr.Fd(); isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return os.Stderr
	}
	return io.Discard
}

// newSpinner creates a spinner drawing to w.
func newSpinner(ctx context.Context, w io.Writer, message string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		parent:  ctx,
		ctx:     sctx,
		cancel:  cancel,
		message: message,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation. Calling it twice has no effect.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// Update replaces the message shown from the next frame on.
func (s *Spinner) Update(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.mu.Lock()
	s.message = msg
	s.mu.Unlock()
}

// Message returns the current message.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Stop ends the animation and clears the line. It is safe to call more
// than once and without Start.
func (s *Spinner) Stop() {
	s.cancel()
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if started {
		<-s.stopped
	}
}

// StopWithError stops the spinner and prints message as an error.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the parent context ended before Stop.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := frame + " " + s.message
	s.width = max(s.width, len(line))
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width+1))
	}
}

// runProgress shows batch progress on a spinner. It receives pipeline
// events, which may arrive from several workers at once.
type runProgress struct {
	observability.NoopPipelineHooks
	spinner *Spinner

	mu     sync.Mutex
	layers int
	images int
	failed int
}

func (p *runProgress) OnFlushStart(_ context.Context, stack string, layers int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.layers, p.images, p.failed = layers, 0, 0
	p.spinner.Update("%s: %d layers", stackLabel(stack), layers)
}

func (p *runProgress) OnImageComplete(_ context.Context, stack, _ string, _ time.Duration, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.images++
	if err != nil {
		p.failed++
	}
	msg := fmt.Sprintf("%s: %d layers · %d images", stackLabel(stack), p.layers, p.images)
	if p.failed > 0 {
		msg += fmt.Sprintf(" · %d failed", p.failed)
	}
	p.spinner.Update("%s", msg)
}

// trackRun routes pipeline events to s until the returned function is called.
func trackRun(s *Spinner) (restore func()) {
	prev := observability.Pipeline()
	observability.SetPipelineHooks(&runProgress{spinner: s})
	return func() { observability.SetPipelineHooks(prev) }
}
