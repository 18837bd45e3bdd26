// Package speech wraps a system text-to-speech command behind a capability
// interface so the session can schedule pronunciation playback.
package speech

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"sync"
)

//go:generate mockgen -source=speech.go -destination=../mocks/speech/mock_speaker.go -package=mock_speech Speaker

// Speaker starts playback of a text. Starting a new playback stops any
// currently playing one.
type Speaker interface {
	Speak(ctx context.Context, text string, localeTag string) error
	Stop()
}

// CommandSpeaker shells out to a text-to-speech command such as say or
// espeak. Playback runs in the background; completion only clears the
// speaking indicator.
type CommandSpeaker struct {
	command    string
	localeFlag string
	logger     *slog.Logger

	mu         sync.Mutex
	cancel     context.CancelFunc
	generation uint64
	speaking   bool
}

var _ Speaker = (*CommandSpeaker)(nil)

// NewCommandSpeaker creates a CommandSpeaker. localeFlag is the flag the
// command takes for a voice/locale, e.g. "-v"; empty disables locale
// passing. An empty command makes every playback a no-op.
func NewCommandSpeaker(command string, localeFlag string) *CommandSpeaker {
	return &CommandSpeaker{
		command:    command,
		localeFlag: localeFlag,
		logger:     slog.Default(),
	}
}

// Speak stops any current playback and starts a new one.
func (s *CommandSpeaker) Speak(ctx context.Context, text string, localeTag string) error {
	if s.command == "" || text == "" {
		return nil
	}

	// playback outlives the caller's context; only a newer playback or Stop
	// cancels it
	playbackCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.generation++
	generation := s.generation
	s.speaking = true
	s.mu.Unlock()

	args := make([]string, 0, 3)
	if s.localeFlag != "" && localeTag != "" {
		args = append(args, s.localeFlag, localeTag)
	}
	args = append(args, text)

	cmd := exec.CommandContext(playbackCtx, s.command, args...)
	if err := cmd.Start(); err != nil {
		s.clear(generation)
		return fmt.Errorf("cmd.Start(%s) > %w", s.command, err)
	}

	go func() {
		err := cmd.Wait()
		s.clear(generation)
		if err != nil && playbackCtx.Err() == nil {
			s.logger.Debug("speech playback failed", "command", s.command, "error", err)
		}
	}()
	return nil
}

// Stop cancels any active playback.
func (s *CommandSpeaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.speaking = false
}

// Speaking reports whether a playback is currently active.
func (s *CommandSpeaker) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speaking
}

// clear resets the indicator unless a newer playback has superseded the one
// that finished.
func (s *CommandSpeaker) clear(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.speaking = false
}
