// Package voice provides text-to-speech through an external synthesizer
// binary (espeak-ng by default). Speech runs fire-and-forget so the prompt
// is never blocked; Close joins outstanding utterances with a bounded wait
// and abandons whatever is still playing.
package voice

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"gengar/internal/config"
	"gengar/internal/logging"
)

// Speaker is what the router needs from a speech output device.
type Speaker interface {
	Speak(text string)
	Close(ctx context.Context) error
}

// Engine shells out to a TTS binary per utterance.
type Engine struct {
	bin      string
	rate     int
	volume   float64
	timeout  time.Duration
	log      *logging.Logger
	wg       sync.WaitGroup
	disabled atomic.Bool
}

// NewEngine resolves the configured synthesizer binary. A missing binary
// is an init failure; the caller degrades to text-only for the session.
func NewEngine(cfg *config.Config, log *logging.Logger) (*Engine, error) {
	bin, err := exec.LookPath(cfg.VoiceEngine)
	if err != nil {
		return nil, fmt.Errorf("voice engine %q not found in PATH: %w", cfg.VoiceEngine, err)
	}
	return &Engine{
		bin:     bin,
		rate:    cfg.VoiceRate,
		volume:  cfg.VoiceVolume,
		timeout: time.Duration(cfg.SpeakTimeoutSec) * time.Second,
		log:     log,
	}, nil
}

// Speak queues one utterance and returns immediately. A synthesis failure
// is logged and disables speech for the rest of the session.
func (e *Engine) Speak(text string) {
	if text == "" || e.disabled.Load() {
		return
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		defer cancel()

		// espeak-ng flags: -s words/min, -a amplitude 0..200
		amp := int(e.volume * 200)
		cmd := exec.CommandContext(ctx, e.bin,
			"-s", strconv.Itoa(e.rate),
			"-a", strconv.Itoa(amp),
			text,
		)
		if err := cmd.Run(); err != nil {
			e.log.Errorf("speech synthesis failed: %v", err)
			e.disabled.Store(true)
		}
	}()
}

// Listen is the placeholder for speech recognition; it returns an empty
// string until a recognizer is wired in.
func (e *Engine) Listen(ctx context.Context) (string, error) {
	e.log.Infof("voice input not yet implemented")
	return "", nil
}

// Close waits for queued utterances up to the context deadline, then
// abandons them. Abandoned processes are killed by their own timeouts.
func (e *Engine) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		e.log.Warnf("abandoning in-flight speech at shutdown")
		return ctx.Err()
	}
}

// Noop is the Speaker used when voice mode is off or failed to init.
type Noop struct{}

func (Noop) Speak(string) {}

func (Noop) Close(context.Context) error { return nil }
