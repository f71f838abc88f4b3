// Package capture implements speech.Recognizer on top of an audio source
// and a Transcriber: it listens for one utterance, cuts it out of the
// stream, and transcribes it.
package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/abhisek/spellz/internal/audio"
	"github.com/abhisek/spellz/internal/speech"
)

var _ speech.Recognizer = (*Recognizer)(nil)

// DefaultTimeout bounds a single transcription.
const DefaultTimeout = 20 * time.Second

// Config wires a Recognizer.
type Config struct {
	// Open returns a fresh audio source for each capture.
	Open audio.OpenFunc

	Transcriber speech.Transcriber
	Segment     audio.SegmentConfig

	// Timeout bounds transcription. Zero means DefaultTimeout.
	Timeout time.Duration

	// Archive, when set, receives a WAV file of every utterance under
	// ArchiveDir.
	Archive    afero.Fs
	ArchiveDir string

	Logger *slog.Logger
}

// Recognizer captures one utterance at a time.
type Recognizer struct {
	cfg    Config
	logger *slog.Logger

	mu  sync.Mutex
	cur *run
}

type run struct {
	id       string
	cancel   context.CancelFunc
	stop     chan struct{}
	stopOnce sync.Once
	aborted  atomic.Bool
	done     chan struct{}
}

func (r *run) finished() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

func New(cfg Config) *Recognizer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Segment.SampleRate == 0 {
		cfg.Segment = audio.DefaultSegmentConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Recognizer{cfg: cfg, logger: logger.With("component", "capture")}
}

// Start opens the audio source and begins listening. Events for the
// capture are delivered to h from a background goroutine.
func (r *Recognizer) Start(h speech.Handler) error {
	if r.cfg.Open == nil || r.cfg.Transcriber == nil {
		return speech.ErrUnavailable
	}

	r.mu.Lock()
	for r.cur != nil && !r.cur.finished() {
		if !r.cur.aborted.Load() {
			r.mu.Unlock()
			return speech.ErrBusy
		}
		// An aborted capture still owns the device until its loop exits.
		done := r.cur.done
		r.mu.Unlock()
		<-done
		r.mu.Lock()
	}
	defer r.mu.Unlock()

	src, err := r.cfg.Open()
	if err != nil {
		return fmt.Errorf("%w: %v", speech.ErrUnavailable, err)
	}
	if err := src.Start(); err != nil {
		_ = src.Close()
		return fmt.Errorf("%w: %v", speech.ErrUnavailable, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cur := &run{
		id:     uuid.NewString(),
		cancel: cancel,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	r.cur = cur
	r.logger.Debug("capture started", "capture_id", cur.id)

	go r.loop(ctx, cur, src, h)
	return nil
}

// Stop ends listening. Audio heard so far is still transcribed.
func (r *Recognizer) Stop() {
	r.mu.Lock()
	cur := r.cur
	r.mu.Unlock()
	if cur == nil {
		return
	}
	cur.stopOnce.Do(func() { close(cur.stop) })
}

// Abort cancels the capture without waiting for it to wind down. Events
// already in flight may still reach the handler.
func (r *Recognizer) Abort() {
	r.mu.Lock()
	cur := r.cur
	r.mu.Unlock()
	if cur == nil || cur.finished() {
		return
	}
	cur.aborted.Store(true)
	cur.cancel()
	r.logger.Debug("capture aborted", "capture_id", cur.id)
}

// Close aborts any capture and waits for it to release the device.
func (r *Recognizer) Close() error {
	r.Abort()
	r.mu.Lock()
	cur := r.cur
	r.mu.Unlock()
	if cur != nil {
		<-cur.done
	}
	return nil
}

func (r *Recognizer) loop(ctx context.Context, cur *run, src audio.Source, h speech.Handler) {
	defer close(cur.done)
	defer cur.cancel()

	emit := func(f func()) {
		if !cur.aborted.Load() {
			f()
		}
	}

	emit(h.OnStart)
	seg := audio.NewSegmenter(r.cfg.Segment)
	readErr := r.listen(ctx, cur, src, seg)
	if err := src.Stop(); err != nil {
		r.logger.Debug("stop audio source", "error", err)
	}
	if err := src.Close(); err != nil {
		r.logger.Debug("close audio source", "error", err)
	}
	if cur.aborted.Load() {
		return
	}

	switch {
	case readErr != nil:
		r.logger.Warn("audio capture failed", "capture_id", cur.id, "error", readErr)
		emit(func() { h.OnError(readErr) })
	case !seg.Heard():
		emit(func() { h.OnError(speech.ErrNoSpeech) })
	default:
		text, err := r.transcribe(ctx, cur, seg.Samples())
		switch {
		case cur.aborted.Load():
			return
		case err != nil:
			r.logger.Warn("transcription failed", "capture_id", cur.id, "error", err)
			emit(func() { h.OnError(err) })
		case text == "":
			emit(func() { h.OnError(speech.ErrNoSpeech) })
		default:
			emit(func() { h.OnResult(text) })
		}
	}
	emit(h.OnStop)
}

func (r *Recognizer) listen(ctx context.Context, cur *run, src audio.Source, seg *audio.Segmenter) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-cur.stop:
			return nil
		default:
		}

		frame, err := src.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if seg.Push(frame) {
			return nil
		}
	}
}

func (r *Recognizer) transcribe(ctx context.Context, cur *run, samples []int16) (string, error) {
	rate := r.cfg.Segment.SampleRate
	if r.cfg.Archive != nil {
		if r.cfg.ArchiveDir != "" {
			_ = r.cfg.Archive.MkdirAll(r.cfg.ArchiveDir, 0o755)
		}
		name := path.Join(r.cfg.ArchiveDir, "utterance-"+cur.id+".wav")
		if err := audio.WriteWAV(r.cfg.Archive, name, samples, rate); err != nil {
			r.logger.Warn("archive utterance", "error", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	start := time.Now()
	text, err := r.cfg.Transcriber.Transcribe(ctx, samples, rate)
	if err != nil {
		return "", err
	}
	text = speech.CleanTranscript(text)
	r.logger.Info("transcribed utterance",
		"capture_id", cur.id,
		"samples", len(samples),
		"latency_ms", time.Since(start).Milliseconds(),
		"transcript", text,
	)
	return text, nil
}
