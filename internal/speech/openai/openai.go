// Package openai provides speech capture and speech output backed by the
// OpenAI audio API: Whisper transcription and text-to-speech.
package openai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/samber/lo"
	oai "github.com/sashabaranov/go-openai"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/spellz/internal/audio"
	"github.com/abhisek/spellz/internal/speech"
)

const (
	DefaultTranscribeModel = oai.Whisper1
	DefaultSpeechModel     = oai.TTSModel1
	DefaultVoice           = oai.VoiceAlloy

	// PCMSampleRate is the rate of raw PCM returned by the speech endpoint.
	PCMSampleRate = 24000
)

var (
	_ speech.Transcriber = (*Transcriber)(nil)
	_ speech.Synthesizer = (*Synthesizer)(nil)
)

type config struct {
	baseURL         string
	transcribeModel string
	speechModel     oai.SpeechModel
	voice           oai.SpeechVoice
	language        string
	logger          *slog.Logger
}

// Option is a functional option for the OpenAI speech backends.
type Option func(*config)

// WithBaseURL overrides the API base URL, e.g. for a compatible server.
func WithBaseURL(url string) Option {
	return func(c *config) { c.baseURL = url }
}

func WithVoice(voice string) Option {
	return func(c *config) { c.voice = oai.SpeechVoice(voice) }
}

// WithLanguage sets the ISO-639-1 transcription language hint.
func WithLanguage(lang string) Option {
	return func(c *config) { c.language = lang }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

func newConfig(opts []Option) *config {
	c := &config{
		transcribeModel: DefaultTranscribeModel,
		speechModel:     DefaultSpeechModel,
		voice:           DefaultVoice,
		language:        "en",
		logger:          slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func newClient(apiKey string, c *config) (*oai.Client, error) {
	if apiKey == "" {
		return nil, errors.New("openai speech: API key must not be empty")
	}
	cfg := oai.DefaultConfig(apiKey)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	return oai.NewClientWithConfig(cfg), nil
}

// Transcriber sends each utterance to the transcription endpoint as WAV.
type Transcriber struct {
	client   *oai.Client
	model    string
	language string
}

func NewTranscriber(apiKey string, opts ...Option) (*Transcriber, error) {
	c := newConfig(opts)
	client, err := newClient(apiKey, c)
	if err != nil {
		return nil, err
	}
	return &Transcriber{client: client, model: c.transcribeModel, language: c.language}, nil
}

func (t *Transcriber) Transcribe(ctx context.Context, samples []int16, sampleRate int) (string, error) {
	wav, err := audio.EncodeWAV(samples, sampleRate)
	if err != nil {
		return "", err
	}
	resp, err := t.client.CreateTranscription(ctx, oai.AudioRequest{
		Model:    t.model,
		FilePath: "utterance.wav",
		Reader:   bytes.NewReader(wav),
		Language: t.language,
	})
	if err != nil {
		return "", fmt.Errorf("openai transcription: %w", err)
	}
	return resp.Text, nil
}

// Player plays raw 16-bit little-endian mono PCM.
type Player interface {
	Play(ctx context.Context, r io.Reader) error
}

type utterance struct {
	text string
	opts speech.Options
}

// Synthesizer renders text through the speech endpoint and plays it.
// Utterances are spoken one at a time in order; when the queue is full
// new ones are dropped.
type Synthesizer struct {
	client *oai.Client
	model  oai.SpeechModel
	voice  oai.SpeechVoice
	player Player
	logger *slog.Logger

	queue  chan utterance
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSynthesizer(apiKey string, player Player, opts ...Option) (*Synthesizer, error) {
	c := newConfig(opts)
	client, err := newClient(apiKey, c)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Synthesizer{
		client: client,
		model:  c.speechModel,
		voice:  c.voice,
		player: player,
		logger: c.logger.With("component", "tts"),
		queue:  make(chan utterance, 8),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.run()
	return s, nil
}

func (s *Synthesizer) Speak(text string, opts speech.Options) {
	if s.ctx.Err() != nil {
		return
	}
	select {
	case s.queue <- utterance{text: text, opts: opts}:
	default:
		s.logger.Debug("speech queue full, dropping utterance", "text", text)
	}
}

// Close stops playback and waits for the worker to exit.
func (s *Synthesizer) Close() error {
	s.cancel()
	<-s.done
	return nil
}

func (s *Synthesizer) run() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case u := <-s.queue:
			if err := s.say(s.ctx, u); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Warn("speak failed", "text", u.text, "error", err)
			}
		}
	}
}

func (s *Synthesizer) say(ctx context.Context, u utterance) error {
	speed := 1.0
	if u.opts.Rate > 0 {
		speed = lo.Clamp(u.opts.Rate, 0.25, 4.0)
	}
	resp, err := s.client.CreateSpeech(ctx, oai.CreateSpeechRequest{
		Model:          s.model,
		Input:          u.text,
		Voice:          s.voice,
		ResponseFormat: oai.SpeechResponseFormatPcm,
		Speed:          speed,
	})
	if err != nil {
		return fmt.Errorf("openai speech: %w", err)
	}

	// Playback starts while the rest of the audio is still downloading.
	pr, pw := io.Pipe()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer resp.Close()
		_, err := io.Copy(pw, resp)
		pw.CloseWithError(err)
		return err
	})
	g.Go(func() error {
		err := s.player.Play(gctx, pr)
		pr.CloseWithError(err)
		return err
	})
	return g.Wait()
}
