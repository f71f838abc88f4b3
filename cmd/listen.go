package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/abhisek/spellz/internal/audio"
	"github.com/abhisek/spellz/internal/speech"
	"github.com/abhisek/spellz/internal/speech/capture"
)

var listenCmd = &cobra.Command{
	Use:   "listen [recording.wav]",
	Short: "Capture one spoken word and print the transcript",
	Long: `Listen on the microphone for one word and print what the speech
backend heard. With a WAV file, transcribe the recording instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.close()

		rec := rt.speech.Recognizer
		if len(args) == 1 {
			if rt.speech.Transcriber == nil {
				return fmt.Errorf("speech backend %q cannot transcribe: %w", rt.speech.Listen, speech.ErrUnavailable)
			}
			samples, rate, err := audio.ReadWAV(afero.NewOsFs(), args[0])
			if err != nil {
				return err
			}
			seg := audio.DefaultSegmentConfig()
			seg.SampleRate = rate
			fileRec := capture.New(capture.Config{
				Open: func() (audio.Source, error) {
					return audio.NewSampleSource(samples, seg.FrameSize), nil
				},
				Transcriber: rt.speech.Transcriber,
				Segment:     seg,
				Logger:      rt.logger,
			})
			defer fileRec.Close()
			rec = fileRec
		}
		if rec == nil {
			return fmt.Errorf("speech backend %q cannot listen: %w", rt.speech.Listen, speech.ErrUnavailable)
		}

		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "● Listening... say a word")
		}
		text, err := listenOnce(cmd.Context(), rec)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

// listenOnce runs one capture and returns its transcript.
func listenOnce(ctx context.Context, rec speech.Recognizer) (string, error) {
	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)
	report := func(o outcome) {
		select {
		case done <- o:
		default:
		}
	}

	err := rec.Start(speech.HandlerFuncs{
		Result: func(t string) { report(outcome{text: t}) },
		Error:  func(err error) { report(outcome{err: err}) },
		Stop:   func() { report(outcome{err: speech.ErrNoSpeech}) },
	})
	if err != nil {
		return "", err
	}

	select {
	case o := <-done:
		if errors.Is(o.err, speech.ErrNoSpeech) {
			return "", errors.New("didn't hear a word")
		}
		return o.text, o.err
	case <-ctx.Done():
		rec.Abort()
		return "", ctx.Err()
	}
}
