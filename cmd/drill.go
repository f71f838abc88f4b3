package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/spellz/internal/practice"
)

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Practice in the plain terminal, one line per answer",
	Long: `Run a practice session without the full-screen interface.

Type the word you hear and press Enter. An empty line repeats the word,
"!" listens for a spoken answer and "?" shows the hint again.`,
	Args: cobra.NoArgs,
	RunE: runDrill,
}

func runDrill(cmd *cobra.Command, args []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	changes := make(chan struct{}, 1)
	coord, err := rt.newCoordinator(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer coord.Close()

	d := &drill{
		coord:   coord,
		changes: changes,
		lines:   readLines(cmd.InOrStdin()),
		out:     cmd.OutOrStdout(),
	}
	d.typed, d.spoken = practice.Affirmations(rt.cfg.Name)
	return d.run(cmd.Context())
}

type drill struct {
	coord   *practice.Coordinator
	changes <-chan struct{}
	lines   <-chan string
	out     io.Writer

	typed, spoken string
}

func (d *drill) run(ctx context.Context) error {
	d.announce()
	for {
		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-d.lines:
			if !ok {
				return nil
			}
			line = l
		}

		gen := d.coord.Snapshot().Generation
		praise := d.typed
		correct := false

		switch strings.TrimSpace(line) {
		case "":
			d.coord.SpeakTarget()
		case "?":
			d.hint()
		case "!":
			praise = d.spoken
			ok, err := d.listen(ctx, gen)
			if err != nil {
				return nil
			}
			correct = ok
		default:
			d.coord.UpdateTyped(line)
			switch d.coord.SubmitTyped() {
			case practice.OutcomeCorrect:
				correct = true
			case practice.OutcomeRetry:
				fmt.Fprintln(d.out, "✗ Not quite. Listen again and try once more.")
			}
		}
		if !correct {
			continue
		}

		fmt.Fprintln(d.out, "✓ Correct! "+praise)
		next, err := d.awaitAdvance(ctx, gen)
		if err != nil {
			return nil
		}
		if next.Completed {
			fmt.Fprintf(d.out, "\n★ All done! You spelled all %d words.\n", next.Total)
			return nil
		}
		d.announce()
	}
}

func (d *drill) announce() {
	snap := d.coord.Snapshot()
	fmt.Fprintf(d.out, "\nWord %d of %d\n", snap.Position(), snap.Total)
	d.hint()
	d.coord.SpeakTarget()
}

func (d *drill) hint() {
	if h := d.coord.Snapshot().Entry.Hint; h != "" {
		fmt.Fprintln(d.out, "Hint: "+h)
	}
}

// solved reports whether the word of generation gen has been answered
// correctly, even if the run already moved on.
func solved(snap practice.Snapshot, gen uint64) bool {
	return snap.Correct || snap.Completed || snap.Generation != gen
}

// listen runs one spoken attempt at the word of generation gen and
// reports whether it was correct.
func (d *drill) listen(ctx context.Context, gen uint64) (bool, error) {
	before := d.coord.Snapshot().Input
	d.coord.ToggleListening()
	snap := d.coord.Snapshot()
	if snap.Capturing {
		fmt.Fprintln(d.out, "● Listening... say the word")
	}
	for snap.Capturing && !solved(snap, gen) {
		if err := d.wait(ctx); err != nil {
			d.coord.CancelListening()
			return false, err
		}
		snap = d.coord.Snapshot()
	}
	if solved(snap, gen) {
		return true, nil
	}

	switch snap.Feedback {
	case practice.FeedbackRetry:
		if snap.Input != before {
			fmt.Fprintf(d.out, "Heard %q.\n", snap.Input)
		}
		fmt.Fprintln(d.out, "✗ Not quite. Listen again and try once more.")
	case practice.FeedbackUnsupported:
		fmt.Fprintln(d.out, "Speaking isn't available here. Please type your answer.")
	default:
		fmt.Fprintln(d.out, "Didn't catch that. Press ! to try again.")
	}
	return false, nil
}

// awaitAdvance blocks until the run moves past generation gen.
func (d *drill) awaitAdvance(ctx context.Context, gen uint64) (practice.Snapshot, error) {
	for {
		snap := d.coord.Snapshot()
		if snap.Completed || snap.Generation != gen {
			return snap, nil
		}
		if err := d.wait(ctx); err != nil {
			return snap, err
		}
	}
}

func (d *drill) wait(ctx context.Context) error {
	select {
	case <-d.changes:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// readLines feeds r line by line into a channel that closes at EOF, so
// the drill loop can also watch for interrupts.
func readLines(r io.Reader) <-chan string {
	if r == nil {
		r = os.Stdin
	}
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()
	return lines
}
