package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/mmynk/tipsplit/internal/display"
	"github.com/mmynk/tipsplit/internal/idgen"
	"github.com/mmynk/tipsplit/internal/models"
	"github.com/mmynk/tipsplit/internal/roster"
	"github.com/mmynk/tipsplit/pkg/logging"
)

type options struct {
	bill    float64
	tip     int
	maxTip  int
	people  string
	locks   lockFlags
	json    bool
	verbose bool
}

// lockFlags collects repeated -lock NAME=AMOUNT values.
type lockFlags []string

func (l *lockFlags) String() string { return strings.Join(*l, ",") }

func (l *lockFlags) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var exitErr exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("tipsplit", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Float64Var(&opts.bill, "bill", 0, "bill total before tip")
	fs.IntVar(&opts.tip, "tip", roster.DefaultTipPercentage, "tip percentage")
	fs.IntVar(&opts.maxTip, "max-tip", roster.DefaultMaxTipPercentage, "maximum tip percentage")
	fs.StringVar(&opts.people, "people", "You,Friend", "comma-separated participant names")
	fs.Var(&opts.locks, "lock", "fix a participant's amount as NAME=AMOUNT (repeatable)")
	fs.BoolVar(&opts.json, "json", false, "print the result as JSON")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "tipsplit - split a bill and tip between friends")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  tipsplit -bill 100 -tip 15 -people \"You,Sam,Kim\" -lock Sam=40")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, exitError{code: 2, err: fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))}
	}
	return opts, nil
}

func run(args []string, out io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	if opts.verbose {
		logging.SetupWithLevel(slog.LevelDebug)
	} else {
		logging.SetupWithLevel(slog.LevelWarn)
	}

	sess, err := buildSession(opts)
	if err != nil {
		return exitError{code: 2, err: err}
	}

	state, result := sess.State(), sess.Result()
	if result.IsOverflow {
		slog.Warn("Locked amounts exceed total", "grand_total", result.GrandTotal)
	}

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			State  models.BillState          `json:"state"`
			Result models.DistributionResult `json:"result"`
		}{state, result})
	}
	return display.Render(out, state, result)
}

// buildSession applies the flags as a sequence of edits: bill and tip first,
// since those unlock everyone, then the locks.
func buildSession(opts *options) (*roster.Session, error) {
	var participants []models.Participant
	for _, name := range strings.Split(opts.people, ",") {
		if name = strings.TrimSpace(name); name != "" {
			participants = append(participants, models.Participant{Name: name})
		}
	}

	sess, err := roster.Restore(models.BillState{Participants: participants}, roster.Options{
		MaxTipPercent: opts.maxTip,
		IDs:           idgen.NewCounter("p"),
	})
	if err != nil {
		return nil, err
	}
	sess.SetBillTotal(opts.bill)
	sess.SetTipPercentage(opts.tip)

	for _, l := range opts.locks {
		name, raw, ok := strings.Cut(l, "=")
		if !ok {
			return nil, fmt.Errorf("invalid -lock %q, want NAME=AMOUNT", l)
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount in -lock %q: %w", l, err)
		}
		id, err := participantID(sess.State(), strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		if err := sess.LockAmount(id, amount); err != nil {
			return nil, err
		}
		slog.Debug("Locked amount", "name", name, "amount", amount)
	}
	return sess, nil
}

func participantID(state models.BillState, name string) (string, error) {
	for _, p := range state.Participants {
		if strings.EqualFold(p.Name, name) {
			return p.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %s", roster.ErrUnknownParticipant, name)
}
