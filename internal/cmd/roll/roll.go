// Package roll parses roll command flags and evaluates dice expressions.
package roll

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/MavethGH/dice-irae/internal/core/check"
	"github.com/MavethGH/dice-irae/internal/core/dice"
	entrypoint "github.com/MavethGH/dice-irae/internal/platform/cmd"
	apperrors "github.com/MavethGH/dice-irae/internal/platform/errors"
	"github.com/MavethGH/dice-irae/internal/random"
	"github.com/MavethGH/dice-irae/internal/services/roller"
)

// ErrRollsFailed is returned by Run when at least one expression failed.
var ErrRollsFailed = errors.New("one or more rolls failed")

// Config holds roll command configuration.
type Config struct {
	Seed     string `env:"SEED"`
	MaxDraws int    `env:"MAX_DRAWS" envDefault:"10000"`
	Verbose  bool   `env:"VERBOSE"`
	DC       string `env:"DC"`

	// Expressions are the positional arguments. When empty, Run reads one
	// expression per line from its input.
	Expressions []string
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Seed, "seed", cfg.Seed, "seed for a replayable roll (default: random)")
	fs.IntVar(&cfg.MaxDraws, "max-draws", cfg.MaxDraws, "maximum dice drawn per expression (0 disables the limit)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "print the parsed expression and every die")
	fs.StringVar(&cfg.DC, "dc", cfg.DC, "difficulty class to check each total against")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Expressions = fs.Args()
	return cfg, nil
}

// Run rolls every configured expression, writing results to out and
// failures to errOut.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	logger := log.New(errOut, "", 0)

	seed, err := parseSeed(cfg.Seed)
	if err != nil {
		return err
	}
	dc, err := parseDC(cfg.DC)
	if err != nil {
		return err
	}
	resolved, source, err := random.ResolveSeed(seed, nil)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeSeedUnavailable, "seed unavailable", err)
	}
	if cfg.Verbose {
		logger.Printf("seed %d (%s)", resolved, source)
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceRoll, func(ctx context.Context) error {
		maxDraws := cfg.MaxDraws
		if maxDraws <= 0 {
			maxDraws = -1
		}
		svc, err := roller.New(roller.Options{
			Source:   dice.NewSeededSource(resolved),
			MaxDraws: maxDraws,
		})
		if err != nil {
			return err
		}

		failed := false
		rollOne := func(expression string) {
			result, err := svc.Roll(ctx, expression)
			if err != nil {
				failed = true
				code := apperrors.GetCode(err)
				if code.IsSyntax() {
					logger.Printf("%s: invalid expression [%s] %v", expression, code, err)
				} else {
					logger.Printf("%s: roll failed [%s] %v", expression, code, err)
				}
				return
			}
			writeResult(out, result, dc, cfg.Verbose)
		}

		if len(cfg.Expressions) > 0 {
			for _, expression := range cfg.Expressions {
				rollOne(expression)
			}
		} else if in != nil {
			scanner := bufio.NewScanner(in)
			for scanner.Scan() {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}
				rollOne(line)
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read expressions: %w", err)
			}
		}

		if failed {
			return ErrRollsFailed
		}
		return nil
	})
}

func parseSeed(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse seed %q: %w", raw, err)
	}
	return &seed, nil
}

func parseDC(raw string) (*int32, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	dc, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("parse dc %q: %w", raw, err)
	}
	v := int32(dc)
	return &v, nil
}

func writeResult(out io.Writer, result roller.Roll, dc *int32, verbose bool) {
	if !verbose {
		if dc != nil {
			fmt.Fprintf(out, "%d\t%s\n", result.Total, check.Check(result.Total, *dc))
			return
		}
		fmt.Fprintln(out, result.Total)
		return
	}
	fmt.Fprintf(out, "%s = %d\n", result.Expr, result.Total)
	for _, roll := range result.Rolls {
		results := make([]string, len(roll.Results))
		for i, r := range roll.Results {
			results[i] = strconv.FormatInt(int64(r), 10)
		}
		fmt.Fprintf(out, "  %dd%d: [%s] = %d\n", roll.Count, roll.Sides, strings.Join(results, " "), roll.Total)
	}
	if dc != nil {
		fmt.Fprintf(out, "  check: %s\n", check.Check(result.Total, *dc))
	}
}
