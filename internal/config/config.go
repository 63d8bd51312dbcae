// Package config handles the command-line and environment configuration of
// mpcalc.
package config

import (
	"flag"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	apperrors "github.com/agbru/mpnum/internal/errors"
	"github.com/agbru/mpnum/internal/precision"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "MPCALC_"

const (
	// DefaultPrec is the literal precision when none is given, the
	// precision of a float64.
	DefaultPrec = 53
	// DefaultMode is the rounding mode when none is given.
	DefaultMode = "nearest-even"
	// DefaultTimeout bounds a whole run.
	DefaultTimeout = 1 * time.Minute
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Prec is the precision in bits of numeric literals.
	Prec uint
	// Mode is the rounding mode name, see ParseMode.
	Mode string
	// Complex evaluates the expressions with complex arithmetic.
	Complex bool
	// Jobs is the number of expressions evaluated concurrently. Zero means
	// choose from the hardware.
	Jobs int
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Verbose enables debug logging of every dispatch.
	Verbose bool
	// Quiet prints bare values only.
	Quiet bool
	// Metrics prints the dispatch counters and memory usage after the run.
	Metrics bool
	// NoColor disables styled output.
	NoColor bool
	// Interactive starts a read-eval-print loop after the positional
	// expressions.
	Interactive bool
	// Exprs holds the positional RPN expressions.
	Exprs []string
}

// modes maps the accepted names to big.Float rounding modes.
var modes = map[string]big.RoundingMode{
	"nearest-even": big.ToNearestEven,
	"nearest-away": big.ToNearestAway,
	"zero":         big.ToZero,
	"away":         big.AwayFromZero,
	"down":         big.ToNegativeInf,
	"up":           big.ToPositiveInf,
}

// ModeNames lists the accepted rounding mode names.
func ModeNames() []string {
	return []string{"nearest-even", "nearest-away", "zero", "away", "down", "up"}
}

// ParseMode resolves a rounding mode name, case-insensitively.
func ParseMode(name string) (big.RoundingMode, error) {
	m, ok := modes[strings.ToLower(name)]
	if !ok {
		return 0, apperrors.NewConfigError("unknown rounding mode %q; valid modes: %s",
			name, strings.Join(ModeNames(), ", "))
	}
	return m, nil
}

// RoundingMode returns the parsed Mode. It assumes Validate succeeded.
func (c AppConfig) RoundingMode() big.RoundingMode {
	m, _ := ParseMode(c.Mode)
	return m
}

// Validate checks the semantic consistency of the configuration.
//
// Returns:
//   - error: A ConfigError if the configuration is invalid, nil otherwise.
func (c AppConfig) Validate() error {
	if err := precision.Check(c.Prec); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if _, err := ParseMode(c.Mode); err != nil {
		return err
	}
	if c.Jobs < 0 {
		return apperrors.NewConfigError("jobs must be positive, got %d", c.Jobs)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be strictly positive")
	}
	if len(c.Exprs) == 0 && !c.Interactive {
		return apperrors.NewConfigError("no expression given")
	}
	for i, e := range c.Exprs {
		if strings.TrimSpace(e) == "" {
			return apperrors.NewConfigError("expression %d is empty", i+1)
		}
	}
	return nil
}

// ParseConfig parses the command-line arguments, applies environment
// overrides for flags that were not set explicitly and validates the
// result. Usage and parse errors go to errorOutput.
//
// Parameters:
//   - programName: The program name shown in the usage text.
//   - args: The arguments, without the program name.
//   - errorOutput: Destination of the usage text and parse errors.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp for -h, a ConfigError for invalid values.
func ParseConfig(programName string, args []string, errorOutput io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorOutput)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] EXPR...\n       %s -i [flags]\n\n", programName, programName)
		fmt.Fprintln(fs.Output(), "Evaluates each reverse Polish EXPR at arbitrary precision.")
		fmt.Fprintln(fs.Output(), "Operators: + - * / neg abs sqr sqrt trunc floor ceil frac modf conj norm dup swap drop")
		fmt.Fprintln(fs.Output())
		fs.PrintDefaults()
	}

	var prec uint64
	config := AppConfig{}
	fs.Uint64Var(&prec, "prec", DefaultPrec, "Precision in bits of numeric literals.")
	fs.Uint64Var(&prec, "p", DefaultPrec, "Precision in bits (shorthand).")
	fs.StringVar(&config.Mode, "mode", DefaultMode, "Rounding mode ("+strings.Join(ModeNames(), ", ")+").")
	fs.BoolVar(&config.Complex, "complex", false, "Use complex arithmetic; literals ending in 'i' are imaginary.")
	fs.IntVar(&config.Jobs, "jobs", 0, "Expressions evaluated concurrently (0 = number of CPUs).")
	fs.IntVar(&config.Jobs, "j", 0, "Concurrent expressions (shorthand).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration of the whole run.")
	fs.BoolVar(&config.Verbose, "v", false, "Log every dispatch at debug level.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Log every dispatch (alias for -v).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print bare values only.")
	fs.BoolVar(&config.Quiet, "q", false, "Print bare values only (shorthand).")
	fs.BoolVar(&config.Metrics, "metrics", false, "Print dispatch branch counters and memory usage.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable styled output.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start an interactive session.")
	fs.BoolVar(&config.Interactive, "i", false, "Start an interactive session (shorthand).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if prec > uint64(precision.Max) {
		return AppConfig{}, apperrors.NewConfigError("%v", apperrors.PrecisionError{
			Requested: prec, Min: precision.Min, Max: precision.Max,
		})
	}
	config.Prec = uint(prec)
	config.Exprs = fs.Args()

	applyEnvOverrides(&config, fs)

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorOutput, "Error:", err)
		return AppConfig{}, err
	}
	return config, nil
}
