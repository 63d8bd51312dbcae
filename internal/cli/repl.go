// Package cli provides the interactive read-eval-print loop of mpcalc.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/mpnum/internal/config"
	"github.com/agbru/mpnum/internal/format"
	"github.com/agbru/mpnum/internal/precision"
	"github.com/agbru/mpnum/internal/rpn"
	"github.com/agbru/mpnum/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Prec is the literal precision in bits.
	Prec uint
	// Mode is the rounding mode name.
	Mode string
	// Complex selects complex arithmetic.
	Complex bool
	// Timeout is the maximum duration of each evaluation.
	Timeout time.Duration
}

// REPL represents an interactive evaluation session. Each line is either a
// command or an RPN expression.
type REPL struct {
	config REPLConfig
	ev     rpn.Evaluator
	in     io.Reader
	out    io.Writer
	count  int
}

// NewREPL creates a session reading from in and writing to out.
func NewREPL(cfg REPLConfig, in io.Reader, out io.Writer) (*REPL, error) {
	r := &REPL{config: cfg, in: in, out: out}
	if err := r.rebuild(); err != nil {
		return nil, err
	}
	return r, nil
}

// rebuild creates the evaluator for the current configuration.
func (r *REPL) rebuild() error {
	mode, err := config.ParseMode(r.config.Mode)
	if err != nil {
		return err
	}
	ev, err := rpn.New(rpn.Options{Prec: r.config.Prec, Mode: mode, Complex: r.config.Complex})
	if err != nil {
		return err
	}
	r.ev = ev
	return nil
}

// Start runs the session until exit, EOF or cancellation of ctx.
func (r *REPL) Start(ctx context.Context) error {
	s := ui.GetCurrentTheme().Styles()
	fmt.Fprintln(r.out, s.Label.Render("mpcalc interactive mode")+" "+s.Dim.Render("(type help for commands)"))

	reader := bufio.NewReader(r.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(r.out, s.Success.Render("rpn> "))

		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && input != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out)
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !r.processCommand(ctx, input) {
			return nil
		}
	}
}

// processCommand executes a command or evaluates an expression. It returns
// false when the session should end.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	s := ui.GetCurrentTheme().Styles()

	switch strings.ToLower(parts[0]) {
	case "exit", "quit":
		return false
	case "help", "?":
		r.printHelp()
	case "status":
		r.cmdStatus()
	case "prec":
		r.cmdPrec(parts[1:])
	case "mode":
		r.cmdMode(parts[1:])
	case "complex":
		r.config.Complex = !r.config.Complex
		if err := r.rebuild(); err != nil {
			fmt.Fprintln(r.out, s.Error.Render("error:"), err)
			break
		}
		fmt.Fprintf(r.out, "complex arithmetic: %v\n", r.config.Complex)
	default:
		r.evaluate(ctx, input)
	}
	return true
}

func (r *REPL) evaluate(ctx context.Context, expr string) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	r.count++
	start := time.Now()
	res, err := r.ev.Eval(ctx, expr)
	if err != nil {
		fmt.Fprint(r.out, ui.RenderError(r.count, expr, err))
		return
	}
	fmt.Fprint(r.out, ui.RenderResult(ui.ResultView{
		Index:   r.count,
		Expr:    expr,
		Values:  res.Values,
		Prec:    format.Precision(res.Prec),
		Elapsed: format.ExecutionDuration(time.Since(start)),
	}))
}

func (r *REPL) cmdPrec(args []string) {
	s := ui.GetCurrentTheme().Styles()
	if len(args) != 1 {
		fmt.Fprintln(r.out, s.Error.Render("usage: prec <bits>"))
		return
	}
	p, err := strconv.ParseUint(args[0], 10, 0)
	if err == nil {
		err = precision.Check(uint(p))
	}
	if err != nil {
		fmt.Fprintln(r.out, s.Error.Render("error:"), err)
		return
	}
	prev := r.config.Prec
	r.config.Prec = uint(p)
	if err := r.rebuild(); err != nil {
		r.config.Prec = prev
		fmt.Fprintln(r.out, s.Error.Render("error:"), err)
		return
	}
	fmt.Fprintf(r.out, "precision: %s\n", format.Precision(r.config.Prec))
}

func (r *REPL) cmdMode(args []string) {
	s := ui.GetCurrentTheme().Styles()
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%s (%s)\n", s.Error.Render("usage: mode <name>"), strings.Join(config.ModeNames(), ", "))
		return
	}
	prev := r.config.Mode
	r.config.Mode = args[0]
	if err := r.rebuild(); err != nil {
		r.config.Mode = prev
		fmt.Fprintln(r.out, s.Error.Render("error:"), err)
		return
	}
	fmt.Fprintf(r.out, "rounding mode: %s\n", r.config.Mode)
}

func (r *REPL) printHelp() {
	s := ui.GetCurrentTheme().Styles()
	fmt.Fprintln(r.out, s.Label.Render("Commands:"))
	fmt.Fprintln(r.out, "  <expr>         evaluate an RPN expression, e.g. 1 2 + 3 *")
	fmt.Fprintln(r.out, "  prec <bits>    change the literal precision")
	fmt.Fprintln(r.out, "  mode <name>    change the rounding mode ("+strings.Join(config.ModeNames(), ", ")+")")
	fmt.Fprintln(r.out, "  complex        toggle complex arithmetic")
	fmt.Fprintln(r.out, "  status         show the current settings")
	fmt.Fprintln(r.out, "  exit | quit    leave interactive mode")
}

func (r *REPL) cmdStatus() {
	s := ui.GetCurrentTheme().Styles()
	fmt.Fprintln(r.out, s.Label.Render("Current configuration:"))
	fmt.Fprintf(r.out, "  Precision: %s\n", format.Precision(r.config.Prec))
	fmt.Fprintf(r.out, "  Rounding:  %s\n", r.config.Mode)
	fmt.Fprintf(r.out, "  Complex:   %v\n", r.config.Complex)
	fmt.Fprintf(r.out, "  Timeout:   %s\n", r.config.Timeout)
}
