package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/mpnum/internal/errors"
	"github.com/agbru/mpnum/internal/format"
	"github.com/agbru/mpnum/internal/logging"
	"github.com/agbru/mpnum/internal/metrics"
	"github.com/agbru/mpnum/internal/rpn"
	"github.com/agbru/mpnum/internal/ui"
)

// ExprResult is the outcome of one expression.
type ExprResult struct {
	// Index is the 1-based position of the expression on the command line.
	Index    int
	Expr     string
	Result   rpn.Result
	Duration time.Duration
	Err      error
}

// Evaluate evaluates exprs concurrently, at most Config.Jobs at a time, and
// returns the results in input order. A failing expression does not stop
// the others; cancellation of ctx does.
func (a *Application) Evaluate(ctx context.Context, exprs []string) []ExprResult {
	opts := rpn.Options{
		Prec:    a.Config.Prec,
		Mode:    a.Config.RoundingMode(),
		Complex: a.Config.Complex,
	}
	results := make([]ExprResult, len(exprs))

	var g errgroup.Group
	g.SetLimit(max(a.Config.Jobs, 1))
	for i, expr := range exprs {
		g.Go(func() error {
			results[i] = a.evalOne(ctx, opts, i+1, expr)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// evalOne evaluates a single expression with its own evaluator inside a span.
func (a *Application) evalOne(ctx context.Context, opts rpn.Options, index int, expr string) ExprResult {
	ctx, span := a.tracer.Start(ctx, "mpcalc.eval")
	defer span.End()
	span.SetAttributes(
		attribute.Int("mpcalc.index", index),
		attribute.String("mpcalc.expr", expr),
		attribute.Int64("mpcalc.prec", int64(opts.Prec)),
		attribute.Bool("mpcalc.complex", opts.Complex),
	)

	res := ExprResult{Index: index, Expr: expr}
	start := time.Now()
	ev, err := rpn.New(opts)
	if err == nil {
		res.Result, err = ev.Eval(ctx, expr)
	}
	res.Duration = time.Since(start)
	res.Err = err

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.Logger.Debug("expression failed",
			logging.Int("index", index), logging.String("expr", expr), logging.Err(err))
		return res
	}
	span.SetAttributes(attribute.Int64("mpcalc.result_prec", int64(res.Result.Prec)))
	a.Logger.Debug("expression evaluated",
		logging.Int("index", index),
		logging.String("expr", expr),
		logging.Uint("prec", res.Result.Prec),
		logging.String("elapsed", res.Duration.String()))
	return res
}

// runCalculate evaluates every configured expression and prints the report.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()

	if !a.Config.Quiet {
		a.printExecutionConfig(out)
	}

	before := a.Memory.Snapshot()
	start := time.Now()
	results := a.Evaluate(ctx, a.Config.Exprs)
	elapsed := time.Since(start)

	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			fmt.Fprintln(a.ErrWriter, "Error:", apperrors.TimeoutError{Operation: "evaluation", Limit: a.Config.Timeout})
			return apperrors.ExitErrorTimeout
		}
		fmt.Fprintln(a.ErrWriter, "Evaluation canceled.")
		return apperrors.ExitErrorCanceled
	}

	exitCode := a.printResults(results, out)
	after := a.Memory.Snapshot()
	heapGrowth, gcCycles := after.Delta(before)
	a.Logger.Debug("evaluation finished",
		logging.Int("expressions", len(results)),
		logging.Float64("elapsed_ms", float64(elapsed.Microseconds())/1000),
		logging.Uint64("heap_growth", heapGrowth),
		logging.Uint64("gc_cycles", uint64(gcCycles)))
	if a.Config.Metrics {
		a.printMetrics(out, after, heapGrowth, gcCycles)
	}
	return exitCode
}

func (a *Application) printExecutionConfig(out io.Writer) {
	kind := "real"
	if a.Config.Complex {
		kind = "complex"
	}
	s := ui.GetCurrentTheme().Styles()
	fmt.Fprintln(out, s.Dim.Render(fmt.Sprintf("%d expression(s), %s arithmetic, precision %s, rounding %s, %d job(s)",
		len(a.Config.Exprs), kind, format.Precision(a.Config.Prec), a.Config.Mode, a.Config.Jobs)))
}

// printResults prints results in input order and returns the exit code of
// the first failure, or ExitSuccess.
func (a *Application) printResults(results []ExprResult, out io.Writer) int {
	exitCode := apperrors.ExitSuccess
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprint(a.ErrWriter, ui.RenderError(r.Index, r.Expr, r.Err))
			if exitCode == apperrors.ExitSuccess {
				exitCode = exitCodeFor(r.Err)
			}
			continue
		}
		if a.Config.Quiet {
			fmt.Fprintln(out, strings.Join(r.Result.Values, " "))
			continue
		}
		fmt.Fprint(out, ui.RenderResult(ui.ResultView{
			Index:   r.Index,
			Expr:    r.Expr,
			Values:  r.Result.Values,
			Prec:    format.Precision(r.Result.Prec),
			Elapsed: format.ExecutionDuration(r.Duration),
		}))
	}
	return exitCode
}

func exitCodeFor(err error) int {
	switch {
	case apperrors.IsDomain(err):
		return apperrors.ExitErrorDomain
	case apperrors.IsContextError(err):
		return apperrors.ExitErrorCanceled
	default:
		return apperrors.ExitErrorGeneric
	}
}

// printMetrics prints the dispatch counters and the memory table. The growth
// columns cover the evaluation of the positional expressions.
func (a *Application) printMetrics(out io.Writer, mem metrics.MemorySnapshot, heapGrowth uint64, gcCycles uint32) {
	rows, err := a.Metrics.Snapshot()
	if err != nil {
		a.Logger.Error("reading dispatch metrics", err)
		return
	}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{r.Op, r.Branch, strconv.FormatUint(r.Count, 10)})
	}
	fmt.Fprint(out, ui.RenderTable("Dispatch", []string{"op", "branch", "count"}, table))

	fmt.Fprint(out, ui.RenderTable("Memory",
		[]string{"heap", "heap growth", "sys", "gc cycles", "gc during run", "max rss"}, [][]string{{
			format.Bytes(mem.HeapAlloc),
			format.Bytes(heapGrowth),
			format.Bytes(mem.Sys),
			strconv.FormatUint(uint64(mem.NumGC), 10),
			strconv.FormatUint(uint64(gcCycles), 10),
			format.Bytes(mem.MaxRSS),
		}}))
}
