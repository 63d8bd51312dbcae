package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// ResultView is what RenderResult displays for one evaluated expression.
type ResultView struct {
	Index   int
	Expr    string
	Values  []string
	Prec    string
	Elapsed string
}

// RenderResult renders one successful evaluation as a labelled block: a
// header line with the expression, then the final stack, top last.
func RenderResult(v ResultView) string {
	s := GetCurrentTheme().Styles()
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n",
		s.Label.Render(fmt.Sprintf("[%d]", v.Index)),
		v.Expr,
		s.Dim.Render(fmt.Sprintf("(%s, %s)", v.Prec, v.Elapsed)))
	for i, val := range v.Values {
		marker := " "
		if i == len(v.Values)-1 {
			marker = s.Success.Render("=")
		}
		fmt.Fprintf(&b, "  %s %s\n", marker, s.Value.Render(val))
	}
	return b.String()
}

// RenderError renders a failed evaluation.
func RenderError(index int, expr string, err error) string {
	s := GetCurrentTheme().Styles()
	return fmt.Sprintf("%s %s\n  %s %v\n",
		s.Label.Render(fmt.Sprintf("[%d]", index)), expr,
		s.Error.Render("error:"), err)
}

// RenderTable renders rows under headers with a rounded border, for the
// metrics report.
func RenderTable(title string, headers []string, rows [][]string) string {
	s := GetCurrentTheme().Styles()
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.Dim).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Label.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return s.Label.Render(title) + "\n" + t.Render() + "\n"
}
