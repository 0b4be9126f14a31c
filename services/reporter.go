package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"hotel-deals/models"
)

// Reporter prints a Report as a ranked table plus a short summary.
type Reporter struct {
	out   io.Writer
	color bool
}

// NewReporter writes to out. Colour escapes are emitted only when color is set.
func NewReporter(out io.Writer, color bool) *Reporter {
	return &Reporter{out: out, color: color}
}

func (p *Reporter) paint(c text.Colors, s string) string {
	if !p.color {
		return s
	}
	return c.Sprint(s)
}

func (p *Reporter) Print(r *models.Report) {
	sep := strings.Repeat("═", 54)
	fmt.Fprintf(p.out, "\n%s\n", p.paint(text.Colors{text.Bold, text.FgMagenta}, sep))
	fmt.Fprintf(p.out, "%s\n", p.paint(text.Colors{text.Bold, text.FgMagenta},
		fmt.Sprintf("  HOTEL DEALS IN %s", strings.ToUpper(r.City))))
	fmt.Fprintf(p.out, "%s\n\n", p.paint(text.Colors{text.Bold, text.FgMagenta}, sep))

	fmt.Fprintf(p.out, "  Hotels found           : %d\n", r.TotalFound)
	fmt.Fprintf(p.out, "  Within budget (%s) : %d\n", formatBudget(r.Budget), len(r.Listings))
	fmt.Fprintf(p.out, "  Average price (all)    : %s\n", formatAverage(r.OverallAverage))
	fmt.Fprintf(p.out, "  Market average         : %s\n", formatAverage(r.MarketAverage))
	if r.CurrencyWarning != "" {
		fmt.Fprintf(p.out, "  %s\n", p.paint(text.Colors{text.FgYellow}, "Warning: "+r.CurrencyWarning))
	}
	fmt.Fprintln(p.out)

	if len(r.Listings) == 0 {
		fmt.Fprintf(p.out, "  %s\n\n", p.paint(text.Colors{text.FgYellow}, "No hotels matched your budget."))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Hotel", "Rating", "Price", "Currency", "Value", "Below Market"})
	for _, l := range r.Listings {
		below := ""
		if l.BelowMarket {
			below = "yes"
		}
		t.AppendRow(table.Row{
			l.Rank,
			truncate(l.Name, 40),
			formatRating(l.Rating),
			fmt.Sprintf("%.2f", l.Price),
			orNA(l.Currency),
			fmt.Sprintf("%.4f", l.ValueScore),
			below,
		})
	}
	if p.color {
		t.SetRowPainter(table.RowPainter(func(row table.Row) text.Colors {
			if rank, ok := row[0].(int); ok && rank == 1 {
				return text.Colors{text.FgGreen}
			}
			return nil
		}))
	}
	t.Render()

	if b := r.BestValue; b != nil {
		fmt.Fprintf(p.out, "\n  %s\n\n", p.paint(text.Colors{text.Bold, text.FgGreen},
			fmt.Sprintf("Best Value: %s (%s rating, %.2f %s)",
				b.Name, formatRating(b.Rating), b.Price, b.Currency)))
	}
}

func formatBudget(b models.Budget) string {
	if b.Currency == "" {
		return fmt.Sprintf("%.2f", b.Amount)
	}
	return fmt.Sprintf("%.2f %s", b.Amount, b.Currency)
}

func formatAverage(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}

func formatRating(r float64) string {
	if r == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", r)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
