package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/alexanderramin/trestle/internal/scheduler"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// DateLayout is the layout used for every rendered schedule date. The CLI
// overrides it from configuration.
var DateLayout = domain.DateLayout

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	diff := t.Sub(now)
	days := int(math.Round(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// FormatDate renders a schedule date with the configured layout.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Format(DateLayout)
}

// DateRange renders "start → end (Nd)".
func DateRange(start, end time.Time, durationDays int) string {
	return fmt.Sprintf("%s → %s %s", FormatDate(start), FormatDate(end), Dim(fmt.Sprintf("(%dd)", durationDays)))
}

// ProjectStatusPill returns a colored status indicator for project status.
func ProjectStatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectOnHold:
		return StyleYellow.Render("○ On hold")
	case domain.ProjectComplete:
		return StyleDim.Render("✔ Complete")
	default:
		return StyleDim.Render(string(status))
	}
}

// WbsTypeBadge returns a short coloured label for an item type.
func WbsTypeBadge(t domain.WbsType) string {
	switch t {
	case domain.WbsSummary:
		return StylePurple.Render("SUM")
	case domain.WbsWorkPackage:
		return StyleBlue.Render("WP")
	case domain.WbsActivity:
		return StyleFg.Render("ACT")
	default:
		return StyleDim.Render(string(t))
	}
}

// ClientBadge returns the client name, or a dim placeholder.
func ClientBadge(client string) string {
	if client == "" {
		return StyleDim.Render("--")
	}
	return StylePurple.Render(client)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMoney renders an amount with two decimals and thousands separators.
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + frac
}

// FormatVariance renders a variance green when favourable and red when not.
func FormatVariance(d decimal.Decimal) string {
	text := FormatMoney(d)
	switch {
	case d.IsPositive():
		return StyleGreen.Render("+" + text)
	case d.IsNegative():
		return StyleRed.Render(text)
	default:
		return Dim(text)
	}
}

// FormatIndex renders a CPI/SPI value coloured by its band.
func FormatIndex(index float64, status domain.PerformanceStatus) string {
	return PerformanceStyle(status).Render(fmt.Sprintf("%.2f", index))
}

// FormatPercent renders a 0-100 percentage without trailing zeros.
func FormatPercent(pct float64) string {
	if pct == math.Trunc(pct) {
		return fmt.Sprintf("%.0f%%", pct)
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// RiskPill renders the schedule risk level with its float, e.g.
// "● At risk (2d float)".
func RiskPill(r scheduler.RiskResult) string {
	var pill string
	switch r.Level {
	case domain.RiskCritical:
		pill = StyleRed.Render("● Critical")
	case domain.RiskAtRisk:
		pill = StyleYellow.Render("● At risk")
	default:
		pill = StyleGreen.Render("● On track")
	}
	if r.SlackDays == nil {
		return pill
	}
	if *r.SlackDays < 0 {
		return pill + " " + Dim(fmt.Sprintf("(%dd late)", -*r.SlackDays))
	}
	return pill + " " + Dim(fmt.Sprintf("(%dd float)", *r.SlackDays))
}
