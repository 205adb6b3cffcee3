package cli

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
)

// newPrinter returns a printer for the user's locale, falling back to English
// for empty or malformed tags
func newPrinter(locale string) *message.Printer {
	tag := language.AmericanEnglish
	if locale != "" {
		if parsed, err := language.Parse(locale); err == nil {
			tag = parsed
		}
	}
	return message.NewPrinter(tag)
}

// formatLOC formats an amount with locale grouping and at most one decimal
func formatLOC(p *message.Printer, v float64) string {
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(1)))
}

// formatAmount formats a journal amount with an explicit sign
func formatAmount(p *message.Printer, v float64) string {
	if v >= 0 {
		return "+" + formatLOC(p, v)
	}
	return formatLOC(p, v)
}

// formatPercent formats a 0-100 gauge level
func formatPercent(p *message.Printer, v float64) string {
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(0))) + "%"
}

// formatDuration rounds to whole seconds for display
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return d.Round(time.Second).String()
}

// actionLabel turns "BuyBuildingCommand" into "buy building"
func actionLabel(requestName string) string {
	name := strings.TrimSuffix(requestName, "Command")
	var b strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// printOutcome reports what an action did to the player
func printOutcome(p *message.Printer, requestName string, out *gameApp.Outcome) {
	label := actionLabel(requestName)
	if out == nil || out.State == nil {
		p.Printf("%s: done\n", label)
		return
	}
	if !out.Applied {
		p.Printf("%s: nothing happened (a cost or requirement is not met)\n", label)
		return
	}

	st := out.State
	p.Printf("✓ %s\n", label)
	p.Printf("  LOC:        %s\n", formatLOC(p, st.Currency))
	p.Printf("  LOC/s:      %s\n", formatLOC(p, st.ProductionRate))
	p.Printf("  Shares:     %s\n", formatLOC(p, st.PrestigeCurrency))
	if st.TechnicalDebt > 0 {
		p.Printf("  Tech debt:  %s\n", formatLOC(p, st.TechnicalDebt))
	}
	for _, id := range out.Unlocked {
		p.Printf("  Achievement unlocked: %s\n", id)
	}
}
