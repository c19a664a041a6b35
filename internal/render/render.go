// Package render formats results as Telegram-flavoured HTML blocks.
package render

import (
	"fmt"
	"html"
	"strings"

	"newsbrief/internal/core"
)

// impactBadge maps an impact label to its traffic-light marker.
func impactBadge(impact string) string {
	switch impact {
	case "Positive", "Bullish":
		return "\U0001F7E2" // green circle
	case "Negative", "Bearish":
		return "\U0001F534" // red circle
	default:
		return "⚪" // white circle
	}
}

// HTMLBlock renders one result as a compact HTML block. Tech blocks carry
// the event type and inferred motive; finance blocks add the AI take,
// affected entities, company snapshot, beginner notes and follow-ups.
func HTMLBlock(r core.Result, kind core.Kind) string {
	it, rev := r.Item, r.Review

	impact := rev.Impact
	if impact == "" {
		impact = "Neutral"
	}
	badge := impactBadge(impact)

	headline := rev.HeadlineRewrite
	if headline == "" {
		headline = it.Title
	}
	if headline == "" {
		headline = "[No title]"
	}

	var bullets []string
	for _, b := range rev.Bullets {
		bullets = append(bullets, "• "+html.EscapeString(b))
	}
	bulletsHTML := strings.Join(bullets, "\n")
	if bulletsHTML == "" {
		bulletsHTML = "• (no concise bullets available)"
	}

	if kind == core.KindFinance {
		return financeBlock(r, badge, headline, bulletsHTML, impact)
	}
	return techBlock(r, badge, headline, bulletsHTML, impact)
}

func techBlock(r core.Result, badge, headline, bulletsHTML, impact string) string {
	it, rev := r.Item, r.Review

	site := it.SiteName
	if site == "" {
		site = core.DomainOf(it.Link)
	}
	eventType := it.EventType
	if eventType == "" {
		eventType = "news"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>%s</b>  <i>[%s]</i>\n", badge, html.EscapeString(headline), html.EscapeString(eventType))
	b.WriteString(bulletsHTML + "\n")
	fmt.Fprintf(&b, "<b>Impact:</b> %s\n", html.EscapeString(impact))
	fmt.Fprintf(&b, "<b>Source:</b> <a href='%s'>%s</a>", html.EscapeString(it.BestLink()), html.EscapeString(site))
	if motive := strings.TrimSpace(rev.Motive); motive != "" {
		fmt.Fprintf(&b, "\n<b>Motive (inferred):</b> %s", html.EscapeString(motive))
	}
	if r.PriorTitle != "" && r.PriorLink != "" {
		fmt.Fprintf(&b, "\n<b>Earlier from this outlet:</b> <a href='%s'>%s</a>",
			html.EscapeString(r.PriorLink), html.EscapeString(r.PriorTitle))
	}
	return b.String()
}

func financeBlock(r core.Result, badge, headline, bulletsHTML, impact string) string {
	it, rev := r.Item, r.Review

	affected := strings.Join(rev.Affected, ", ")
	if affected == "" {
		affected = "—"
	}
	watch := strings.Join(rev.WatchNext, "; ")
	if watch == "" {
		watch = "—"
	}

	var notes []string
	for _, n := range r.BeginnerNotes {
		notes = append(notes, fmt.Sprintf("%s: %s", n.Term, n.Meaning))
	}
	notesStr := strings.Join(notes, "; ")
	if notesStr == "" {
		notesStr = "—"
	}

	compLine := "—"
	if r.CompanySnapshot != "" {
		compLine = html.EscapeString(r.CompanySnapshot)
		if r.CompanySource != "" {
			compLine += fmt.Sprintf(" (Source: <a href='%s'>%s</a>)",
				html.EscapeString(r.CompanySource), html.EscapeString(r.CompanySource))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>%s</b>\n", badge, html.EscapeString(headline))
	b.WriteString(bulletsHTML + "\n")
	fmt.Fprintf(&b, "<b>AI take:</b> %s — %s\n", html.EscapeString(impact), html.EscapeString(rev.ImpactReason))
	fmt.Fprintf(&b, "<b>Who/what:</b> %s\n", html.EscapeString(affected))
	fmt.Fprintf(&b, "<b>Company snapshot:</b> %s\n", compLine)
	fmt.Fprintf(&b, "<b>New to finance? Terms:</b> %s\n", html.EscapeString(notesStr))
	fmt.Fprintf(&b, "<b>Why this matters:</b> %s\n", html.EscapeString(rev.WhyMatters))
	fmt.Fprintf(&b, "<b>Watch next:</b> %s\n", html.EscapeString(watch))
	fmt.Fprintf(&b, "<b>Source:</b> <a href='%s'>%s</a> (%s)\n",
		html.EscapeString(it.Link), html.EscapeString(it.Link), html.EscapeString(core.DomainOf(it.Link)))
	if r.PriorTitle != "" && r.PriorLink != "" {
		fmt.Fprintf(&b, "<b>Earlier from this outlet:</b> <a href='%s'>%s</a>\n",
			html.EscapeString(r.PriorLink), html.EscapeString(r.PriorTitle))
	}
	b.WriteString("<i>Not investment advice.</i>")
	return b.String()
}
