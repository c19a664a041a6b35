package summarize

import (
	"fmt"

	"newsbrief/internal/core"
)

// techAnalystPrompt instructs the model to summarize a tech article for a
// broad audience. Grounding rules mirror the validator: no facts beyond
// the article text, no invented numbers.
const techAnalystPrompt = `You are a technology news analyst writing for a broad audience.

GROUNDING:
- Use ONLY the facts from the provided ARTICLE TEXT.
- The SOURCE URL is given; do not add facts not present in the text.
- If something is unclear or not in the text, say "not specified in the article".
- Define jargon briefly when helpful.

OUTPUT (STRICT JSON):
{
  "headline_rewrite": "<=14 words, punchy, no emojis",
  "bullets": [
    "3-8 bullets, full sentences, do not truncate mid-sentence",
    "Include numbers only if present in the article text"
  ],
  "impact": "Positive" | "Negative" | "Neutral",
  "impact_reason": "<=2 sentences on why",
  "affected": ["companies, products or sectors explicitly in article; else empty"],
  "motive": "One concise sentence inferring the company's motive from the article text"
}

Rules: concise, factual; no invented numbers; no investment advice.
Return JSON only.`

// financeAnalystPrompt targets beginner investors in Indian markets, with
// tighter bullets and extra why-matters and watch-next fields.
const financeAnalystPrompt = `You are an India-focused markets analyst writing for beginners.

GROUNDING:
- Use ONLY the facts from the provided ARTICLE TEXT.
- The SOURCE URL is given so you know where the text came from; do not add facts not present in the text.
- If something is unclear or not in the text, say "not specified in the article" rather than guessing.
- Explain jargon briefly and simply within the summary when helpful.

OUTPUT (STRICT JSON):
{
  "headline_rewrite": "<=14 words, punchy, no emojis",
  "bullets": [
    "3-5 bullets, each <=24 words, start with a verb, explain the news, avoid rephrasing the headline",
    "Include numbers only if present in the article text",
    "Define any jargon once in parentheses, e.g., EBITDA (operating profit proxy)"
  ],
  "impact": "Bullish" | "Bearish" | "Neutral",
  "impact_reason": "<=2 sentences on why it skews that way",
  "affected": ["sectors or NSE/BSE tickers explicitly in article; else empty"],
  "why_matters": "1 sentence on investor relevance",
  "watch_next": ["1-2 concrete follow-ups, e.g., filing due date, regulator decision"]
}

Rules: concise, factual, mobile-friendly; no invented numbers/tickers; no investment advice.
Return JSON only.`

// BuildPrompt assembles the full user prompt for one request.
func BuildPrompt(req Request) string {
	analyst := techAnalystPrompt
	if req.Kind == core.KindFinance {
		analyst = financeAnalystPrompt
	}
	return fmt.Sprintf(`SOURCE URL: %s
HEADLINE: %s

ARTICLE TEXT:
%s

OPTIONAL COMPANY CONTEXT (background flavour only; do not add facts beyond ARTICLE):
%s

%s`, req.SourceURL, req.Headline, req.ArticleText, req.CompanyContext, analyst)
}
