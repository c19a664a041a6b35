package relevance

import "regexp"

// DomainWeight maps a URL substring to a fixed quality weight. Ordered:
// the first match wins, so official/regulatory domains come first.
type DomainWeight struct {
	Match  string
	Weight int
}

// Profile bundles everything kind-specific about filtering, scoring and
// fallback summarization: trusted domains, the materiality pattern, theme
// keywords, quality weights, watchlist defaults, and the cue patterns the
// extractive fallback uses.
type Profile struct {
	TrustedDomains []string
	Material       *regexp.Regexp
	ThemePatterns  []*regexp.Regexp
	QualityWeights []DomainWeight
	Watchlist      []string

	// Line-cleaning keep hints: long lines survive cleaning only when they
	// contain one of these.
	KeepHints []string

	// Extractive fallback cues.
	ExtractiveKey *regexp.Regexp
	PositiveCues  *regexp.Regexp
	NegativeCues  *regexp.Regexp

	// Review shape.
	BulletMin, BulletMax         int
	BulletWordMin, BulletWordMax int

	// Pool sizing for the orchestrator: prelim rank keeps max*PoolFactor,
	// diversify admits up to max*WindowFactor.
	PoolFactor   int
	WindowFactor int
}

func compileThemes(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

// TechProfile returns the filtering profile for the tech pipeline.
func TechProfile() *Profile {
	return &Profile{
		TrustedDomains: []string{
			"blog.google", "openai.com", "blogs.nvidia.com", "blogs.microsoft.com", "about.fb.com",
			"aws.amazon.com", "intel.com", "qualcomm.com", "amd.com",
			"techcrunch.com", "theverge.com", "arstechnica.com", "wired.com", "engadget.com", "reuters.com",
		},
		Material: regexp.MustCompile(`(?i)(ai|llm|gpu|npu|tpu|accelerator|chip|semiconductor|fab|foundry|tsmc|intel|amd|nvidia|qualcomm|arm|cloud|aws|azure|gcp|datacenter|server|hpc|storage|networking|5g|security|breach|cve|vulnerability|ransomware|privacy|antitrust|acquisition|merger|funding|layoff|hiring|ipo|product|launch|update|feature|api|sdk|policy|regulation|apple|google|microsoft|meta|amazon|openai|anthropic|linux|windows|macos|android|ios)`),
		ThemePatterns: compileThemes([]string{
			`\bai\b`, `\bllm\b`, `\bgpu\b`, `\bchip\b`, `\bsemiconductor\b`,
			`\bcloud\b`, `\bsecurity\b`, `\bprivacy\b`, `\bantitrust\b`, `\bmerger\b`,
			`\bfunding\b`, `\bproduct\b`, `\blaunch\b`,
		}),
		QualityWeights: []DomainWeight{
			{"blog.google", 12}, {"openai.com", 12}, {"blogs.nvidia.com", 12},
			{"blogs.microsoft.com", 12}, {"aws.amazon.com", 12},
			{"reuters.com", 7},
			{"techcrunch.com", 6},
			{"theverge.com", 5}, {"arstechnica.com", 5},
			{"wired.com", 4},
			{"engadget.com", 3},
		},
		Watchlist: []string{
			"NVIDIA", "Apple", "Google", "Microsoft", "OpenAI", "AMD",
			"Intel", "TSMC", "Qualcomm", "Meta", "Amazon", "Anthropic",
		},
		KeepHints: []string{
			"ai", "llm", "gpu", "chip", "semiconductor", "cloud", "aws", "azure", "gcp",
			"security", "breach", "cve", "acquisition", "merger", "funding", "product",
			"launch", "feature", "api", "sdk", "policy", "antitrust",
		},
		ExtractiveKey: regexp.MustCompile(`(?i)(ai|llm|gpu|chip|semiconductor|cloud|security|breach|cve|acquisition|merger|funding|product|launch|api|sdk|policy|antitrust)`),
		PositiveCues:  regexp.MustCompile(`(?i)(record|wins|launch|fixes|patch|approve|reduce price|outperform|faster|lower latency)`),
		NegativeCues:  regexp.MustCompile(`(?i)(breach|exploit|bug|downtime|layoff|lawsuit|ban|fine|miss|delay|outage)`),
		BulletMin:     3,
		BulletMax:     8,
		BulletWordMin: 3,
		BulletWordMax: 40,
		PoolFactor:    4,
		WindowFactor:  2,
	}
}

// FinanceProfile returns the filtering profile for the India-markets
// finance pipeline.
func FinanceProfile() *Profile {
	return &Profile{
		TrustedDomains: []string{
			"sebi.gov.in", "rbi.org.in", "nseindia.com", "bseindia.com",
			"moneycontrol.com", "reuters.com", "financialexpress.com",
			"livemint.com", "business-standard.com", "thehindubusinessline.com", "cnbctv18.com",
		},
		Material: regexp.MustCompile(`(?i)(result|earnings|revenue|profit|loss|ebitda|guidance|merger|acquisit|scheme|stake|buyback|block deal|pledge|debt|default|downgrade|upgrade|rating|capex|order win|contract|tender|tariff|export|import|sanction|policy|circular|regulation|ipo|fpo|ofs|dividend|split|bonus|resignation|appointment|ceo|md|chairman|promoter|open offer|cpi|wpi|iip|gdp|pmi|inflation|fx|rupee|bond|yield|crude|oil|opec|fed|ecb|rbi|sebi|nse|bse)`),
		ThemePatterns: compileThemes([]string{
			`\bev\b`, `\belectric vehicle`, `\bsemiconductor`, `\bfab`, `\bchip`,
			`\bdefence`, `\bdefense`, `\bmissile`, `\bdrone`,
			`\brailway`, `\bmetro`, `\binfra`, `\binfrastructure`,
			`\brenewable`, `\bsolar`, `\bwind`, `\bgreen hydrogen`, `\bbattery`,
		}),
		QualityWeights: []DomainWeight{
			{"sebi.gov.in", 12}, {"rbi.org.in", 12}, {"nseindia.com", 12}, {"bseindia.com", 12},
			{"reuters.com", 6},
			{"moneycontrol.com", 5},
			{"financialexpress.com", 4}, {"livemint.com", 4}, {"business-standard.com", 4},
			{"thehindubusinessline.com", 3}, {"cnbctv18.com", 3},
		},
		KeepHints: []string{
			"results", "earnings", "profit", "loss", "revenue", "order", "contract", "tender",
			"merger", "approval", "policy", "circular", "rating", "downgrade", "upgrade",
			"management", "stake", "pledge", "ipo", "fpo", "ofs", "dividend", "split", "bonus",
			"guidance", "capex", "rbi", "sebi", "nse", "bse", "rupee", "inflation", "gdp",
			"cpi", "wpi", "pmi", "oil", "crude", "yield",
		},
		ExtractiveKey: regexp.MustCompile(`(?i)(result|profit|loss|revenue|order|contract|tender|merger|approval|policy|rating|stake|pledge|ipo|dividend|split|bonus|guidance|capex|rbi|sebi|nse|bse|rupee|inflation|gdp|cpi|oil|yield)`),
		PositiveCues:  regexp.MustCompile(`(?i)(beats|surge|order win|upgrade|approval|record|wins|bags|reduces duty|cuts tax)`),
		NegativeCues:  regexp.MustCompile(`(?i)(downgrade|penalty|ban|raid|probe|default|fire|accident|miss|shortfall|hike duty|raises tax)`),
		BulletMin:     2,
		BulletMax:     6,
		BulletWordMin: 3,
		BulletWordMax: 30,
		PoolFactor:    6,
		WindowFactor:  3,
	}
}
