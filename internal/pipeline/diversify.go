package pipeline

import "newsbrief/internal/core"

// Diversify walks candidates in rank order and keeps at most maxPerDomain
// per domain, stopping once limit items are selected. Relative order is
// preserved; with maxPerDomain <= 0 only the overall limit applies.
func Diversify(cands []core.Candidate, maxPerDomain, limit int) []core.Candidate {
	if limit <= 0 {
		return nil
	}
	perDomain := map[string]int{}
	out := make([]core.Candidate, 0, limit)
	for _, c := range cands {
		d := core.DomainOf(c.BestLink())
		if maxPerDomain > 0 && perDomain[d] >= maxPerDomain {
			continue
		}
		perDomain[d]++
		out = append(out, c)
		if len(out) >= limit {
			break
		}
	}
	return out
}
