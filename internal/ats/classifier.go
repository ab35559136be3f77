package ats

// DomainScore is the number of a profile's keywords found in a résumé
type DomainScore struct {
	Domain  string `json:"domain"`
	Matches int    `json:"matches"`
}

// Classify picks the profile whose keywords appear most often in text.
// It returns the winning domain and the per-domain match counts in
// declaration order. Ties, including a résumé matching nothing, go to the
// profile declared first.
func (c *Catalog) Classify(text string) (string, []DomainScore) {
	p, scores := c.classify(Normalize(text))
	return p.domain, scores
}

func (c *Catalog) classify(normalized string) (*compiledProfile, []DomainScore) {
	scores := make([]DomainScore, 0, len(c.profiles))
	best := 0

	for i := range c.profiles {
		matches := countPresent(normalized, c.profiles[i].keywords)
		scores = append(scores, DomainScore{Domain: c.profiles[i].domain, Matches: matches})

		// Strictly greater keeps the earliest profile on ties
		if matches > scores[best].Matches {
			best = i
		}
	}

	return &c.profiles[best], scores
}

// countPresent counts how many terms occur at least once in normalized text
func countPresent(normalized string, terms []term) int {
	n := 0
	for _, t := range terms {
		if Contains(normalized, t.match) {
			n++
		}
	}
	return n
}
