package ats

import "fmt"

// Gaps lists what a résumé is missing for one profile
type Gaps struct {
	MissingKeywords []string `json:"missing_keywords"`
	MissingSections []string `json:"missing_sections"`
}

// Gaps reports the keywords of domain and the sections absent from text
func (c *Catalog) Gaps(text, domain string) (*Gaps, error) {
	p, ok := c.lookup(domain)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDomain, domain)
	}
	g := c.gaps(Normalize(text), p)
	return &g, nil
}

func (c *Catalog) gaps(normalized string, p *compiledProfile) Gaps {
	return Gaps{
		MissingKeywords: missing(normalized, p.keywords),
		MissingSections: missing(normalized, c.sections),
	}
}

// missing keeps declaration order and never returns nil
func missing(normalized string, terms []term) []string {
	out := []string{}
	for _, t := range terms {
		if !Contains(normalized, t.match) {
			out = append(out, t.display)
		}
	}
	return out
}
