package ats

import (
	"fmt"
	"strings"
)

// Profile is a named set of keywords representative of a career field
type Profile struct {
	Domain   string   `json:"domain" toml:"domain"`
	Keywords []string `json:"keywords" toml:"keywords"`
}

// SectionSet is the ordered list of résumé headers expected in every résumé
type SectionSet []string

// term pairs a configured string with its normalized matching form
type term struct {
	display string
	match   string
}

type compiledProfile struct {
	domain   string
	keywords []term
}

// Catalog is the validated, immutable scoring configuration. Build it once
// with NewCatalog and share it freely between goroutines.
type Catalog struct {
	profiles []compiledProfile
	sections []term
}

// NewCatalog validates profiles and sections and compiles them for matching
func NewCatalog(profiles []Profile, sections SectionSet) (*Catalog, error) {
	if err := validate(profiles, sections); err != nil {
		return nil, err
	}

	c := &Catalog{
		profiles: make([]compiledProfile, 0, len(profiles)),
		sections: compileTerms(sections),
	}
	for _, p := range profiles {
		c.profiles = append(c.profiles, compiledProfile{
			domain:   strings.TrimSpace(p.Domain),
			keywords: compileTerms(p.Keywords),
		})
	}

	return c, nil
}

// MustCatalog is NewCatalog for static configuration known to be valid
func MustCatalog(profiles []Profile, sections SectionSet) *Catalog {
	c, err := NewCatalog(profiles, sections)
	if err != nil {
		panic(err)
	}
	return c
}

func validate(profiles []Profile, sections SectionSet) error {
	var problems []string

	if len(profiles) == 0 {
		problems = append(problems, "at least one keyword profile is required")
	}

	seen := make(map[string]bool)
	for i, p := range profiles {
		domain := strings.TrimSpace(p.Domain)
		name := domain
		if domain == "" {
			name = fmt.Sprintf("#%d", i+1)
			problems = append(problems, fmt.Sprintf("profile %s has no domain name", name))
		} else if seen[strings.ToLower(domain)] {
			problems = append(problems, fmt.Sprintf("duplicate profile domain %q", domain))
		}
		seen[strings.ToLower(domain)] = true

		if len(p.Keywords) == 0 {
			problems = append(problems, fmt.Sprintf("profile %s has no keywords", name))
		}
		for _, kw := range p.Keywords {
			if matchForm(kw) == "" {
				problems = append(problems, fmt.Sprintf("profile %s has a blank keyword %q", name, kw))
			}
		}
	}

	if len(sections) == 0 {
		problems = append(problems, "at least one section is required")
	}
	for _, s := range sections {
		if matchForm(s) == "" {
			problems = append(problems, fmt.Sprintf("blank section %q", s))
		}
	}

	if len(problems) > 0 {
		return &ConfigError{Problems: problems}
	}
	return nil
}

func compileTerms(values []string) []term {
	terms := make([]term, 0, len(values))
	for _, v := range values {
		terms = append(terms, term{display: strings.TrimSpace(v), match: matchForm(v)})
	}
	return terms
}

// matchForm normalizes a configured phrase the same way résumé text is
// normalized, collapsing internal whitespace to single spaces.
func matchForm(s string) string {
	return strings.Join(strings.Fields(Normalize(s)), " ")
}

// Profiles returns a copy of the configured profiles in declaration order
func (c *Catalog) Profiles() []Profile {
	out := make([]Profile, 0, len(c.profiles))
	for _, p := range c.profiles {
		out = append(out, Profile{Domain: p.domain, Keywords: displays(p.keywords)})
	}
	return out
}

// Sections returns a copy of the configured section headers
func (c *Catalog) Sections() SectionSet {
	return SectionSet(displays(c.sections))
}

// MultiDomain is true when more than one profile is configured, in which case
// the profile is chosen by classification.
func (c *Catalog) MultiDomain() bool {
	return len(c.profiles) > 1
}

func (c *Catalog) lookup(domain string) (*compiledProfile, bool) {
	for i := range c.profiles {
		if strings.EqualFold(c.profiles[i].domain, domain) {
			return &c.profiles[i], true
		}
	}
	return nil, false
}

func displays(terms []term) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.display
	}
	return out
}
