// Package classify maps job titles and skills text onto category labels and
// detects title/skills domain mismatches.
//
// Classification is a first-match lookup over ordered keyword tables loaded
// from an embedded YAML file, keeping the category lists data-driven and
// open to extension.
package classify

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// OtherCategory is returned when no fine-grained category matches.
const OtherCategory = "Other"

// OtherDomain is returned when no coarse domain matches.
const OtherDomain = "other"

//go:embed rules.yaml
var rulesYAML []byte

type rule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

type rulesFile struct {
	Categories   []rule             `yaml:"categories"`
	Domains      []rule             `yaml:"domains"`
	Scales       map[string]float64 `yaml:"scales"`
	DefaultScale float64            `yaml:"default_scale"`
}

// Ruleset evaluates the ordered keyword tables. It is immutable after
// construction and safe for concurrent use.
type Ruleset struct {
	categories   []rule
	domains      []rule
	scales       map[string]float64
	defaultScale float64
}

// NewRuleset parses the embedded rule tables.
func NewRuleset() (*Ruleset, error) {
	var f rulesFile
	if err := yaml.Unmarshal(rulesYAML, &f); err != nil {
		return nil, fmt.Errorf("op=classify.NewRuleset: %w", err)
	}
	if len(f.Categories) == 0 || len(f.Domains) == 0 {
		return nil, fmt.Errorf("op=classify.NewRuleset: empty rule tables")
	}
	return &Ruleset{
		categories:   f.Categories,
		domains:      f.Domains,
		scales:       f.Scales,
		defaultScale: f.DefaultScale,
	}, nil
}

func firstMatch(rules []rule, text, fallback string) string {
	t := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if strings.Contains(t, kw) {
				return r.Label
			}
		}
	}
	return fallback
}

// Categorize maps a job title to a fine-grained category used for salary
// scaling. Unmatched titles fall through to "Other".
func (r *Ruleset) Categorize(jobTitle string) string {
	if strings.TrimSpace(jobTitle) == "" {
		return OtherCategory
	}
	return firstMatch(r.categories, jobTitle, OtherCategory)
}

// Domain maps arbitrary text (a title or a skills string) to a coarse
// domain label used for mismatch detection.
func (r *Ruleset) Domain(text string) string {
	if strings.TrimSpace(text) == "" {
		return OtherDomain
	}
	return firstMatch(r.domains, text, OtherDomain)
}

// ScaleFor returns the salary scale for a category, defaulting for
// unlisted ones.
func (r *Ruleset) ScaleFor(category string) float64 {
	if s, ok := r.scales[category]; ok {
		return s
	}
	return r.defaultScale
}

// Mismatch reports whether the title and skills classify into different,
// both-recognized domains. The returned domains allow callers to explain
// the verdict.
func (r *Ruleset) Mismatch(jobTitle, skills string) (mismatch bool, titleDomain, skillsDomain string) {
	titleDomain = r.Domain(jobTitle)
	skillsDomain = r.Domain(skills)
	mismatch = titleDomain != OtherDomain && skillsDomain != OtherDomain && titleDomain != skillsDomain
	return mismatch, titleDomain, skillsDomain
}
