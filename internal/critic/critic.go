// Package critic produces sentence-level writing feedback for résumé text.
//
// Rules are independent heuristics; several can fire on the same sentence.
package critic

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Category identifies which rule produced a feedback item
type Category string

const (
	ShortSentence Category = "short_sentence"
	MissingMetric Category = "missing_metric"
	WeakVerb      Category = "weak_verb"
	PassiveVoice  Category = "passive_voice"
)

// Categories lists every category in rule-check order
var Categories = []Category{ShortSentence, MissingMetric, WeakVerb, PassiveVoice}

// MinWords is the word count under which a sentence is flagged as short
const MinWords = 8

// WeakPhrases are phrases that usually hide a stronger action verb
var WeakPhrases = []string{"worked on", "responsible for", "helped with"}

var passiveMarker = regexp.MustCompile(`\b(?:was|were|been|being)\b`)

// String returns the display label used in feedback messages
func (c Category) String() string {
	switch c {
	case ShortSentence:
		return "Short Sentence"
	case MissingMetric:
		return "Add Metrics"
	case WeakVerb:
		return "Use Stronger Verbs"
	case PassiveVoice:
		return "Passive Voice"
	default:
		return string(c)
	}
}

// Advice returns the suggestion shown for the category
func (c Category) Advice() string {
	switch c {
	case ShortSentence:
		return "Expand this"
	case MissingMetric:
		return "Consider adding numbers"
	case WeakVerb:
		return "Rephrase this"
	case PassiveVoice:
		return "Consider active voice"
	default:
		return ""
	}
}

// FeedbackItem is one rule firing on one sentence
type FeedbackItem struct {
	Category Category `json:"category"`
	Sentence string   `json:"sentence"`
}

// Message renders the item as "<Category>: <advice> - '<sentence>'"
func (f FeedbackItem) Message() string {
	return fmt.Sprintf("%s: %s - '%s'", f.Category, f.Category.Advice(), f.Sentence)
}

// Sentences splits text on periods, trimming whitespace and dropping empties
func Sentences(text string) []string {
	var out []string
	for _, s := range strings.Split(text, ".") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Critique runs every rule over every sentence of the raw (unnormalized)
// text. Items are ordered by sentence, then by rule.
func Critique(text string) []FeedbackItem {
	items := []FeedbackItem{}
	for _, sentence := range Sentences(text) {
		for _, c := range Check(sentence) {
			items = append(items, FeedbackItem{Category: c, Sentence: sentence})
		}
	}
	return items
}

// Check returns the categories that fire for a single sentence
func Check(sentence string) []Category {
	var fired []Category
	lower := strings.ToLower(sentence)

	if len(strings.Fields(sentence)) < MinWords {
		fired = append(fired, ShortSentence)
	}

	if !strings.ContainsFunc(sentence, isDecimalDigit) {
		fired = append(fired, MissingMetric)
	}

	for _, phrase := range WeakPhrases {
		if strings.Contains(lower, phrase) {
			fired = append(fired, WeakVerb)
			break
		}
	}

	if passiveMarker.MatchString(lower) {
		fired = append(fired, PassiveVoice)
	}

	return fired
}

func isDecimalDigit(r rune) bool {
	return unicode.Is(unicode.Nd, r)
}

// Summary counts feedback items per category
func Summary(items []FeedbackItem) map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, item := range items {
		counts[item.Category]++
	}
	return counts
}

// Messages renders every item with Message
func Messages(items []FeedbackItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Message())
	}
	return out
}
