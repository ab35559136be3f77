package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/resumeats/internal/ats"
	"github.com/vijay-prabhu/resumeats/internal/critic"
	"github.com/vijay-prabhu/resumeats/internal/database"
)

// ProfileSet pairs the configured profiles with the shared section list
type ProfileSet struct {
	Profiles []ats.Profile `json:"profiles"`
	Sections []string      `json:"sections"`
}

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case *ats.Result:
		return resultDetail(w, v)
	case *ProfileSet:
		return profilesTable(w, v)
	case []database.Analysis:
		return analysesTable(w, v)
	case *database.Analysis:
		return analysisDetail(w, v)
	case *database.Stats:
		return statsTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func resultDetail(w io.Writer, r *ats.Result) error {
	if r.Domain != "" {
		fmt.Fprintf(w, "Domain:      %s\n", r.Domain)
	}
	fmt.Fprintf(w, "ATS Score:   %s / %s\n", ScoreString(r.Total), formatPoints(ats.MaxScore))
	fmt.Fprintf(w, "Keywords:    %d of %d\n", r.KeywordMatch, r.TotalKeywords)
	fmt.Fprintf(w, "Sections:    %d of %d\n", r.SectionMatch, r.TotalSections)
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	table.Header("Component", "Points", "Max")
	rows := [][]string{
		{"Keywords", formatPoints(r.KeywordScore), formatPoints(ats.KeywordWeight)},
		{"Sections", formatPoints(r.SectionScore), formatPoints(ats.SectionWeight)},
		{"Frequency", formatPoints(r.FrequencyScore), formatPoints(ats.FrequencyWeight)},
		{"Formatting", formatPoints(r.FormattingScore), formatPoints(ats.FormattingScore)},
		{"Total", formatPoints(r.Total), formatPoints(ats.MaxScore)},
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(r.DomainScores) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Classification:")
		for _, ds := range r.DomainScores {
			marker := " "
			if ds.Domain == r.Domain {
				marker = color.GreenString("*")
			}
			fmt.Fprintf(w, "  %s %-12s %d\n", marker, ds.Domain, ds.Matches)
		}
	}

	fmt.Fprintln(w)
	writeList(w, "Missing keywords", r.MissingKeywords)
	writeList(w, "Missing sections", r.MissingSections)

	if len(r.Feedback) == 0 {
		fmt.Fprintln(w, "Sentence feedback: none")
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sentence feedback (%d):\n", len(r.Feedback))
	summary := critic.Summary(r.Feedback)
	for _, c := range critic.Categories {
		if n := summary[c]; n > 0 {
			fmt.Fprintf(w, "  %-20s %d\n", c.String(), n)
		}
	}
	fmt.Fprintln(w)
	for _, item := range r.Feedback {
		fmt.Fprintf(w, "  %s %s: %s\n", color.YellowString("•"), item.Category.String(), truncate(item.Sentence, 70))
	}

	return nil
}

func writeList(w io.Writer, label string, values []string) {
	if len(values) == 0 {
		fmt.Fprintf(w, "%s: %s\n", label, color.GreenString("none"))
		return
	}
	fmt.Fprintf(w, "%s: %s\n", label, strings.Join(values, ", "))
}

func profilesTable(w io.Writer, ps *ProfileSet) error {
	if len(ps.Profiles) == 0 {
		fmt.Fprintln(w, "No profiles configured.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Domain", "Keywords", "Count")
	for _, p := range ps.Profiles {
		if err := table.Append([]string{
			p.Domain,
			truncate(strings.Join(p.Keywords, ", "), 60),
			strconv.Itoa(len(p.Keywords)),
		}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sections: %s\n", strings.Join(ps.Sections, ", "))
	return nil
}

func analysesTable(w io.Writer, analyses []database.Analysis) error {
	if len(analyses) == 0 {
		fmt.Fprintln(w, "No analyses found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Source", "Domain", "Score", "Missing", "When")
	for _, a := range analyses {
		if err := table.Append([]string{
			shortID(a.ID),
			truncate(a.Source, 30),
			domainOf(a.Domain),
			formatPoints(a.Score.Total),
			strconv.Itoa(len(a.MissingKeywords) + len(a.MissingSections)),
			a.CreatedAt.Format("Jan 02 15:04"),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func analysisDetail(w io.Writer, a *database.Analysis) error {
	fmt.Fprintf(w, "ID:          %s\n", a.ID)
	fmt.Fprintf(w, "Source:      %s\n", a.Source)
	if a.Domain != nil {
		fmt.Fprintf(w, "Domain:      %s\n", *a.Domain)
	}
	fmt.Fprintf(w, "ATS Score:   %s / %s\n", ScoreString(a.Score.Total), formatPoints(ats.MaxScore))
	fmt.Fprintf(w, "Breakdown:   keywords %s, sections %s, frequency %s, formatting %s\n",
		formatPoints(a.Score.KeywordScore),
		formatPoints(a.Score.SectionScore),
		formatPoints(a.Score.FrequencyScore),
		formatPoints(a.Score.FormattingScore),
	)
	fmt.Fprintf(w, "Matched:     %d keywords, %d sections\n", a.KeywordMatch, a.SectionMatch)
	writeList(w, "Missing keywords", a.MissingKeywords)
	writeList(w, "Missing sections", a.MissingSections)
	fmt.Fprintf(w, "Feedback:    %d sentences flagged\n", a.FeedbackCount)
	fmt.Fprintf(w, "Created:     %s\n", a.CreatedAt.Format("Jan 02, 2006 15:04"))
	return nil
}

func statsTable(w io.Writer, s *database.Stats) error {
	fmt.Fprintf(w, "Analyses:      %d\n", s.TotalAnalyses)
	if s.TotalAnalyses == 0 {
		return nil
	}
	fmt.Fprintf(w, "Average score: %s\n", formatPoints(s.AverageScore))
	fmt.Fprintf(w, "Best score:    %s\n", ScoreString(s.BestScore))
	fmt.Fprintf(w, "Latest score:  %s\n", ScoreString(s.LatestScore))
	return nil
}

// ScoreString formats a total score, colored by band
func ScoreString(score float64) string {
	s := formatPoints(score)
	switch {
	case score >= 75:
		return color.GreenString(s)
	case score >= 50:
		return color.YellowString(s)
	default:
		return color.RedString(s)
	}
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func domainOf(d *string) string {
	if d == nil {
		return "-"
	}
	return *d
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
