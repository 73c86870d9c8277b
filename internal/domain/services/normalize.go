package services

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/ersonp/namesift/internal/domain/entities"
	"github.com/ersonp/namesift/internal/domain/ports"
)

var (
	// reLifeDates matches an embedded ", YYYY" or ", YYYY-YYYY".
	reLifeDates = regexp.MustCompile(`, \b\d{4}(?:-\d{4})?\b`)
	// reParenthetical matches one non-greedy (...) group and captures its content.
	reParenthetical = regexp.MustCompile(`\((.*?)\)`)
	// reBrackets matches square bracket characters.
	reBrackets = regexp.MustCompile(`[\[\]]`)
)

// Stage transforms the full record set. Stages return new records and never
// mutate their input.
type Stage func([]entities.Record) []entities.Record

// NamedStage pairs a stage with a name for logging.
type NamedStage struct {
	Name  string
	Apply Stage
}

// PipelineStats summarizes a normalization pass.
type PipelineStats struct {
	Total      int `json:"total"`
	Persons    int `json:"persons"`
	Flagged    int `json:"flagged"`
	Decomposed int `json:"decomposed"`
}

// Excluded returns how many records cannot enter the hierarchy.
func (s PipelineStats) Excluded() int {
	return s.Total - s.Persons + s.Flagged
}

// NormalizeService runs the normalization pipeline.
type NormalizeService struct {
	stages []NamedStage
	log    *slog.Logger
}

// NewNormalizeService creates a service running the standard stage order,
// decomposing names with decomposer.
func NewNormalizeService(decomposer ports.NameDecomposer, log *slog.Logger) *NormalizeService {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &NormalizeService{
		stages: Pipeline(decomposer),
		log:    log,
	}
}

// Pipeline returns the stages in the order later stages depend on.
func Pipeline(decomposer ports.NameDecomposer) []NamedStage {
	return []NamedStage{
		{Name: "standardize_abbreviations", Apply: StandardizeAbbreviations},
		{Name: "remove_dates", Apply: RemoveDates},
		{Name: "check_parentheses", Apply: CheckParentheses},
		{Name: "extract_parentheticals", Apply: ExtractParentheticals},
		{Name: "remove_parentheticals", Apply: RemoveParentheticals},
		{Name: "move_lastname", Apply: MoveLastName},
		{Name: "extract_name_parts", Apply: DecomposeNames(decomposer)},
	}
}

// Normalize runs every stage over records and returns the transformed copy.
func (s *NormalizeService) Normalize(records []entities.Record) ([]entities.Record, PipelineStats) {
	out := records
	for _, st := range s.stages {
		out = st.Apply(out)
		s.log.Debug("stage complete", "stage", st.Name, "records", len(out))
	}

	for i := range out {
		if r := &out[i]; r.IsPerson() && r.ManualReview {
			s.log.Debug("record flagged for manual review", "position", r.Position, "name", entities.Str(r.Name))
		}
	}
	stats := Summarize(out)

	s.log.Info("normalization complete",
		"total", stats.Total,
		"persons", stats.Persons,
		"flagged", stats.Flagged,
		"decomposed", stats.Decomposed,
	)
	return out, stats
}

// Summarize counts normalized records.
func Summarize(records []entities.Record) PipelineStats {
	stats := PipelineStats{Total: len(records)}
	for i := range records {
		r := &records[i]
		if !r.IsPerson() {
			continue
		}
		stats.Persons++
		if r.ManualReview {
			stats.Flagged++
		}
		if r.LastName != nil || r.FirstName != nil {
			stats.Decomposed++
		}
	}
	return stats
}

// mapRecords applies fn to a clone of every record.
func mapRecords(records []entities.Record, fn func(*entities.Record)) []entities.Record {
	out := make([]entities.Record, len(records))
	for i := range records {
		out[i] = records[i].Clone()
		fn(&out[i])
	}
	return out
}

// StandardizeAbbreviations separates run-together initials in Name ("J.R.R." -> "J. R. R.").
func StandardizeAbbreviations(records []entities.Record) []entities.Record {
	return mapRecords(records, func(r *entities.Record) {
		if entities.Str(r.Name) == "" {
			return
		}
		r.Name = entities.Ptr(standardizeAbbreviations(*r.Name))
	})
}

// standardizeAbbreviations inserts a space after every period that follows a
// word-initial uppercase letter and precedes another uppercase letter.
func standardizeAbbreviations(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range runes {
		b.WriteRune(r)
		if r != '.' || i == 0 || i+1 >= len(runes) {
			continue
		}
		if !unicode.IsUpper(runes[i-1]) || !unicode.IsUpper(runes[i+1]) {
			continue
		}
		if i >= 2 && isWordRune(runes[i-2]) {
			continue
		}
		b.WriteRune(' ')
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// RemoveDates strips embedded life dates from person names into DatesRemoved.
// When the source attested no dates, the last stripped year or range becomes Dates.
func RemoveDates(records []entities.Record) []entities.Record {
	return mapRecords(records, func(r *entities.Record) {
		if !r.IsPerson() || entities.Str(r.Name) == "" {
			return
		}
		name := *r.Name

		stripped := reLifeDates.ReplaceAllString(name, "")
		stripped = strings.TrimSpace(stripped)
		stripped = strings.TrimSpace(strings.TrimRight(stripped, "-"))
		r.DatesRemoved = entities.Ptr(stripped)

		if entities.Str(r.Dates) == "" {
			if d := embeddedDates(name); d != "" {
				r.Dates = entities.Ptr(d)
			}
		}
	})
}

// embeddedDates returns the last year or year range embedded in name. An open
// range ("1900-") keeps its hyphen.
func embeddedDates(name string) string {
	locs := reLifeDates.FindAllStringIndex(name, -1)
	if len(locs) == 0 {
		return ""
	}
	last := locs[len(locs)-1]
	d := strings.TrimPrefix(name[last[0]:last[1]], ", ")
	if !strings.Contains(d, "-") && last[1] < len(name) && name[last[1]] == '-' {
		d += "-"
	}
	return d
}

// CheckParentheses flags person records whose names have unbalanced parentheses.
func CheckParentheses(records []entities.Record) []entities.Record {
	return mapRecords(records, func(r *entities.Record) {
		if !r.IsPerson() || entities.Str(r.Name) == "" {
			return
		}
		r.ManualReview = strings.Count(*r.Name, "(") != strings.Count(*r.Name, ")")
	})
}

// ExtractParentheticals collects the content of every (...) group in Name.
// It runs regardless of balance, so results for flagged records are best-effort.
func ExtractParentheticals(records []entities.Record) []entities.Record {
	return mapRecords(records, func(r *entities.Record) {
		if entities.Str(r.Name) == "" {
			return
		}
		matches := reParenthetical.FindAllStringSubmatch(*r.Name, -1)
		found := make([]string, 0, len(matches))
		for _, m := range matches {
			found = append(found, m[1])
		}
		r.Parentheticals = found
	})
}

// RemoveParentheticals derives CleanName from DatesRemoved (or Name when no
// dates were removed) by dropping parentheticals and brackets.
func RemoveParentheticals(records []entities.Record) []entities.Record {
	return mapRecords(records, func(r *entities.Record) {
		if !r.IsPerson() || entities.Str(r.Name) == "" {
			return
		}
		src := *r.Name
		if d := entities.Str(r.DatesRemoved); d != "" {
			src = d
		}
		r.CleanName = entities.Ptr(removeParentheticals(src))
	})
}

func removeParentheticals(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, ", (", " ("))
	s = strings.TrimSpace(reParenthetical.ReplaceAllString(s, ""))
	s = strings.TrimSpace(reBrackets.ReplaceAllString(s, ""))
	return strings.TrimSpace(strings.ReplaceAll(s, " ,", ""))
}

// MoveLastName rewrites "Surname, Rest" clean names as "Rest Surname".
// Only the first comma is significant.
func MoveLastName(records []entities.Record) []entities.Record {
	return mapRecords(records, func(r *entities.Record) {
		if !r.IsPerson() || entities.Str(r.CleanName) == "" {
			return
		}
		r.CleanName = entities.Ptr(moveLastName(*r.CleanName))
	})
}

func moveLastName(s string) string {
	surname, rest, ok := strings.Cut(s, ",")
	if !ok {
		return s
	}
	return strings.TrimSpace(strings.TrimSpace(rest) + " " + strings.TrimSpace(surname))
}

// DecomposeNames returns a stage deriving structured name parts from CleanName.
func DecomposeNames(decomposer ports.NameDecomposer) Stage {
	return func(records []entities.Record) []entities.Record {
		return mapRecords(records, func(r *entities.Record) {
			if !r.IsPerson() || entities.Str(r.CleanName) == "" {
				return
			}
			r.SetNameParts(decomposer.Parse(*r.CleanName))
		})
	}
}
