package a

import "regexp"

type record struct{ name string }

var reLifeDates = regexp.MustCompile(`, \d{4}`)

func stage(records []record, fn func(*record)) []record {
	out := make([]record, len(records))
	for i := range records {
		out[i] = records[i]
		fn(&out[i])
	}
	return out
}

func removeDatesBad(records []record) []record {
	return stage(records, func(r *record) {
		re := regexp.MustCompile(`, \d{4}`) // want "regexp.MustCompile called in removeDatesBad"
		r.name = re.ReplaceAllString(r.name, "")
	})
}

func checkBad(name string) bool {
	re, err := regexp.Compile(`\(`) // want "regexp.Compile called in checkBad"
	return err == nil && re.MatchString(name)
}

func removeDatesGood(records []record) []record {
	return stage(records, func(r *record) {
		r.name = reLifeDates.ReplaceAllString(r.name, "")
	})
}

var reBrackets *regexp.Regexp

func init() {
	reBrackets = regexp.MustCompile(`[\[\]]`)
}

func stripBrackets(s string) string {
	return reBrackets.ReplaceAllString(s, "")
}
