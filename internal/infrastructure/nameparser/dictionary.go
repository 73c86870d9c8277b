package nameparser

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Lookup keys are case- and diacritic-folded with trailing periods removed.
var (
	titles = wordSet(
		"mr", "mrs", "ms", "miss", "mx", "dr", "doctor", "prof", "professor",
		"sir", "dame", "lord", "lady", "rev", "reverend", "fr", "father",
		"sister", "brother", "capt", "captain", "col", "colonel", "gen", "general",
		"maj", "major", "lt", "sgt", "hon", "honorable", "judge", "rabbi", "imam",
		"sheikh", "king", "queen", "prince", "princess", "pope", "count", "countess",
		"baron", "baroness", "duke", "duchess", "sr", "sra", "srta", "mme", "mlle", "herr", "frau",
	)
	suffixes = wordSet(
		"jr", "jnr", "sr", "snr", "ii", "iii", "iv", "vi", "vii", "viii", "ix",
		"xi", "xii", "xiii", "xiv", "xv", "xvi", "xvii", "xviii",
		"esq", "esquire", "phd", "md", "dds", "jd", "mba", "obe", "mbe",
		"kbe", "cbe", "frs", "rn",
	)
	prefixes = wordSet(
		"ab", "al", "bin", "bint", "da", "dal", "de", "del", "dela", "della", "der",
		"di", "dos", "du", "el", "ibn", "la", "le", "of", "san", "santa", "st", "ste",
		"ten", "ter", "the", "van", "vander", "vel", "von", "zu",
	)
	conjunctions = wordSet("&", "and", "e", "et", "und", "y")
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// foldKey normalizes a token for dictionary lookup: "Jr." and "JR" both become "jr".
func foldKey(token string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, token)
	if err != nil {
		stripped = token
	}
	return strings.Trim(cases.Fold().String(stripped), ".,")
}

func inSet(set map[string]struct{}, token string) bool {
	_, ok := set[foldKey(token)]
	return ok
}

func isTitle(token string) bool  { return inSet(titles, token) }
func isSuffix(token string) bool { return inSet(suffixes, token) }
func isPrefix(token string) bool { return inSet(prefixes, token) }

// isConjunction rejects initials such as "E." or "Y" that fold to a conjunction.
func isConjunction(token string) bool {
	if strings.Contains(token, ".") {
		return false
	}
	if r := []rune(token); len(r) == 1 && unicode.IsUpper(r[0]) {
		return false
	}
	return inSet(conjunctions, token)
}
