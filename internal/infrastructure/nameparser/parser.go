// Package nameparser decomposes Western-style human names into first, middle,
// last, suffix and nickname parts.
package nameparser

import (
	"regexp"
	"strings"

	"github.com/ersonp/namesift/internal/domain/entities"
)

// reNickname matches "Jack", “Jack”, (Jack) and 'Jack' set off by spaces.
var reNickname = regexp.MustCompile(`"([^"]+)"|“([^”]+)”|\(([^)]+)\)|(?:^|\s)'([^']+)'(?:\s|$)`)

// Parser implements ports.NameDecomposer. It is stateless and safe for
// concurrent use.
type Parser struct{}

// New creates a new Parser.
func New() *Parser {
	return &Parser{}
}

// Parse splits name into parts. Parts that cannot be identified are nil.
func (p *Parser) Parse(name string) entities.NameParts {
	var parts entities.NameParts

	name, nickname := extractNicknames(name)
	parts.Nickname = entities.NonEmpty(nickname)

	segments := splitCommas(name)
	switch {
	case len(segments) == 0:
		return parts
	case len(segments) == 1:
		parseOrdered(strings.Fields(segments[0]), &parts)
	case allSuffixes(segments[1:]):
		// "First Last, Jr."
		parseOrdered(strings.Fields(segments[0]), &parts)
		parts.Suffix = joinSuffixes(parts.Suffix, segments[1:])
	default:
		// "Last, First Middle[, Suffix]"
		parseInverted(segments, &parts)
	}
	return parts
}

func extractNicknames(name string) (string, string) {
	var nicks []string
	for _, m := range reNickname.FindAllStringSubmatch(name, -1) {
		for _, g := range m[1:] {
			if g = strings.TrimSpace(g); g != "" {
				nicks = append(nicks, g)
			}
		}
	}
	rest := reNickname.ReplaceAllString(name, " ")
	return strings.Join(strings.Fields(rest), " "), strings.Join(nicks, " ")
}

func splitCommas(name string) []string {
	var segments []string
	for _, s := range strings.Split(name, ",") {
		if s = strings.TrimSpace(s); s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func allSuffixes(segments []string) bool {
	for _, s := range segments {
		for _, tok := range strings.Fields(s) {
			if !isSuffix(tok) {
				return false
			}
		}
	}
	return true
}

func joinSuffixes(existing *string, more []string) *string {
	all := make([]string, 0, len(more)+1)
	if existing != nil {
		all = append(all, *existing)
	}
	all = append(all, more...)
	return entities.NonEmpty(strings.Join(all, ", "))
}

// parseOrdered handles "[Title] First [Middle...] Last [Suffix...]".
func parseOrdered(tokens []string, parts *entities.NameParts) {
	tokens = stripTitles(tokens)
	tokens, suffix := stripSuffixes(tokens)
	parts.Suffix = suffix

	pieces := joinPieces(tokens)
	switch len(pieces) {
	case 0:
	case 1:
		parts.First = entities.Ptr(pieces[0])
	default:
		parts.First = entities.Ptr(pieces[0])
		parts.Last = entities.Ptr(pieces[len(pieces)-1])
		parts.Middle = entities.NonEmpty(strings.Join(pieces[1:len(pieces)-1], " "))
	}
}

// parseInverted handles "Last, [Title] First [Middle...][, Suffix...]".
func parseInverted(segments []string, parts *entities.NameParts) {
	lastTokens, suffix := stripSuffixes(strings.Fields(segments[0]))
	parts.Last = entities.NonEmpty(strings.Join(lastTokens, " "))

	rest, restSuffix := stripSuffixes(stripTitles(strings.Fields(segments[1])))
	pieces := joinPieces(rest)
	if len(pieces) > 0 {
		parts.First = entities.Ptr(pieces[0])
		parts.Middle = entities.NonEmpty(strings.Join(pieces[1:], " "))
	}

	var extra []string
	if restSuffix != nil {
		extra = append(extra, *restSuffix)
	}
	extra = append(extra, segments[2:]...)
	parts.Suffix = joinSuffixes(suffix, extra)
}

// stripTitles drops leading titles, always keeping at least one token.
func stripTitles(tokens []string) []string {
	for len(tokens) > 1 && isTitle(tokens[0]) {
		tokens = tokens[1:]
	}
	return tokens
}

// stripSuffixes removes trailing suffixes, always keeping at least one token.
func stripSuffixes(tokens []string) ([]string, *string) {
	end := len(tokens)
	for end > 1 && isSuffix(tokens[end-1]) {
		end--
	}
	if end == len(tokens) {
		return tokens, nil
	}
	return tokens[:end], entities.Ptr(strings.Join(tokens[end:], ", "))
}

// joinPieces merges surname prefixes with the word they introduce ("van
// Beethoven") and conjunctions with their neighbours ("Ortega y Gasset").
// A prefix in first position is treated as a given name.
func joinPieces(tokens []string) []string {
	pieces := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		hasNext := i+1 < len(tokens)

		if isConjunction(tok) && len(pieces) > 0 && hasNext {
			pieces[len(pieces)-1] += " " + tok + " " + tokens[i+1]
			i++
			continue
		}

		if isPrefix(tok) && len(pieces) > 0 && hasNext {
			j := i
			for j < len(tokens) && isPrefix(tokens[j]) {
				j++
			}
			if j < len(tokens) {
				pieces = append(pieces, strings.Join(tokens[i:j+1], " "))
				i = j
				continue
			}
		}

		pieces = append(pieces, tok)
	}
	return pieces
}
