// Package analyzers provides the custom static analyzers for namesift.
package analyzers

import (
	"golang.org/x/tools/go/analysis"

	"github.com/ersonp/namesift/tools/namesift-lint/analyzers/regexscope"
)

// All returns all analyzers to run.
func All() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		regexscope.Analyzer,
	}
}
