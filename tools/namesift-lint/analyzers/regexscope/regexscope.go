// Package regexscope reports regular expressions compiled inside functions.
// Normalization stages run once per record, so their patterns belong in
// package-level variables.
package regexscope

import (
	"go/ast"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer reports regexp.Compile and friends called inside a function body.
var Analyzer = &analysis.Analyzer{
	Name:     "regexscope",
	Doc:      "reports regexp compilation inside function bodies; compile patterns at package level",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var compileFuncs = map[string]bool{
	"Compile":          true,
	"MustCompile":      true,
	"CompilePOSIX":     true,
	"MustCompilePOSIX": true,
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.Preorder([]ast.Node{(*ast.FuncDecl)(nil)}, func(n ast.Node) {
		decl := n.(*ast.FuncDecl)
		if decl.Body == nil || decl.Recv == nil && decl.Name.Name == "init" {
			return
		}
		if strings.HasSuffix(pass.Fset.Position(decl.Pos()).Filename, "_test.go") {
			return
		}

		// Function literals nested in the body are covered by this walk.
		ast.Inspect(decl.Body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			if name, ok := regexpCompile(call); ok {
				pass.Reportf(call.Pos(),
					"regexp.%s called in %s - move the pattern to a package-level var",
					name, decl.Name.Name)
			}
			return true
		})
	})

	return nil, nil
}

// regexpCompile reports whether call is regexp.<compile func>.
func regexpCompile(call *ast.CallExpr) (string, bool) {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return "", false
	}
	ident, ok := sel.X.(*ast.Ident)
	if !ok || ident.Name != "regexp" {
		return "", false
	}
	return sel.Sel.Name, compileFuncs[sel.Sel.Name]
}
