package main

import (
	"go/ast"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// ClockAnalyzer reports time.Now in non-test code outside package clock.
var ClockAnalyzer = &analysis.Analyzer{
	Name:     "clocklint",
	Doc:      "reports time.Now calls outside package clock; inject a clock.Clock instead",
	Run:      runClock,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

// clockExempt lists packages allowed to read the wall clock directly.
var clockExempt = map[string]bool{
	"clock": true,
	// request duration logging measures elapsed time, not timestamps
	"middleware": true,
}

func runClock(pass *analysis.Pass) (interface{}, error) {
	if clockExempt[pass.Pkg.Name()] {
		return nil, nil
	}
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		if strings.HasSuffix(pass.Fset.File(call.Pos()).Name(), "_test.go") {
			return
		}
		if isPkgCall(pass, call, "time", "Now") {
			pass.Reportf(call.Pos(), "time.Now call outside package clock; take a clock.Clock instead")
		}
	})

	return nil, nil
}
