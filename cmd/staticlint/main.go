/*
Command staticlint runs a multichecker built from the standard go/analysis
passes, the staticcheck SA analyzers, a few quickfix and stylecheck checks,
and two project analyzers.

# Standard passes

Every analyzer from golang.org/x/tools/go/analysis/passes that applies to
ordinary Go code: appends, asmdecl, assign, atomic, bools, buildtag, cgocall,
composite, copylock, defers, directive, errorsas, framepointer, httpresponse,
ifaceassert, loopclosure, lostcancel, nilfunc, printf, shift, sigchanyzer,
slog, stdmethods, stdversion, stringintconv, structtag, testinggoroutine,
tests, timeformat, unmarshal, unreachable, unsafeptr and unusedresult.

# Staticcheck

All SA analyzers from honnef.co/go/tools/staticcheck, plus QF1001 (apply De
Morgan's law) from quickfix and ST1005 (error strings are not capitalized)
from stylecheck.

# osexitlint

Reports a direct os.Exit call inside func main of package main. Deferred
calls do not run on os.Exit; return an error from a run function instead.

	os.Exit call is forbidden in main function: os.Exit(1)

# clocklint

Reports time.Now calls in non-test files outside the clock package. Code
that stamps records or queue items takes a clock.Clock so tests can pin time.

	time.Now call outside package clock; take a clock.Clock instead

Usage:

	staticlint ./...
*/
package main

import (
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/appends"
	"golang.org/x/tools/go/analysis/passes/asmdecl"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/buildtag"
	"golang.org/x/tools/go/analysis/passes/cgocall"
	"golang.org/x/tools/go/analysis/passes/composite"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/defers"
	"golang.org/x/tools/go/analysis/passes/directive"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/framepointer"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/ifaceassert"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shift"
	"golang.org/x/tools/go/analysis/passes/sigchanyzer"
	"golang.org/x/tools/go/analysis/passes/slog"
	"golang.org/x/tools/go/analysis/passes/stdmethods"
	"golang.org/x/tools/go/analysis/passes/stdversion"
	"golang.org/x/tools/go/analysis/passes/stringintconv"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/testinggoroutine"
	"golang.org/x/tools/go/analysis/passes/tests"
	"golang.org/x/tools/go/analysis/passes/timeformat"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unsafeptr"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/analysis/lint"
	"honnef.co/go/tools/quickfix"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"
)

// extraChecks are picked by name from the quickfix and stylecheck suites.
var extraChecks = map[string]bool{
	"QF1001": true,
	"ST1005": true,
}

func analyzers() []*analysis.Analyzer {
	used := map[string]bool{}
	var out []*analysis.Analyzer

	add := func(a *analysis.Analyzer) {
		if !used[a.Name] {
			out = append(out, a)
			used[a.Name] = true
		}
	}

	for _, a := range []*analysis.Analyzer{
		appends.Analyzer,
		asmdecl.Analyzer,
		assign.Analyzer,
		atomic.Analyzer,
		bools.Analyzer,
		buildtag.Analyzer,
		cgocall.Analyzer,
		composite.Analyzer,
		copylock.Analyzer,
		defers.Analyzer,
		directive.Analyzer,
		errorsas.Analyzer,
		framepointer.Analyzer,
		httpresponse.Analyzer,
		ifaceassert.Analyzer,
		inspect.Analyzer,
		loopclosure.Analyzer,
		lostcancel.Analyzer,
		nilfunc.Analyzer,
		printf.Analyzer,
		shift.Analyzer,
		sigchanyzer.Analyzer,
		slog.Analyzer,
		stdmethods.Analyzer,
		stdversion.Analyzer,
		stringintconv.Analyzer,
		structtag.Analyzer,
		testinggoroutine.Analyzer,
		tests.Analyzer,
		timeformat.Analyzer,
		unmarshal.Analyzer,
		unreachable.Analyzer,
		unsafeptr.Analyzer,
		unusedresult.Analyzer,
	} {
		add(a)
	}

	for _, a := range staticcheck.Analyzers {
		if strings.HasPrefix(a.Analyzer.Name, "SA") {
			add(a.Analyzer)
		}
	}

	for _, suite := range [][]*lint.Analyzer{quickfix.Analyzers, stylecheck.Analyzers} {
		for _, a := range suite {
			if extraChecks[a.Analyzer.Name] {
				add(a.Analyzer)
			}
		}
	}

	add(OsExitAnalyzer)
	add(ClockAnalyzer)

	return out
}

func main() {
	multichecker.Main(analyzers()...)
}
