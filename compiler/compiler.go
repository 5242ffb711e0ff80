// Package compiler runs the semantic passes and the code generator over a decaf syntax tree.
package compiler

import (
	"io"
	"log"

	"github.com/pkg/errors"

	"github.com/40404notfound/decaf-compiler/compiler/internal/ast"
	"github.com/40404notfound/decaf-compiler/compiler/internal/codegen"
	"github.com/40404notfound/decaf-compiler/compiler/internal/semant"
)

type Options struct {
	// Logger announces each stage. Nil discards.
	Logger *log.Logger
	// Emitter receives the generated code. Nil records into Result.Listing.
	Emitter codegen.Emitter
	// Reporter also receives every diagnostic. They are collected in Result.Errors either way.
	Reporter semant.Reporter
}

type Result struct {
	Info    *semant.Info
	Layouts codegen.Layouts
	// Listing is nil when a custom Emitter was given.
	Listing *codegen.Listing
	Errors  semant.ErrorList
}

// Compile runs every stage over the whole program before starting the next one. Code is
// generated even when diagnostics were reported, the returned error is then the ErrorList.
func Compile(prog *ast.Program, opts *Options) (*Result, error) {
	if prog == nil {
		return nil, errors.New("compiler: no program")
	}
	if opts == nil {
		opts = &Options{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	result := &Result{}
	var reporter semant.Reporter = &result.Errors
	if opts.Reporter != nil {
		reporter = semant.ReporterFunc(func(d *semant.Diagnostic) {
			result.Errors.Report(d)
			opts.Reporter.Report(d)
		})
	}
	emitter := opts.Emitter
	if emitter == nil {
		result.Listing = codegen.NewListing()
		emitter = result.Listing
	}

	checker := semant.NewChecker(reporter)
	logger.Println("compiler: start registering globals")
	checker.RegisterGlobals(prog)
	logger.Println("compiler: start type resolution")
	checker.ResolveTypes(prog)
	logger.Println("compiler: start scope resolution")
	checker.ResolveScopes(prog)
	logger.Println("compiler: start type checker")
	checker.CheckProgram(prog)
	result.Info = checker.Info()

	logger.Println("compiler: start generate codes")
	gen := codegen.NewGenerator(result.Info, emitter)
	gen.Generate(prog)
	result.Layouts = gen.Layouts()

	if err := result.Errors.Err(); err != nil {
		logger.Printf("compiler: %d semantic errors", len(result.Errors))
		return result, errors.Wrap(err, "compiler")
	}
	return result, nil
}
