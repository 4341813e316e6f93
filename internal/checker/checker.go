// Package checker is the embedding boundary of the analysis: one call
// takes source text and a path and returns every diagnostic the pipeline
// produced for it.
package checker

import (
	"github.com/typedframes/framecheck/internal/analyzer"
	"github.com/typedframes/framecheck/internal/diagnostics"
	"github.com/typedframes/framecheck/internal/lexer"
	"github.com/typedframes/framecheck/internal/parser"
	"github.com/typedframes/framecheck/internal/pipeline"
)

// Options adjusts the checker from project configuration.
type Options struct {
	ExtraReserved   []string
	ExtraFrameTypes []string
}

// Result is the outcome of checking one file. ParseFailed distinguishes a
// file the checker could not read from a file with zero findings.
type Result struct {
	Diagnostics []*diagnostics.DiagnosticError
	ParseFailed bool
}

// Check runs the full pipeline over one file's source.
func Check(source, path string, opts Options) Result {
	ctx := pipeline.NewPipelineContext(source)
	ctx.FilePath = path
	ctx.ExtraReserved = opts.ExtraReserved
	ctx.ExtraFrameTypes = opts.ExtraFrameTypes

	processingPipeline := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.CheckProcessor{},
	)
	finalCtx := processingPipeline.Run(ctx)

	result := Result{Diagnostics: finalCtx.Errors}
	for _, err := range finalCtx.Errors {
		if err.IsParseFailure() {
			result.ParseFailed = true
			break
		}
	}
	return result
}
