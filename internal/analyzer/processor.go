package analyzer

import (
	"github.com/typedframes/framecheck/internal/ast"
	"github.com/typedframes/framecheck/internal/pipeline"
)

// CheckProcessor runs the column checker as the pipeline's analysis stage.
type CheckProcessor struct{}

func (cp *CheckProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		// Lexer/parser already reported why there is nothing to analyze.
		return ctx
	}
	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		return ctx
	}

	a := New(ctx.ExtraReserved, ctx.ExtraFrameTypes)
	for _, err := range a.Analyze(program) {
		if err.File == "" {
			err.File = ctx.FilePath
		}
		ctx.Errors = append(ctx.Errors, err)
	}
	return ctx
}
