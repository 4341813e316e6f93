package pipeline

import (
	"github.com/typedframes/framecheck/internal/ast"
	"github.com/typedframes/framecheck/internal/diagnostics"
	"github.com/typedframes/framecheck/internal/token"
)

// Processor is a single stage of the pipeline. Processors append their
// diagnostics to the context and return it for the next stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries one file through the pipeline.
type PipelineContext struct {
	SourceCode  string
	FilePath    string
	TokenStream []token.Token
	AstRoot     ast.Node
	Errors      []*diagnostics.DiagnosticError

	// Checker knobs, filled in by the host from project configuration.
	ExtraReserved   []string
	ExtraFrameTypes []string
}

func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{
		SourceCode: source,
		Errors:     make([]*diagnostics.DiagnosticError, 0),
	}
}
