package lexer

import (
	"github.com/typedframes/framecheck/internal/diagnostics"
	"github.com/typedframes/framecheck/internal/pipeline"
	"github.com/typedframes/framecheck/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.TokenStream = Tokenize(ctx.SourceCode)

	for _, tok := range ctx.TokenStream {
		if tok.Type != token.ILLEGAL {
			continue
		}
		code := diagnostics.ErrL001
		switch tok.Literal {
		case MsgUnterminatedString:
			code = diagnostics.ErrL002
		case MsgBadIndent:
			code = diagnostics.ErrL003
		}
		err := diagnostics.NewError(code, tok, tok.Literal)
		err.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, err)
	}

	return ctx
}
