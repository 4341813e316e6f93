package main

import (
	"path/filepath"

	"github.com/typedframes/framecheck/internal/checker"
	"github.com/typedframes/framecheck/internal/diagnostics"
)

func (s *LanguageServer) publishDiagnostics(uri string, result checker.Result) error {
	lspDiagnostics := s.convertDiagnostics(result.Diagnostics, s.uriToPath(uri))

	notification := NotificationMessage{
		Jsonrpc: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params: PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: lspDiagnostics,
		},
	}

	return s.sendNotification(notification)
}

func (s *LanguageServer) convertDiagnostics(errors []*diagnostics.DiagnosticError, filePath string) []Diagnostic {
	result := make([]Diagnostic, 0)
	targetPath := filepath.Clean(filePath)

	for _, err := range errors {
		if err.File != "" && targetPath != "" {
			if filepath.Clean(err.File) != targetPath {
				continue
			}
		}

		severity := SeverityError
		if err.IsWarning() {
			severity = SeverityWarning
		}

		diag := Diagnostic{
			Range: Range{
				Start: Position{
					Line:      err.Token.Line - 1, // LSP uses 0-based indexing
					Character: err.Token.Column - 1,
				},
				End: Position{
					Line:      err.Token.Line - 1,
					Character: err.Token.Column + len(err.Token.Lexeme) - 1,
				},
			},
			Severity: severity,
			Code:     string(err.Code),
			Message:  err.Message,
			Source:   "framecheck",
		}
		result = append(result, diag)
	}

	return result
}
