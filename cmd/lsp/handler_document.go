package main

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/typedframes/framecheck/internal/checker"
)

// DocumentState stores the state of a single open document
type DocumentState struct {
	Content string         // Current file content
	Result  checker.Result // Result of the last check
	Mu      sync.RWMutex   // Mutex to protect access to state
}

func (s *LanguageServer) handleDidOpen(params DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	content := params.TextDocument.Text

	docState := &DocumentState{
		Content: content,
	}

	result := s.checkDocument(content, uri)
	docState.Result = result

	s.mu.Lock()
	s.documents[uri] = docState
	s.mu.Unlock()

	log.Printf("Opened file: %s", uri)

	return s.publishDiagnostics(uri, result)
}

func (s *LanguageServer) handleDidChange(params DidChangeTextDocumentParams) error {
	// Full content sync (TextDocumentSyncKind.Full)
	if len(params.ContentChanges) > 0 {
		uri := params.TextDocument.URI
		newContent := params.ContentChanges[0].Text

		s.mu.RLock()
		docState, exists := s.documents[uri]
		s.mu.RUnlock()

		if !exists {
			return fmt.Errorf("document %s not found", uri)
		}

		result := s.checkDocument(newContent, uri)

		docState.Mu.Lock()
		docState.Content = newContent
		docState.Result = result
		docState.Mu.Unlock()

		return s.publishDiagnostics(uri, result)
	}
	return nil
}

func (s *LanguageServer) handleDidClose(params DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()
	log.Printf("Closed file: %s", params.TextDocument.URI)
	return nil
}

func (s *LanguageServer) checkDocument(content string, uri string) checker.Result {
	if !s.config.IsEnabled() {
		// A disabled project still gets publishDiagnostics with an empty
		// list so stale squiggles clear.
		return checker.Result{}
	}
	return checker.Check(content, s.uriToPath(uri), checker.Options{
		ExtraReserved:   s.config.ExtraReserved,
		ExtraFrameTypes: s.config.ExtraFrameTypes,
	})
}

func (s *LanguageServer) uriToPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		return strings.TrimPrefix(uri, "file://")
	}
	return uri
}

func pathToURI(path string) string {
	if strings.HasPrefix(path, "file://") {
		return path
	}
	return "file://" + path
}
