package main

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/typedframes/framecheck/internal/checker"
	"github.com/typedframes/framecheck/internal/runner"
)

// scanWorkspace checks every Python file under the workspace root and
// publishes diagnostics for each, so problems show up before any file is
// opened. Progress is reported through a server-initiated work done token.
func (s *LanguageServer) scanWorkspace() {
	if s.rootPath == "" || !s.config.IsEnabled() {
		return
	}

	files, err := runner.CollectFiles([]string{s.rootPath})
	if err != nil {
		log.Printf("Workspace scan failed: %v", err)
		return
	}
	if len(files) == 0 {
		return
	}

	token := uuid.NewString()
	s.beginProgress(token, fmt.Sprintf("framecheck: scanning %d files", len(files)))
	defer s.endProgress(token)

	for i, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Workspace scan: read %s: %v", path, err)
			continue
		}

		result := checker.Check(string(content), path, checker.Options{
			ExtraReserved:   s.config.ExtraReserved,
			ExtraFrameTypes: s.config.ExtraFrameTypes,
		})

		uri := pathToURI(path)
		s.mu.RLock()
		_, open := s.documents[uri]
		s.mu.RUnlock()
		if open {
			continue // an open editor buffer is fresher than the file on disk
		}

		if err := s.publishDiagnostics(uri, result); err != nil {
			log.Printf("Workspace scan: publish %s: %v", path, err)
		}

		s.reportProgress(token, path, (i+1)*100/len(files))
	}
}

func (s *LanguageServer) beginProgress(token, title string) {
	create := RequestMessage{
		Jsonrpc: "2.0",
		ID:      token,
		Method:  "window/workDoneProgress/create",
		Params:  WorkDoneProgressCreateParams{Token: token},
	}
	if err := s.sendMessage(create); err != nil {
		log.Printf("Progress create failed: %v", err)
		return
	}

	begin := NotificationMessage{
		Jsonrpc: "2.0",
		Method:  "$/progress",
		Params: ProgressParams{
			Token: token,
			Value: WorkDoneProgressBegin{Kind: "begin", Title: title},
		},
	}
	if err := s.sendNotification(begin); err != nil {
		log.Printf("Progress begin failed: %v", err)
	}
}

func (s *LanguageServer) reportProgress(token, message string, percentage int) {
	report := NotificationMessage{
		Jsonrpc: "2.0",
		Method:  "$/progress",
		Params: ProgressParams{
			Token: token,
			Value: WorkDoneProgressReport{Kind: "report", Message: message, Percentage: percentage},
		},
	}
	if err := s.sendNotification(report); err != nil {
		log.Printf("Progress report failed: %v", err)
	}
}

func (s *LanguageServer) endProgress(token string) {
	end := NotificationMessage{
		Jsonrpc: "2.0",
		Method:  "$/progress",
		Params: ProgressParams{
			Token: token,
			Value: WorkDoneProgressEnd{Kind: "end", Message: "framecheck: scan complete"},
		},
	}
	if err := s.sendNotification(end); err != nil {
		log.Printf("Progress end failed: %v", err)
	}
}
