package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func parseLSPOutput(t *testing.T, output string) string {
	t.Helper()
	parts := strings.SplitN(output, "\r\n\r\n", 2)
	if len(parts) != 2 {
		t.Fatalf("Invalid LSP output format (header/body split failed): %q", output)
	}
	return parts[1]
}

func openDocument(t *testing.T, uri, code string) (*LanguageServer, *bytes.Buffer) {
	t.Helper()
	buf := new(bytes.Buffer)
	server := NewLanguageServer(buf)

	didOpenParams := DidOpenTextDocumentParams{
		TextDocument: TextDocumentItem{
			URI:        uri,
			LanguageID: "python",
			Version:    1,
			Text:       code,
		},
	}
	if err := server.handleDidOpen(didOpenParams); err != nil {
		t.Fatalf("handleDidOpen failed: %v", err)
	}
	return server, buf
}

func decodeDiagnostics(t *testing.T, body string) PublishDiagnosticsParams {
	t.Helper()
	var notif struct {
		Method string                   `json:"method"`
		Params PublishDiagnosticsParams `json:"params"`
	}
	if err := json.Unmarshal([]byte(body), &notif); err != nil {
		t.Fatalf("Failed to decode notification: %v", err)
	}
	if notif.Method != "textDocument/publishDiagnostics" {
		t.Fatalf("Expected publishDiagnostics, got %q", notif.Method)
	}
	return notif.Params
}

func TestLSP_DidOpen_PublishesUnknownColumn(t *testing.T) {
	uri := "file:///test.py"
	code := "class UserSchema(BaseSchema):\n" +
		"    email = Column()\n" +
		"\n" +
		"df = DataFrame[UserSchema]()\n" +
		"df.emai\n"
	_, buf := openDocument(t, uri, code)

	params := decodeDiagnostics(t, parseLSPOutput(t, buf.String()))
	if params.URI != uri {
		t.Errorf("Expected URI %q, got %q", uri, params.URI)
	}
	if len(params.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d: %+v", len(params.Diagnostics), params.Diagnostics)
	}

	diag := params.Diagnostics[0]
	if diag.Severity != SeverityError {
		t.Errorf("Expected error severity, got %d", diag.Severity)
	}
	if diag.Code != "C001" {
		t.Errorf("Expected code C001, got %v", diag.Code)
	}
	if !strings.Contains(diag.Message, "did you mean 'email'") {
		t.Errorf("Expected suggestion in message, got: %s", diag.Message)
	}
	if diag.Range.Start.Line != 4 {
		t.Errorf("Expected 0-based line 4, got %d", diag.Range.Start.Line)
	}
	if diag.Source != "framecheck" {
		t.Errorf("Expected source framecheck, got %q", diag.Source)
	}
}

func TestLSP_DidOpen_CleanFileClearsDiagnostics(t *testing.T) {
	uri := "file:///clean.py"
	code := "class UserSchema(BaseSchema):\n" +
		"    email = Column()\n" +
		"\n" +
		"df = DataFrame[UserSchema]()\n" +
		"df.email\n"
	_, buf := openDocument(t, uri, code)

	params := decodeDiagnostics(t, parseLSPOutput(t, buf.String()))
	if len(params.Diagnostics) != 0 {
		t.Errorf("Expected no diagnostics, got %+v", params.Diagnostics)
	}
}

func TestLSP_ShadowWarningSeverity(t *testing.T) {
	uri := "file:///shadow.py"
	code := "class StatsSchema(BaseSchema):\n" +
		"    count = Column()\n"
	_, buf := openDocument(t, uri, code)

	params := decodeDiagnostics(t, parseLSPOutput(t, buf.String()))
	if len(params.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(params.Diagnostics))
	}
	if params.Diagnostics[0].Severity != SeverityWarning {
		t.Errorf("Expected warning severity, got %d", params.Diagnostics[0].Severity)
	}
	if params.Diagnostics[0].Code != "C003" {
		t.Errorf("Expected code C003, got %v", params.Diagnostics[0].Code)
	}
}

func TestLSP_DidChange_Reanalyzes(t *testing.T) {
	uri := "file:///change.py"
	code := "class UserSchema(BaseSchema):\n" +
		"    email = Column()\n" +
		"\n" +
		"df = DataFrame[UserSchema]()\n" +
		"df.emai\n"
	server, buf := openDocument(t, uri, code)
	buf.Reset()

	fixed := strings.Replace(code, "df.emai", "df.email", 1)
	err := server.handleDidChange(DidChangeTextDocumentParams{
		TextDocument:   VersionedTextDocumentIdentifier{URI: uri, Version: 2},
		ContentChanges: []TextDocumentContentChangeEvent{{Text: fixed}},
	})
	if err != nil {
		t.Fatalf("handleDidChange failed: %v", err)
	}

	params := decodeDiagnostics(t, parseLSPOutput(t, buf.String()))
	if len(params.Diagnostics) != 0 {
		t.Errorf("Expected no diagnostics after fix, got %+v", params.Diagnostics)
	}
}

func TestLSP_DidChange_UnknownDocument(t *testing.T) {
	server := NewLanguageServer(new(bytes.Buffer))
	err := server.handleDidChange(DidChangeTextDocumentParams{
		TextDocument:   VersionedTextDocumentIdentifier{URI: "file:///missing.py", Version: 1},
		ContentChanges: []TextDocumentContentChangeEvent{{Text: "x = 1\n"}},
	})
	if err == nil {
		t.Error("Expected error for unknown document")
	}
}

func TestLSP_Initialize_CapturesRoot(t *testing.T) {
	buf := new(bytes.Buffer)
	server := NewLanguageServer(buf)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte("[tool.framecheck]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	rootURI := "file://" + dir
	err := server.handleInitialize(1, InitializeParams{RootURI: &rootURI})
	if err != nil {
		t.Fatalf("handleInitialize failed: %v", err)
	}
	if server.rootPath != dir {
		t.Errorf("Expected rootPath %q, got %q", dir, server.rootPath)
	}

	body := parseLSPOutput(t, buf.String())
	var resp ResponseMessage
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	resBytes, _ := json.Marshal(resp.Result)
	if !strings.Contains(string(resBytes), "\"textDocumentSync\":1") {
		t.Errorf("Expected full sync capability, got: %s", resBytes)
	}
}
