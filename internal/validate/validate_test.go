package validate

import (
	"context"
	"errors"
	"os"
	"testing"
)

func writeDoc(t *testing.T) string {
	t.Helper()
	path := t.TempDir() + "/doc.xml"
	if err := os.WriteFile(path, []byte("<domain/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSchemaWithPassingTool(t *testing.T) {
	ok, _, err := SchemaWith(context.Background(), "true", writeDoc(t))
	if err != nil {
		t.Fatalf("SchemaWith() error = %v", err)
	}
	if !ok {
		t.Error("passing validator reported invalid")
	}
}

func TestSchemaWithFailingTool(t *testing.T) {
	// A validator that runs and rejects is a verdict, not an error.
	ok, _, err := SchemaWith(context.Background(), "false", writeDoc(t))
	if err != nil {
		t.Fatalf("SchemaWith() error = %v", err)
	}
	if ok {
		t.Error("failing validator reported valid")
	}
}

func TestSchemaWithDiagnostics(t *testing.T) {
	// sh -c is not expressible here, so use a tool that echoes its
	// argument: the diagnostics come back verbatim.
	path := writeDoc(t)
	ok, out, err := SchemaWith(context.Background(), "echo", path)
	if err != nil {
		t.Fatalf("SchemaWith() error = %v", err)
	}
	if !ok {
		t.Error("echo exited nonzero?")
	}
	if out != path+"\n" {
		t.Errorf("diagnostics = %q, want %q", out, path+"\n")
	}
}

func TestSchemaWithMissingTool(t *testing.T) {
	_, _, err := SchemaWith(context.Background(), "definitely-not-a-real-validator", writeDoc(t))
	if err == nil {
		t.Fatal("missing tool expected error")
	}
	var toolErr *ExternalToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("error type = %T, want *ExternalToolError", err)
	}
	if toolErr.Cmd != "definitely-not-a-real-validator" {
		t.Errorf("ExternalToolError.Cmd = %q", toolErr.Cmd)
	}
}

func TestSchemaWithCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := SchemaWith(ctx, "true", writeDoc(t))
	if err == nil {
		t.Fatal("cancelled context expected error")
	}
}
