// Package validate invokes an external XML schema validator against a
// materialized document.
//
// The validator's verdict is data, not an error: Schema returns (ok,
// diagnostics) whether the document passed or failed. An error is returned
// only when the tool could not be executed at all.
package validate

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// DefaultCommand is the schema validator run by Schema. The libvirt
// distribution ships it alongside the daemon.
const DefaultCommand = "virt-xml-validate"

// ExternalToolError reports that an external command could not be run at
// all, as opposed to running and reporting a negative verdict.
type ExternalToolError struct {
	Cmd string
	Err error
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("failed to run %s: %v", e.Cmd, e.Err)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }

// Schema validates the document at path with the default validator.
func Schema(ctx context.Context, path string) (bool, string, error) {
	return SchemaWith(ctx, DefaultCommand, path)
}

// SchemaWith validates the document at path with the given validator
// command. The returned bool is the validator's exit verdict and the
// string its combined stdout/stderr, reported verbatim.
//
// Cancellation is the caller's responsibility via ctx; no timeout policy
// is imposed here.
func SchemaWith(ctx context.Context, tool, path string) (bool, string, error) {
	cmd := exec.CommandContext(ctx, tool, path)
	out, err := cmd.CombinedOutput()
	if err == nil {
		return true, string(out), nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// The validator ran and rejected the document.
		return false, string(out), nil
	}
	return false, "", &ExternalToolError{Cmd: tool, Err: err}
}
