package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ppiankov/newsroom/internal/model"
)

const (
	banner = "============================================================"
	rule   = "═══════════════════════════════════════════════════════════"
)

// heading prints a title between two double rules
func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n  %s\n%s\n\n", rule, title, rule)
}

// businessFailure reports outcome errors on the console and swallows them.
// Anything else is returned to cobra.
func businessFailure(w io.Writer, err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidInput),
		errors.Is(err, model.ErrNotFound),
		errors.Is(err, model.ErrInsufficientData):
		fmt.Fprintf(w, "⚠ %v\n", err)
		return nil
	}
	return err
}

// commandContext returns the command's context, or Background when the
// command was invoked directly
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
