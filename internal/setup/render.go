package setup

import (
	"fmt"
	"io"
	"strings"
)

const rule = "═══════════════════════════════════════════════════════════"

// Print writes the report in the console layout used by every command
func Print(w io.Writer, r Report) {
	for _, c := range r.Checks {
		fmt.Fprintf(w, "\n%s\n  %s\n%s\n\n", rule, c.Name, rule)
		for _, item := range c.Items {
			fmt.Fprintf(w, "%s %s\n", mark(item.OK), item.Label)
			if item.Detail != "" {
				fmt.Fprintf(w, "   %s\n", item.Detail)
			}
		}
		for _, note := range c.Notes {
			fmt.Fprintf(w, "   %s\n", note)
		}
	}

	fmt.Fprintf(w, "\n%s\n  Summary\n%s\n\n", rule, rule)
	fmt.Fprintf(w, "   Checks passed: %d/%d (%.0f%%)\n\n", r.PassedCount(), len(r.Checks), r.Percent())

	if r.OK() {
		fmt.Fprintln(w, "   ✓ Environment setup is complete")
		fmt.Fprintln(w, "\n   Next steps:")
		fmt.Fprintln(w, "   1. Run: newsroom research trending")
		fmt.Fprintln(w, "   2. Run: newsroom analytics --period weekly")
		return
	}

	var failed []string
	for _, c := range r.Checks {
		if !c.Passed {
			failed = append(failed, c.Name)
		}
	}
	fmt.Fprintf(w, "   ⚠ Some checks failed: %s\n", strings.Join(failed, ", "))
	fmt.Fprintln(w, "\n   Common fixes:")
	fmt.Fprintln(w, "   - Create the environment file: cp .env.example .env.local")
	fmt.Fprintln(w, "   - Create the data directories: mkdir -p data content/essays content/drafts content/social_posts")
	fmt.Fprintln(w, "   - Check network access to the Hacker News API")
}
