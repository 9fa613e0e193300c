package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/doeshing/springprobe/internal/domain"
)

// RenderModuleResult prints the deployment check summary in a friendly,
// ASCII-only format.
func RenderModuleResult(out io.Writer, result domain.ModuleCheckResult, showBodies bool) {
	banner(out, "DEPLOYMENT STATUS CHECK RESULTS")
	fmt.Fprintf(out, "Module: %s\n", result.Module)
	fmt.Fprintf(out, "Deployment Status: %s\n", result.Status)
	fmt.Fprintf(out, "Timestamp: %s\n", result.Timestamp.Format(domain.TimestampFormat))

	fmt.Fprintln(out)
	renderOutcome(out, "Health probe", result.Health, showBodies)
	renderOutcome(out, "Info probe", result.Info, showBodies)
}

// RenderAPIResult prints a custom API check summary.
func RenderAPIResult(out io.Writer, result domain.APICheckResult, showBody bool) {
	banner(out, "API CHECK")
	fmt.Fprintf(out, "Endpoint: %s\n", result.Outcome.URL)
	fmt.Fprintf(out, "Method: %s\n", result.Outcome.Method)
	fmt.Fprintf(out, "Status Code: %s\n", describeStatus(result.Outcome))
	fmt.Fprintf(out, "Expected: %d\n", result.ExpectedStatus)
	fmt.Fprintf(out, "Response Time: %.2fs\n", result.Outcome.Elapsed.Seconds())
	fmt.Fprintf(out, "Success: %v\n", result.Success)
	if result.Outcome.Error != "" {
		fmt.Fprintf(out, "Error: %s\n", result.Outcome.Error)
	}
	if showBody {
		renderBody(out, result.Outcome)
	}
}

// RenderContractResult prints the per-field contract comparison.
func RenderContractResult(out io.Writer, result domain.ContractResult) {
	banner(out, "CONTRACT VALIDATION")
	fmt.Fprintf(out, "Endpoint: %s\n", result.Endpoint)
	fmt.Fprintf(out, "Method: %s\n", result.Method)
	fmt.Fprintf(out, "Contract Valid: %v\n", result.Valid)
	fmt.Fprintln(out)
	for _, field := range result.Fields {
		if field.Matched {
			fmt.Fprintf(out, "  [OK]   %s: %s\n", field.Field, field.Expected)
			continue
		}
		fmt.Fprintf(out, "  [FAIL] %s: expected %s, got %s\n", field.Field, field.Expected, field.Actual)
	}
}

func renderOutcome(out io.Writer, label string, outcome domain.ProbeOutcome, showBody bool) {
	fmt.Fprintf(out, "%s: %s\n", label, outcome.URL)
	fmt.Fprintf(out, "  Status: %s\n", describeStatus(outcome))
	fmt.Fprintf(out, "  Time: %.2fs\n", outcome.Elapsed.Seconds())
	if outcome.Error != "" {
		fmt.Fprintf(out, "  Error: %s\n", outcome.Error)
	}
	if outcome.ParseWarning != "" {
		fmt.Fprintf(out, "  Warning: %s\n", outcome.ParseWarning)
	}
	if showBody {
		renderBody(out, outcome)
	}
}

func renderBody(out io.Writer, outcome domain.ProbeOutcome) {
	if outcome.Body != nil {
		if pretty, err := json.MarshalIndent(outcome.Body, "  ", "  "); err == nil {
			fmt.Fprintf(out, "  Body:\n  %s\n", pretty)
			return
		}
	}
	if outcome.RawBody != "" {
		fmt.Fprintf(out, "  Body (raw): %s\n", outcome.RawBody)
	}
}

func describeStatus(outcome domain.ProbeOutcome) string {
	if !outcome.HasStatus() {
		if outcome.Failure != "" {
			return fmt.Sprintf("no response (%s)", outcome.Failure)
		}
		return "no response"
	}
	return fmt.Sprintf("%d", outcome.StatusCode)
}

func banner(out io.Writer, title string) {
	line := strings.Repeat("=", 60)
	fmt.Fprintf(out, "\n%s\n%s\n%s\n", line, title, line)
}
