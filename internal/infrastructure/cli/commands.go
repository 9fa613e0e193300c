package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/springprobe/internal/app"
	"github.com/doeshing/springprobe/internal/application/check"
	configapp "github.com/doeshing/springprobe/internal/application/config"
	"github.com/doeshing/springprobe/internal/domain"
	configinfra "github.com/doeshing/springprobe/internal/infrastructure/config"
	"github.com/doeshing/springprobe/internal/infrastructure/schema"
	"github.com/doeshing/springprobe/internal/version"
)

func newAPICommand(container *app.Container) *cobra.Command {
	cfg := container.Config
	var (
		baseURL        string
		endpoint       string
		method         string
		data           string
		expectedStatus int
		timeout        time.Duration
		insecure       bool
		showBodies     bool
	)

	cmd := &cobra.Command{
		Use:   "api",
		Short: "Check a single API endpoint against an expected status",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := parseJSONData(data)
			if err != nil {
				return err
			}
			result, err := container.CheckService.CheckCustomAPI(cmd.Context(), check.APIRequest{
				BaseURL:        baseURL,
				Endpoint:       endpoint,
				Method:         method,
				Body:           body,
				ExpectedStatus: expectedStatus,
				Timeout:        timeout,
				VerifyTLS:      !insecure,
			})
			if err != nil {
				return err
			}
			RenderAPIResult(cmd.OutOrStdout(), result, showBodies)
			if !result.Success {
				return fmt.Errorf("API check failed: expected %d, got %s",
					result.ExpectedStatus, describeStatus(result.Outcome))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", cfg.Defaults.BaseURL, "Base URL the endpoint is relative to")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Endpoint path or absolute URL (required)")
	cmd.Flags().StringVar(&method, "method", "GET", "HTTP method")
	cmd.Flags().StringVar(&data, "data", "", "JSON request body")
	cmd.Flags().IntVar(&expectedStatus, "expected-status", cfg.ExpectedStatus(), "Expected HTTP status code")
	cmd.Flags().DurationVar(&timeout, "timeout", cfg.Timeout(), "Request timeout")
	cmd.Flags().BoolVar(&insecure, "insecure", cfg.Defaults.InsecureSkipVerify, "Skip TLS certificate verification")
	cmd.Flags().BoolVarP(&showBodies, "verbose", "v", false, "Include the response body in the summary")
	_ = cmd.MarkFlagRequired("endpoint")
	return cmd
}

func newContractCommand(container *app.Container) *cobra.Command {
	cfg := container.Config
	var (
		baseURL    string
		endpoint   string
		method     string
		data       string
		schemaSpec string
		schemaFile string
		timeout    time.Duration
		insecure   bool
	)

	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Validate a JSON response body against a field/type schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			expected, err := loadExpectation(schemaSpec, schemaFile)
			if err != nil {
				return err
			}
			body, err := parseJSONData(data)
			if err != nil {
				return err
			}
			result, err := container.CheckService.ValidateContract(cmd.Context(), check.ContractRequest{
				APIRequest: check.APIRequest{
					BaseURL:   baseURL,
					Endpoint:  endpoint,
					Method:    method,
					Body:      body,
					Timeout:   timeout,
					VerifyTLS: !insecure,
				},
				Expected: expected,
			})
			if err != nil {
				return err
			}
			RenderContractResult(cmd.OutOrStdout(), result)
			if !result.Valid {
				return fmt.Errorf("contract validation failed for %s %s", result.Method, result.Endpoint)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", cfg.Defaults.BaseURL, "Base URL the endpoint is relative to")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Endpoint path or absolute URL (required)")
	cmd.Flags().StringVar(&method, "method", "GET", "HTTP method")
	cmd.Flags().StringVar(&data, "data", "", "JSON request body")
	cmd.Flags().StringVar(&schemaSpec, "schema", "", "Expected fields as name=type,name=type")
	cmd.Flags().StringVar(&schemaFile, "schema-file", "", "YAML file with a flat field: type mapping")
	cmd.Flags().DurationVar(&timeout, "timeout", cfg.Timeout(), "Request timeout")
	cmd.Flags().BoolVar(&insecure, "insecure", cfg.Defaults.InsecureSkipVerify, "Skip TLS certificate verification")
	_ = cmd.MarkFlagRequired("endpoint")
	return cmd
}

func loadExpectation(spec, file string) (domain.ContractExpectation, error) {
	switch {
	case spec != "" && file != "":
		return nil, fmt.Errorf("--schema and --schema-file are mutually exclusive")
	case file != "":
		return schema.LoadFile(file)
	case spec != "":
		return domain.ParseExpectation(spec)
	default:
		return nil, fmt.Errorf("either --schema or --schema-file is required")
	}
}

func newHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded deployment checks",
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistory(cmd.OutOrStdout(), container, limit, "")
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show")

	var query string
	var searchLimit int
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search checks by module, URL, or status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query = args[0]
			return listHistory(cmd.OutOrStdout(), container, searchLimit, query)
		},
	}
	searchCmd.Flags().IntVar(&searchLimit, "limit", domain.DefaultHistorySearchLimit, "Max entries to show")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.HistoryStore == nil {
				return fmt.Errorf("history is disabled in configuration")
			}
			if err := container.HistoryStore.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}

	var dest string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export checks to a JSONL file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.HistoryStore == nil {
				return fmt.Errorf("history is disabled in configuration")
			}
			if err := container.HistoryStore.ExportJSON(dest); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", dest)
			return nil
		},
	}
	exportCmd.Flags().StringVar(&dest, "out", "springprobe-history.jsonl", "Destination file")

	historyCmd.AddCommand(listCmd, searchCmd, clearCmd, exportCmd)
	return historyCmd
}

func listHistory(out io.Writer, container *app.Container, limit int, search string) error {
	if container.HistoryStore == nil {
		return fmt.Errorf("history is disabled in configuration")
	}
	records, err := container.HistoryStore.Records(limit, search)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No checks recorded yet.")
		return nil
	}
	for _, rec := range records {
		fmt.Fprintf(out, "%-8s %-20s %s (%s, health=%d info=%d, %dms)\n",
			rec.Status,
			rec.Module,
			rec.BaseURL,
			humanize.Time(rec.Timestamp),
			rec.HealthStatusCode,
			rec.InfoStatusCode,
			rec.ElapsedMS,
		)
		if rec.Error != "" {
			fmt.Fprintf(out, "         error: %s\n", rec.Error)
		}
	}
	return nil
}

func newConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect springprobe configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.OutOrStdout(), container)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show full configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.OutOrStdout(), container)
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a single configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := lookupConfigValue(container.Config, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return err
			}
			if err := configapp.Validate(cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration valid")
			return nil
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to the embedded default",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.ConfigLoader.Reset(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration reset: %s\n", container.ConfigLoader.Path())
			return nil
		},
	}

	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "Show differences from the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := container.ConfigProvider.Load(cmd.Context())
			if err != nil {
				return err
			}
			defaults, err := configinfra.DefaultConfig()
			if err != nil {
				return err
			}
			diff := cmp.Diff(defaults, current)
			if diff == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No differences from default configuration.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), diff)
			return nil
		},
	}

	configCmd.AddCommand(showCmd, getCmd, validateCmd, resetCmd, diffCmd)
	return configCmd
}

// lookupConfigValue resolves a dotted key like "defaults.timeout" against the
// YAML shape of the configuration. Sections come back re-rendered as YAML,
// scalars as plain text.
func lookupConfigValue(cfg domain.Config, key string) (string, error) {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return "", err
	}

	var node any = tree
	for _, part := range strings.Split(key, ".") {
		mapping, ok := node.(map[string]any)
		if !ok {
			return "", fmt.Errorf("unknown config key %q", key)
		}
		node, ok = mapping[part]
		if !ok {
			return "", fmt.Errorf("unknown config key %q", key)
		}
	}

	if _, ok := node.(map[string]any); ok {
		section, err := yaml.Marshal(node)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(section), "\n"), nil
	}
	return fmt.Sprintf("%v", node), nil
}

func showConfiguration(out io.Writer, container *app.Container) error {
	raw, err := yaml.Marshal(container.Config)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "# %s\n", container.ConfigLoader.Path())
	_, err = out.Write(raw)
	return err
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show springprobe version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "springprobe version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			}
			if version.BuildDate != "" {
				fmt.Fprintf(out, "Built: %s\n", version.BuildDate)
			}
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			return nil
		},
	}
}
