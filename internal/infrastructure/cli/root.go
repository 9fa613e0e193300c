package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/springprobe/internal/app"
	"github.com/doeshing/springprobe/internal/application/check"
	"github.com/doeshing/springprobe/internal/domain"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	checkCmd := newCheckCommand(container)

	root := &cobra.Command{
		Use:   "springprobe",
		Short: "Health-check client for Spring Boot services",
		Long:  "springprobe queries Spring Boot actuator endpoints, classifies deployment status, and validates JSON response contracts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(checkCmd)
	root.AddCommand(newAPICommand(container))
	root.AddCommand(newContractCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newConfigCommand(container))
	root.AddCommand(newVersionCommand())
	return root, nil
}

// DefaultToCheck rewrites raw command-line arguments so that invocations
// naming no subcommand run `check`. Flag-only invocations like
// `springprobe --url X --module Y` become `check --url X --module Y`;
// explicit subcommands and bare help requests pass through untouched.
func DefaultToCheck(root *cobra.Command, args []string) []string {
	if len(args) == 0 {
		return args
	}
	switch args[0] {
	case "help", "-h", "--help", "completion":
		return args
	}
	if cmd, _, err := root.Find(args); err == nil && cmd != root {
		return args
	}
	return append([]string{"check"}, args...)
}

func newCheckCommand(container *app.Container) *cobra.Command {
	cfg := container.Config
	var (
		baseURL        string
		module         string
		timeout        time.Duration
		insecure       bool
		apiEndpoint    string
		apiMethod      string
		apiData        string
		expectedStatus int
		showBodies     bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check deployment status via the actuator endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			result, err := container.CheckService.CheckDeploymentStatus(cmd.Context(), check.DeploymentRequest{
				BaseURL:   baseURL,
				Module:    module,
				Timeout:   timeout,
				VerifyTLS: !insecure,
			})
			if err != nil {
				return err
			}
			RenderModuleResult(out, result, showBodies)

			if apiEndpoint != "" {
				body, err := parseJSONData(apiData)
				if err != nil {
					return err
				}
				apiResult, err := container.CheckService.CheckCustomAPI(cmd.Context(), check.APIRequest{
					BaseURL:        baseURL,
					Endpoint:       apiEndpoint,
					Method:         apiMethod,
					Body:           body,
					ExpectedStatus: expectedStatus,
					Timeout:        timeout,
					VerifyTLS:      !insecure,
				})
				if err != nil {
					return err
				}
				RenderAPIResult(out, apiResult, showBodies)
			}

			// Exit code contract: 0 only when HEALTHY.
			if result.Status != domain.StatusHealthy {
				return fmt.Errorf("deployment status: %s", result.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", cfg.Defaults.BaseURL, "Base URL of the Spring Boot service (required)")
	cmd.Flags().StringVar(&module, "module", cfg.Defaults.Module, "Name of the module to check (required)")
	cmd.Flags().DurationVar(&timeout, "timeout", cfg.Timeout(), "Per-probe request timeout")
	cmd.Flags().BoolVar(&insecure, "insecure", cfg.Defaults.InsecureSkipVerify, "Skip TLS certificate verification")
	cmd.Flags().StringVar(&apiEndpoint, "api-endpoint", "", "Additional API endpoint to check")
	cmd.Flags().StringVar(&apiMethod, "api-method", "GET", "HTTP method for the additional API check")
	cmd.Flags().StringVar(&apiData, "api-data", "", "JSON request body for the additional API check")
	cmd.Flags().IntVar(&expectedStatus, "expected-status", cfg.ExpectedStatus(), "Expected status code for the additional API check")
	cmd.Flags().BoolVarP(&showBodies, "verbose", "v", false, "Include response bodies in the summary")

	return cmd
}

func parseJSONData(data string) (any, error) {
	if data == "" {
		return nil, nil
	}
	var body any
	if err := json.Unmarshal([]byte(data), &body); err != nil {
		return nil, fmt.Errorf("invalid JSON data: %w", err)
	}
	return body, nil
}
