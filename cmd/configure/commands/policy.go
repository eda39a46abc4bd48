package commands

import (
	"fmt"
	"net/http"

	"github.com/farmsight/farmsight-api/internal/config"
	"github.com/farmsight/farmsight-api/internal/origin"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewPolicyCmd creates the policy command with show and check subcommands.
func NewPolicyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect the origin authorization policy",
		Long:  "Show the effective origin policy or dry-run it against an origin, using the same CORS_ORIGIN parsing as the server.",
	}
	cmd.AddCommand(newPolicyShowCmd())
	cmd.AddCommand(newPolicyCheckCmd())
	return cmd
}

type policyDoc struct {
	Mode          string   `yaml:"mode"`
	Origins       []string `yaml:"origins,omitempty"`
	Methods       []string `yaml:"methods"`
	Headers       []string `yaml:"headers"`
	MaxAgeSeconds int      `yaml:"max_age_seconds"`
}

// loadPolicy builds the policy the way the server does: from an explicit
// override when given, from CORS_ORIGIN otherwise.
func loadPolicy(override string) (*origin.Policy, error) {
	if override != "" {
		return origin.ParsePolicy(override), nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return origin.ParsePolicy(cfg.CORSOrigin), nil
}

func newPolicyShowCmd() *cobra.Command {
	var corsOrigin string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective origin policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPolicy(corsOrigin)
			if err != nil {
				return err
			}
			doc := policyDoc{
				Mode:          p.Mode().String(),
				Origins:       p.Origins(),
				Methods:       origin.Methods(),
				Headers:       origin.RequestHeaders(),
				MaxAgeSeconds: origin.MaxAgeSeconds,
			}
			out, err := yaml.Marshal(doc)
			if err != nil {
				return fmt.Errorf("marshal policy: %w", err)
			}
			fmt.Print(string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&corsOrigin, "cors-origin", "", "Override the CORS_ORIGIN value instead of reading the environment")
	return cmd
}

func newPolicyCheckCmd() *cobra.Command {
	var reqOrigin string
	var method string
	var corsOrigin string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Dry-run the resolver against an origin",
		Long:  "Evaluate the origin authorization decision for a given origin. Exits non-zero when the origin would not be granted, so it can gate deploy smoke checks.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if reqOrigin == "" {
				return fmt.Errorf("--origin is required")
			}
			p, err := loadPolicy(corsOrigin)
			if err != nil {
				return err
			}
			d := origin.Resolve(reqOrigin, p)
			fmt.Printf("mode: %s\n", p.Mode())
			fmt.Printf("allow: %v\n", d.Allow)
			if d.EchoOrigin != "" {
				fmt.Printf("echo_origin: %s\n", d.EchoOrigin)
			}
			if method == http.MethodOptions {
				fmt.Println("preflight: answered with 204, not forwarded")
			}
			if !d.Allow {
				return fmt.Errorf("origin %q is not granted by the current policy", reqOrigin)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&reqOrigin, "origin", "", "Origin to check, e.g. https://app.farmsight.io (required)")
	cmd.Flags().StringVar(&method, "method", http.MethodGet, "Request method")
	cmd.Flags().StringVar(&corsOrigin, "cors-origin", "", "Override the CORS_ORIGIN value instead of reading the environment")
	return cmd
}
