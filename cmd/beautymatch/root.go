// beautymatch scores product pages against skin profiles offline.
//
// Usage:
//
//	beautymatch match --product=<product.json> --profile=<profile.json> [--pretty]
//	beautymatch tables [--format=yaml|json]
//	beautymatch verdicts
package main

import (
	"fmt"
	"os"

	"github.com/beautymatch/backend/config"
	"github.com/beautymatch/backend/internal/infrastructure/reference"
	"github.com/beautymatch/backend/internal/usecase"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

type rootFlags struct {
	reference string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "beautymatch",
		Short: "Score cosmetic products against a skin profile",
		Long: "beautymatch runs the BeautyMatch engine on product and profile JSON files\n" +
			"and prints the reference data it scores against.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}
	root.PersistentFlags().StringVar(&flags.reference, "reference", "",
		"Reference tables YAML (default: embedded tables, or BEAUTYMATCH_REFERENCE_PATH)")

	root.AddCommand(newMatchCmd(flags))
	root.AddCommand(newTablesCmd(flags))
	root.AddCommand(newVerdictsCmd())
	return root
}

// newMatcher builds the engine from configuration; --reference wins over the configured path
func newMatcher(flags *rootFlags) (*usecase.MatchingService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	path := cfg.Reference.Path
	if flags.reference != "" {
		path = flags.reference
	}
	tables, err := reference.Load(path)
	if err != nil {
		return nil, err
	}
	return usecase.NewMatchingService(tables, cfg.Matching.Policy()), nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
