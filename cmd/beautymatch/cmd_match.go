package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/beautymatch/backend/internal/domain"
	"github.com/spf13/cobra"
)

type matchFlags struct {
	product string
	profile string
	pretty  bool
}

func newMatchCmd(root *rootFlags) *cobra.Command {
	flags := &matchFlags{}
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score one product JSON file against one profile JSON file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			matcher, err := newMatcher(root)
			if err != nil {
				return err
			}

			var product domain.ProductRecord
			if err := readJSON(flags.product, &product); err != nil {
				return fmt.Errorf("read product: %w", err)
			}
			var profile domain.SkinProfile
			if err := readJSON(flags.profile, &profile); err != nil {
				return fmt.Errorf("read profile: %w", err)
			}

			result := matcher.Match(product, profile)

			enc := json.NewEncoder(cmd.OutOrStdout())
			if flags.pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(result)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.product, "product", "", "Product JSON file (required)")
	f.StringVar(&flags.profile, "profile", "", "Skin profile JSON file (required)")
	f.BoolVar(&flags.pretty, "pretty", false, "Indent the result")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
