package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/beautymatch/backend/internal/infrastructure/reference"
	"github.com/spf13/cobra"
)

func newTablesCmd(root *rootFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Print the effective reference tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			matcher, err := newMatcher(root)
			if err != nil {
				return err
			}
			tables := matcher.Tables()

			out := cmd.OutOrStdout()
			switch format {
			case "yaml":
				data, err := reference.Marshal(tables)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(tables)
			default:
				return fmt.Errorf("unknown format %q (want yaml or json)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml or json")
	return cmd
}

func newVerdictsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verdicts",
		Short: "Print the verdict band table in effect",
		RunE: func(cmd *cobra.Command, _ []string) error {
			matcher, err := newMatcher(&rootFlags{})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VERDICT\tMIN SCORE\tCONFIDENCE DELTA\tCONFIDENCE FLOOR")
			for _, b := range matcher.Policy().Bands {
				fmt.Fprintf(w, "%s\t%d\t%+d\t%d\n", b.Verdict, b.MinScore, b.ConfidenceDelta, b.ConfidenceFloor)
			}
			return w.Flush()
		},
	}
}
