package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mrclmr/genaudio/internal/engine"
)

func newVoicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "voices",
		Short:             "Print kokoro voices and their language",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, v := range engine.KokoroVoices {
				lang, _ := engine.KokoroVoiceLanguage(v)
				_, _ = fmt.Fprintf(w, "%s\t%s\n", v, lang)
			}
			return w.Flush()
		},
	}
}
