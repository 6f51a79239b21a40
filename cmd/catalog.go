package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/chance/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the experiments",
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, _ := cmd.Flags().GetBool("answers")
		printCatalog(cmd.OutOrStdout(), catalog.Default(), answers)
		return nil
	},
}

func init() {
	catalogCmd.Flags().Bool("answers", false, "Show the correct classification for each experiment")
}

var classificationColors = map[catalog.Classification]*color.Color{
	catalog.Impossible: color.New(color.FgRed, color.Bold),
	catalog.Possible:   color.New(color.FgYellow, color.Bold),
	catalog.Certain:    color.New(color.FgGreen, color.Bold),
}

func printCatalog(w io.Writer, cat *catalog.Catalog, answers bool) {
	title := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.FgHiBlack)

	for i, item := range cat.Items() {
		title.Fprintf(w, "%2d. %s\n", i+1, item.Title)
		fmt.Fprintf(w, "    %s\n", item.Description)
		if len(item.Visual) > 0 {
			dim.Fprintf(w, "    %s\n", strings.Join(item.Visual, " "))
		}
		fmt.Fprintf(w, "    Outcome: %s\n", item.Outcome)
		if answers {
			fmt.Fprint(w, "    Answer:  ")
			classificationColors[item.Correct].Fprintln(w, item.Correct.DisplayName())
		}
	}
}
