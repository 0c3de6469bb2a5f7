package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// eventsCmd represents the events command
var eventsCmd = &cobra.Command{
	Use:   "events <competition>",
	Short: "List the events of a competition",
	Long: `Lists the events found in a competition directory, in competition order.
The numbers in the first column can be passed to "totals --exclude".
With competition_base_directory configured, the competition can be given by name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}

		d, _, ok, err := discover(cmd.Context(), s, args[0])
		if err != nil || !ok {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "#\tFORMAT\tINCLUDED\tEVENT\tFILE")
		for i, e := range d.Events {
			included := "yes"
			if !e.Included {
				included = "no"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, e.Format, included, e.Name, filepath.Base(e.SourcePath))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}
