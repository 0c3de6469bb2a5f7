package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teamtotals/teamtotals/internal/utils"
	"github.com/teamtotals/teamtotals/pkg/fetch"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <index-url> <directory>",
	Short: "Download a competition's published result pages",
	Long: `Downloads every IJS and 6.0 result page linked from a published results index
into a local directory, ready for 'events' and 'totals'.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		proxy, _ := cmd.Flags().GetString("proxy")
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		retries, _ := cmd.Flags().GetInt("retries")

		paths, err := fetch.Mirror(cmd.Context(), args[0], args[1], fetch.Options{
			Concurrency: concurrency,
			RetryMax:    retries,
			Proxy:       proxy,
			Log:         utils.Log,
		})
		if err != nil {
			return err
		}

		for _, p := range paths {
			fmt.Println(p)
		}
		okColor.Printf("Downloaded %d result pages.\n", len(paths))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().IntP("concurrency", "c", fetch.DefaultConcurrency, "Number of pages downloaded at once")
	fetchCmd.Flags().Int("retries", fetch.DefaultRetryMax, "Retries per page")
}
