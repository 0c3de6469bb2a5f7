package cmd

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/teamtotals/teamtotals/internal/server"
	"github.com/teamtotals/teamtotals/internal/utils"
	"github.com/teamtotals/teamtotals/pkg/pointschart"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve <competition>",
	Short: "Serve live standings over HTTP",
	Long: `Serves the standings page of a competition while it runs. Every request
recalculates from the result pages, and the page reloads itself every 30 seconds.
Also serves /chart.png, /api/standings and /api/events.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		dir, err := competitionDir(s, args[0])
		if err != nil {
			return err
		}

		var chart map[uint64][]float64
		if s.PointsChartPath != "" {
			if chart, err = pointschart.Read(s.PointsChartPath); err != nil {
				return err
			}
		}
		opts, err := s.Options(chart, utils.Log)
		if err != nil {
			return err
		}

		db, dbPath, err := openDB(s)
		if err != nil {
			return err
		}
		defer db.Close()

		title, _ := cmd.Flags().GetString("title")
		if title == "" {
			title = filepath.Base(dir)
		}
		user, _ := cmd.Flags().GetString("user")
		pass, _ := cmd.Flags().GetString("pass")
		addr, _ := cmd.Flags().GetString("addr")

		srv := server.New(dir, title, opts, db, user, pass)
		srv.ChartTop, _ = cmd.Flags().GetInt("chart-top")
		srv.Lock = func(ctx context.Context, fn func() error) error {
			return utils.WithDBLock(ctx, dbPath, fn)
		}
		return srv.Start(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().StringP("title", "t", "", "Competition title shown on the page (default is the directory name)")
	serveCmd.Flags().Int("chart-top", 10, "Number of clubs in the chart")
	serveCmd.Flags().String("user", "", "Username for basic auth (empty disables auth)")
	serveCmd.Flags().String("pass", "", "Password for basic auth")
}
