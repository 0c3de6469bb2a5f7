package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/teamtotals/teamtotals/internal/utils"
	"github.com/teamtotals/teamtotals/pkg/report"
)

// dbCmd represents the db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Interact with the teamtotals database",
}

// shellCmd opens the sqlite3 client on the standings database
var shellCmd = &cobra.Command{
	Use:   "shell [sql]",
	Short: "Open sqlite3 on the database, or run one statement",
	Long: `Without arguments, prints the table layout and opens an interactive sqlite3
session on the standings database. With arguments, runs them as one SQL
statement in column mode and exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		dbPath, err := utils.GetAbsDBPath(s.DBPath)
		if err != nil {
			return err
		}
		if _, err := os.Stat(dbPath); err != nil {
			return fmt.Errorf("no standings database at %s (run totals --save first)", dbPath)
		}
		client, err := exec.LookPath("sqlite3")
		if err != nil {
			return fmt.Errorf("db shell needs the sqlite3 client on PATH")
		}

		if len(args) > 0 {
			return sqlite(cmd, client, dbPath, "-header", "-column", strings.Join(args, " "))
		}
		if err := sqlite(cmd, client, dbPath, ".tables"); err != nil {
			utils.Log.Warnf("Could not list tables: %v", err)
		}
		utils.Log.Info("Starting sqlite3, Ctrl+D to exit")
		return sqlite(cmd, client, dbPath)
	},
}

func sqlite(cmd *cobra.Command, client, dbPath string, args ...string) error {
	c := exec.CommandContext(cmd.Context(), client, append([]string{dbPath}, args...)...)
	c.Stdin = os.Stdin
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()
	return c.Run()
}

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved standings, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		db, _, err := openDB(s)
		if err != nil {
			return err
		}
		defer db.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := db.ListRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No saved standings.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "RUN\tDATE\tCLUBS\tCOMPETITION\tSTATUS")
		for _, r := range runs {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Clubs, r.Directory, r.Status)
		}
		return w.Flush()
	},
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <run>",
	Short: "Print the standings of a saved run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}
		s, err := loadSettings()
		if err != nil {
			return err
		}
		db, _, err := openDB(s)
		if err != nil {
			return err
		}
		defer db.Close()

		clubs, err := db.RunStandings(cmd.Context(), id)
		if err != nil {
			return err
		}
		return report.WriteText(os.Stdout, clubs)
	},
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(shellCmd)
	dbCmd.AddCommand(historyCmd)
	dbCmd.AddCommand(showCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Number of runs to list")
}
