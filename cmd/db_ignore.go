package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/teamtotals/teamtotals/internal/utils"
)

// ignoreCmd represents the ignore command
var ignoreCmd = &cobra.Command{
	Use:   "ignore <file>...",
	Short: "Leave an event file out of every future calculation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setIgnoreStatus(cmd.Context(), args, true)
	},
}

// unignoreCmd represents the unignore command
var unignoreCmd = &cobra.Command{
	Use:   "unignore <file>...",
	Short: "Include a previously ignored event file again",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setIgnoreStatus(cmd.Context(), args, false)
	},
}

func setIgnoreStatus(ctx context.Context, files []string, ignored bool) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	db, dbPath, err := openDB(s)
	if err != nil {
		return err
	}
	defer db.Close()

	action := "Ignored"
	if !ignored {
		action = "Unignored"
	}
	return utils.WithDBLock(ctx, dbPath, func() error {
		for _, f := range files {
			path, err := filepath.Abs(f)
			if err != nil {
				return err
			}
			if err := db.SetEventIgnored(ctx, path, ignored); err != nil {
				return err
			}
			fmt.Printf("%s %s\n", action, path)
		}
		return nil
	})
}

func init() {
	dbCmd.AddCommand(ignoreCmd)
	dbCmd.AddCommand(unignoreCmd)
}
