package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/teamtotals/teamtotals/internal/config"
	"github.com/teamtotals/teamtotals/internal/utils"
	"github.com/teamtotals/teamtotals/pkg/pipeline"
	"github.com/teamtotals/teamtotals/pkg/storage"
)

func loadSettings() (config.Settings, error) {
	return config.Load(viper.GetViper())
}

// competitionDir resolves the competition argument to an absolute directory.
func competitionDir(s config.Settings, arg string) (string, error) {
	dir, err := pipeline.ResolveDirectory(arg, s.CompetitionBaseDirectory, s.HTMLRelativeDirectory)
	if err != nil {
		return "", err
	}
	return filepath.Abs(dir)
}

// openDB opens the database configured in s, creating its directory first.
func openDB(s config.Settings) (*storage.DB, string, error) {
	path, err := utils.GetAbsDBPath(s.DBPath)
	if err != nil {
		return nil, "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, "", err
	}
	db, err := storage.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening database %s: %w", path, err)
	}
	return db, path, nil
}

// ignoredEvents loads the excluded events. A database problem only costs the
// exclusions, so it is logged rather than returned.
func ignoredEvents(ctx context.Context, s config.Settings) map[string]bool {
	db, _, err := openDB(s)
	if err != nil {
		utils.Log.Warnf("Could not load ignored events: %v", err)
		return nil
	}
	defer db.Close()

	ignored, err := db.IgnoredEvents(ctx)
	if err != nil {
		utils.Log.Warnf("Could not load ignored events: %v", err)
		return nil
	}
	return ignored
}

// printStatus writes the engine's status line in the colour of its state.
func printStatus(w io.Writer, state pipeline.State, status string) {
	switch state {
	case pipeline.StateOK:
		okColor.Fprintln(w, status)
	case pipeline.StateEmpty:
		emptyColor.Fprintln(w, status)
	default:
		errorColor.Fprintln(w, status)
	}
}

// discover runs discovery and reports its status. A competition without
// events is not an error: ok is false and err nil.
func discover(ctx context.Context, s config.Settings, arg string) (d pipeline.Discovery, dir string, ok bool, err error) {
	dir, err = competitionDir(s, arg)
	if err != nil {
		printStatus(os.Stderr, pipeline.StateError, "No competition found.")
		return d, "", false, err
	}

	d, err = pipeline.Discover(ctx, dir, ignoredEvents(ctx, s), utils.Log)
	printStatus(os.Stderr, d.State, d.Status)
	if errors.Is(err, pipeline.ErrNoResults) {
		return d, dir, false, nil
	}
	if err != nil {
		return d, dir, false, err
	}
	return d, dir, true, nil
}
