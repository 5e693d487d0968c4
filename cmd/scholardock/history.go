package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DBDXSS/ScholarDock/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past batch download runs",
	Long: `History lists recorded batch runs from the local history database.
With --run it shows the per-article outcomes of one run instead.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 10, "maximum number of runs to list")
	historyCmd.Flags().Int64("run", 0, "show per-article outcomes for this run ID")
	historyCmd.Flags().Bool("json", false, "emit JSON instead of a table")
	historyCmd.Flags().String("db", "", "history database path (default ~/.config/scholardock/history.db)")

	rootCmd.AddCommand(historyCmd)
}

// historyDBPath resolves the history database location from the --db flag,
// the config file, or the default under the user config directory.
func historyDBPath(cmd *cobra.Command) (string, error) {
	if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
		return dbPath, nil
	}
	if dbPath := viper.GetString("history.db_path"); dbPath != "" {
		return dbPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "scholardock", "history.db"), nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath, err := historyDBPath(cmd)
	if err != nil {
		return err
	}
	s, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	asJSON, _ := cmd.Flags().GetBool("json")

	if runID, _ := cmd.Flags().GetInt64("run"); runID != 0 {
		downloads, err := s.Downloads(runID)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(downloads)
		}
		for _, d := range downloads {
			if d.Success {
				fmt.Printf("ok      %s -> %s\n", d.Title, d.PDFPath)
			} else {
				fmt.Printf("failed  %s (%s)\n", d.Title, d.Reason)
			}
		}
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := s.ListRuns(limit)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(runs)
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}
	for _, r := range runs {
		fmt.Printf("run %-4d %s  %d total, %d ok, %d failed  %s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.Total, r.Succeeded, r.Failed, r.DownloadDir)
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
