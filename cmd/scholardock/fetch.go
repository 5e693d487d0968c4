package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DBDXSS/ScholarDock/internal/download"
	"github.com/DBDXSS/ScholarDock/internal/store"
	"github.com/DBDXSS/ScholarDock/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [targets.yaml]",
	Short: "Download PDFs for a batch of articles",
	Long: `Fetch downloads PDF files for the articles listed in a targets file
written by the discovery phase, or for a single article given with --url.
Existing files are kept; articles whose file is already present are
reported successful without any network traffic.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("url", "", "download a single article by landing-page URL")
	fetchCmd.Flags().String("title", "", "title for --url (used as the filename)")
	fetchCmd.Flags().String("download-dir", "", "directory PDFs are written to (default ~/Downloads/ScholarDock_PDFs)")
	fetchCmd.Flags().Int("concurrency", 0, "maximum downloads in flight (default 3)")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	fetchCmd.Flags().Bool("browser", false, "enable browser automation fallback (requires Chrome)")
	fetchCmd.Flags().String("report", "", "write a YAML batch report to this path")
	fetchCmd.Flags().String("db", "", "history database path (default ~/.config/scholardock/history.db)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	articles, err := fetchTargets(cmd, args)
	if err != nil {
		return err
	}

	cfg := fetchConfig(cmd)
	dir := cfg.DownloadDir
	if dir == "" {
		dir = download.DefaultDownloadDir()
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	var driver download.BrowserDriver
	if useBrowser, _ := cmd.Flags().GetBool("browser"); useBrowser {
		driver = download.NewChromeDriver(cfg, os.Stdout)
	}

	f := download.NewFetcher(client, cfg, download.NewNegativeCache(), driver, os.Stdout)

	started := time.Now()
	result := f.DownloadBatch(cmd.Context(), articles, dir)

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		if err := download.WriteReportFile(reportPath, result, dir); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", reportPath)
	}

	if err := recordHistory(cmd, result, dir, started); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history not recorded: %v\n", err)
	}

	if result.HasFailures() {
		return fmt.Errorf("%d article(s) failed to download", len(result.Failed))
	}
	return nil
}

// fetchTargets resolves the article list from either the targets file
// argument or the --url flag.
func fetchTargets(cmd *cobra.Command, args []string) ([]types.Article, error) {
	rawURL, _ := cmd.Flags().GetString("url")

	if rawURL != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("provide either a targets file or --url, not both")
		}
		title, _ := cmd.Flags().GetString("title")
		if title == "" {
			return nil, fmt.Errorf("--url requires --title to name the stored file")
		}
		return []types.Article{{Title: title, URL: rawURL}}, nil
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("provide a targets file or --url")
	}
	articles, err := download.ReadTargetsFile(args[0])
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("targets file %s lists no articles", args[0])
	}
	return articles, nil
}

// fetchConfig assembles the download configuration from flags, falling
// back to config-file values and finally to built-in defaults.
func fetchConfig(cmd *cobra.Command) types.DownloadConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("download.timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency == 0 {
		concurrency = viper.GetInt("download.concurrency")
	}

	dir, _ := cmd.Flags().GetString("download-dir")
	if dir == "" {
		dir = viper.GetString("download.dir")
	}

	userAgent := viper.GetString("download.user_agent")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return types.DownloadConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: userAgent,
		},
		Concurrency:    concurrency,
		DownloadDir:    dir,
		BrowserTimeout: viper.GetDuration("download.browser_timeout"),
	}
}

// recordHistory writes the batch outcome to the history database.
func recordHistory(cmd *cobra.Command, result download.BatchResult, dir string, started time.Time) error {
	dbPath, err := historyDBPath(cmd)
	if err != nil {
		return err
	}
	s, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.RecordBatch(result, dir, started)
	return err
}
