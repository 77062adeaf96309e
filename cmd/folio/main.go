package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/folio/internal/copier"
	"github.com/nikbrunner/folio/internal/culler"
	"github.com/nikbrunner/folio/internal/exporter"
	"github.com/nikbrunner/folio/internal/importer"
	"github.com/nikbrunner/folio/internal/logging"
	"github.com/nikbrunner/folio/internal/model"
	"github.com/nikbrunner/folio/internal/picker"
	"github.com/nikbrunner/folio/internal/search"
	"github.com/nikbrunner/folio/internal/site"
	"github.com/nikbrunner/folio/internal/storage"
	"github.com/nikbrunner/folio/internal/transition"
	"github.com/nikbrunner/folio/internal/tui"
)

var (
	configPath   string
	verbose      bool
	startRoute   string
	importBase   string
	exportFormat string

	log = logrus.New()

	rootCmd = &cobra.Command{
		Use:   "folio",
		Short: "A terminal portfolio viewer",
		Long:  "folio shows a portfolio of projects as a paged card gallery, with about and contact pages.",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, args []string) error { return runTUI() },
	}

	searchCmd = &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search projects and open the selected one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuickSearch(strings.Join(args, " "))
		},
	}

	importCmd = &cobra.Command{
		Use:   "import <file.html>",
		Short: "Import projects from a portfolio HTML page",
		Args:  cobra.ExactArgs(1),
		RunE:  func(cmd *cobra.Command, args []string) error { return runImport(args[0]) },
	}

	syncCmd = &cobra.Command{
		Use:   "sync [site-url]",
		Short: "Import projects and contact details from the live site",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var url string
			if len(args) == 1 {
				url = args[0]
			}
			return runSync(cmd.Context(), url)
		},
	}

	exportCmd = &cobra.Command{
		Use:   "export [path]",
		Short: "Export the catalog as a static page or a spreadsheet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runExport(path, exportFormat)
		},
	}

	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Check project links for dead or unreachable URLs",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, args []string) error { return runCheck(cmd.Context()) },
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	configPathCmd = &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
)

func init() {
	// Route logs to stderr to avoid polluting stdout.
	log.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/folio/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringVar(&startRoute, "route", "/", "page to open first: /, /about or /contact")
	importCmd.Flags().StringVar(&importBase, "base", "", "base URL for relative project links")
	exportCmd.Flags().StringVar(&exportFormat, "format", "html", "export format: html or xlsx")

	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(searchCmd, importCmd, syncCmd, exportCmd, checkCmd, configCmd)
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return storage.DefaultConfigFilePath()
}

// setup loads the config and points the logger at the right sink.
func setup(interactive bool) (*storage.Config, io.Closer, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, nil, fmt.Errorf("getting config path: %w", err)
	}
	cfg, err := storage.LoadConfig(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	closer, err := logging.Setup(log, logging.Options{
		Level:       cfg.Log.Level,
		File:        cfg.Log.File,
		Verbose:     verbose,
		Interactive: interactive,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, closer, nil
}

// openCatalog opens the configured backend and loads the catalog.
func openCatalog(cfg *storage.Config) (storage.Storage, *model.Catalog, error) {
	store, err := storage.Open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("opening storage: %w", err)
	}
	catalog, err := store.Load()
	if err != nil {
		_ = storage.Close(store)
		return nil, nil, fmt.Errorf("loading catalog: %w", err)
	}
	return store, catalog, nil
}

// saveCatalog validates catalog before writing it back.
func saveCatalog(store storage.Storage, catalog *model.Catalog) error {
	if err := catalog.Validate(); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	if err := store.Save(catalog); err != nil {
		return fmt.Errorf("saving catalog: %w", err)
	}
	return nil
}

// runTUI runs the full interactive TUI.
func runTUI() error {
	route, err := transition.Parse(startRoute)
	if err != nil {
		return fmt.Errorf("--route %q: %w", startRoute, err)
	}

	cfg, closer, err := setup(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	store, catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer storage.Close(store)

	params := tui.AppParams{
		Catalog: catalog,
		Config:  cfg,
		Copier:  copier.New(copier.Params{}),
		Opener:  tui.OpenURL,
		Route:   route,
		Logger:  log,
	}
	if cfg.SiteURL != "" {
		client, err := site.NewClient(cfg.SiteURL)
		if err != nil {
			log.WithError(err).Warn("site url ignored")
		} else {
			params.Site = client
		}
	}

	p := tea.NewProgram(tui.NewApp(params), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running app: %w", err)
	}
	return nil
}

// runQuickSearch performs a fuzzy search and opens the selected project.
func runQuickSearch(query string) error {
	cfg, closer, err := setup(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	store, catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer storage.Close(store)

	results := search.FuzzySearchProjects(catalog, query)
	if len(results) == 0 {
		fmt.Printf("No projects found for '%s'\n", query)
		return nil
	}

	var selected *model.Project
	if len(results) == 1 {
		selected = results[0].Project
		fmt.Printf("Opening: %s\n", selected.Title)
	} else {
		program := tea.NewProgram(picker.New(results, query))
		finalModel, err := program.Run()
		if err != nil {
			return fmt.Errorf("running picker: %w", err)
		}
		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			return nil
		}
		selected = finalPicker.SelectedProject()
	}
	if selected == nil {
		return nil
	}

	link := selected.Link()
	if link == "" {
		fmt.Printf("%s has no link\n", selected.Title)
		return nil
	}
	return tui.OpenURL(link)
}

// runImport handles the import subcommand.
func runImport(filePath string) error {
	cfg, closer, err := setup(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	projects, err := importer.ParseProjects(bytes.NewReader(data), importBase)
	if err != nil {
		return fmt.Errorf("parsing HTML: %w", err)
	}
	profile, err := importer.ParseContact(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parsing HTML: %w", err)
	}

	store, catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer storage.Close(store)

	added, skipped := catalog.ImportMerge(projects)
	catalog.MergeProfile(profile)
	if err := saveCatalog(store, catalog); err != nil {
		return err
	}

	fmt.Printf("Imported %d projects", added)
	if skipped > 0 {
		fmt.Printf(" (%d duplicates skipped)", skipped)
	}
	fmt.Println()
	return nil
}

// runSync imports projects, contact details and about text from the live site.
// The site URL is remembered in the config on first use.
func runSync(ctx context.Context, url string) error {
	cfg, closer, err := setup(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	if url == "" {
		url = cfg.SiteURL
	}
	if url == "" {
		return errors.New("no site url: pass one or set site_url in the config")
	}
	client, err := site.NewClient(url)
	if err != nil {
		return err
	}

	projectsHTML, err := client.FetchHTML(ctx, transition.Projects)
	if err != nil {
		return fmt.Errorf("fetching projects: %w", err)
	}
	projects, err := importer.ParseProjects(bytes.NewReader(projectsHTML), client.BaseURL())
	if err != nil {
		return fmt.Errorf("parsing projects: %w", err)
	}

	var profile model.Profile
	if contactHTML, err := client.FetchHTML(ctx, transition.Contact); err != nil {
		log.WithError(err).Warn("contact page skipped")
	} else if profile, err = importer.ParseContact(bytes.NewReader(contactHTML)); err != nil {
		log.WithError(err).Warn("contact page unreadable")
	}
	if about, err := fetchAboutText(ctx, client); err != nil {
		log.WithError(err).Warn("about page skipped")
	} else {
		profile.About = about
	}

	store, catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer storage.Close(store)

	added, skipped := catalog.ImportMerge(projects)
	catalog.MergeProfile(profile)
	if err := saveCatalog(store, catalog); err != nil {
		return err
	}

	if cfg.SiteURL == "" {
		cfg.SiteURL = client.BaseURL()
		if path, err := resolveConfigPath(); err == nil {
			if err := storage.SaveConfig(path, cfg); err != nil {
				log.WithError(err).Warn("site url not saved")
			}
		}
	}

	fmt.Printf("Synced %d projects from %s", added, client.BaseURL())
	if skipped > 0 {
		fmt.Printf(" (%d already present)", skipped)
	}
	fmt.Println()
	return nil
}

func fetchAboutText(ctx context.Context, client *site.Client) (string, error) {
	page, err := client.FetchPage(ctx, transition.About)
	if err != nil {
		return "", err
	}
	return page.Text()
}

// runExport handles the export subcommand.
func runExport(outputPath, format string) error {
	if format != "html" && format != "xlsx" {
		return fmt.Errorf("unknown export format %q", format)
	}

	cfg, closer, err := setup(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	if outputPath == "" {
		outputPath, err = exporter.DefaultExportPath(format)
		if err != nil {
			return fmt.Errorf("getting default export path: %w", err)
		}
	}

	store, catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer storage.Close(store)

	switch format {
	case "xlsx":
		err = exporter.ExportXLSX(catalog, outputPath)
	default:
		err = os.WriteFile(outputPath, []byte(exporter.ExportHTML(catalog)), 0644)
	}
	if err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	fmt.Printf("Exported %d projects to %s\n", len(catalog.Projects), outputPath)
	return nil
}

// runCheck checks every project link and prints the broken ones.
func runCheck(ctx context.Context) error {
	cfg, closer, err := setup(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	store, catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer storage.Close(store)

	results := culler.CheckProjects(ctx, catalog.Ordered(), culler.Options{
		Concurrency:    cfg.Check.Concurrency,
		Timeout:        time.Duration(cfg.Check.TimeoutSeconds) * time.Second,
		ExcludeDomains: cfg.Check.ExcludeDomains,
		OnProgress: func(completed, total int) {
			fmt.Fprintf(os.Stderr, "\rChecking %d/%d", completed, total)
		},
	})
	if len(results) > 0 {
		fmt.Fprintln(os.Stderr)
	}

	for _, r := range results {
		if r.Status == culler.Healthy {
			continue
		}
		detail := r.Error
		if r.StatusCode != 0 {
			detail = fmt.Sprintf("HTTP %d", r.StatusCode)
		}
		fmt.Printf("%-12s %-5s %s  %s (%s)\n", r.Status, r.Kind, r.Project.Title, r.URL, detail)
	}

	healthy, dead, unreachable := culler.Summary(results)
	fmt.Printf("%d ok, %d dead, %d unreachable\n", healthy, dead, unreachable)
	return nil
}
