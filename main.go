package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"litedb/pkg/catalog"
	"litedb/pkg/catalog/sqliteimport"
	"litedb/pkg/database"
	"litedb/pkg/logging"
	"litedb/pkg/ui"
)

type Configuration struct {
	DatabaseName string
	SchemaFile   string
	ImportFile   string
	CheckMode    bool
	Jobs         int
	LogLevel     string
	LogFile      string
	LogFormat    string
}

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))
)

func main() {
	config := parseArguments()

	if err := initLogging(config); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(2)
	}
	defer logging.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	if config.CheckMode {
		err = runCheck(ctx, config, flag.Args())
	} else {
		err = startInteractiveMode(ctx, config)
	}
	if err != nil {
		logging.WithError(err).Error("litedb failed")
		fmt.Fprintln(os.Stderr, failStyle.Render("error: ")+err.Error())
		stop()
		logging.Close()
		os.Exit(1)
	}
}

// parseArguments processes command-line flags
func parseArguments() Configuration {
	var config Configuration

	flag.StringVar(&config.DatabaseName, "db", "litedb", "Session name")
	flag.StringVar(&config.SchemaFile, "schema", "", "SQL script of CREATE TABLE statements to load first")
	flag.StringVar(&config.ImportFile, "import", "", "SQLite database file whose table definitions seed the catalog")
	flag.BoolVar(&config.CheckMode, "check", false, "Validate the SQL files given as arguments and exit")
	flag.IntVar(&config.Jobs, "jobs", runtime.NumCPU(), "Files checked concurrently in -check mode")
	flag.StringVar(&config.LogLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	flag.StringVar(&config.LogFile, "log-file", "", "Log file path (default stderr)")
	flag.StringVar(&config.LogFormat, "log-format", "text", "Log format: text or json")

	flag.Parse()

	return config
}

func initLogging(config Configuration) error {
	level, err := logging.ParseLevel(config.LogLevel)
	if err != nil {
		return err
	}
	return logging.Init(logging.Config{
		Level:      level,
		OutputPath: config.LogFile,
		Format:     config.LogFormat,
	})
}

// openSession builds a session with the configured SQLite import and schema
// script applied.
func openSession(ctx context.Context, config Configuration, logger *slog.Logger) (*database.Database, error) {
	cm := catalog.NewCatalogManager(logger)

	if config.ImportFile != "" {
		tables, err := sqliteimport.Import(ctx, config.ImportFile, cm)
		if err != nil {
			return nil, err
		}
		for _, name := range tables {
			logging.WithTable(name).Debug("imported table", "source", config.ImportFile)
		}
	}

	db := database.NewDatabaseWithCatalog(config.DatabaseName, cm, logger)
	if config.SchemaFile != "" {
		if _, err := db.ExecuteFile(config.SchemaFile); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

// runCheck validates each file in its own session and prints a report.
func runCheck(ctx context.Context, config Configuration, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("-check needs at least one SQL file")
	}

	logger := logging.WithComponent("check")
	newDB := func() (*database.Database, error) {
		return openSession(ctx, config, logger)
	}

	reports, err := database.CheckFiles(ctx, paths, newDB, config.Jobs)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range reports {
		if r.Err != nil {
			failed++
			fmt.Printf("%s %s: %v\n", failStyle.Render("FAIL"), pathStyle.Render(r.Path), r.Err)
			continue
		}
		fmt.Printf("%s %s: %d statement(s)\n", okStyle.Render(" OK "), pathStyle.Render(r.Path), r.Validated)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed validation", failed, len(reports))
	}
	return nil
}

// startInteractiveMode launches the Bubble Tea UI
func startInteractiveMode(ctx context.Context, config Configuration) error {
	db, err := openSession(ctx, config, logging.WithComponent("session"))
	if err != nil {
		return err
	}
	defer db.Close()

	p := tea.NewProgram(
		ui.NewModel(db),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
