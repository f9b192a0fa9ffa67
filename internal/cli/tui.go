package cli

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/studyquest/internal/persist"
	"github.com/sandeepkv93/studyquest/internal/store"
	"github.com/sandeepkv93/studyquest/internal/update"
)

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the focus timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
	}
}

func runTUI(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := flags.config()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// The terminal belongs to bubbletea, so the log goes to a file.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(filepath.Join(cfg.DataDir, cfg.LogFile), "studyquest")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = slog.Default()
	}

	backend, cleanup, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	writer := persist.NewWriter(backend, cfg.ResultBuffer)
	writer.Start()
	defer writer.Stop()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	st := store.New(backend,
		store.WithExecutor(writer),
		store.WithLogger(logger),
		store.WithRand(rand.New(rand.NewSource(seed))),
		store.WithStrictDefault(cfg.StrictMode),
	)

	model := update.NewModel(st, cfg, update.WithSaveResults(writer.Results()))
	program := tea.NewProgram(model, tea.WithContext(cmd.Context()), tea.WithOutput(cmd.OutOrStdout()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	writer.Flush()
	logger.Info("session closed",
		slog.Uint64("written", writer.Written()),
		slog.Uint64("failed", writer.Failed()),
		slog.Uint64("superseded", writer.Superseded()),
	)
	return nil
}
