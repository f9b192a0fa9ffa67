package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/studyquest/internal/storage"
	"github.com/sandeepkv93/studyquest/internal/store"
	"github.com/sandeepkv93/studyquest/internal/update"
)

const Version = "0.1.0"

type rootFlags struct {
	dataDir string
	engine  string
	envFile string
}

func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "studyquest",
		Short:         "StudyQuest: a focus timer that pays out in XP, energy and artifacts",
		Long:          "StudyQuest is a local-first terminal focus timer with tasks, habits, a reward shop, ranks and a museum of dug-up artifacts.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	cmd.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "directory holding saves (default from STUDYQUEST_DATA_DIR)")
	cmd.PersistentFlags().StringVar(&flags.engine, "engine", "", "storage engine: file, sqlite or memory")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	cmd.AddCommand(
		newTUICmd(flags),
		newExportCmd(flags),
		newImportCmd(flags),
		newResetCmd(flags),
		newRankCmd(),
		newStoryCmd(),
		newWhereIsCmd(flags),
	)
	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "studyquest: "+err.Error())
		os.Exit(1)
	}
}

// config layers flags over the environment over the defaults.
func (f *rootFlags) config() (update.RuntimeConfig, error) {
	if err := update.LoadDotEnv(f.envFile); err != nil {
		return update.RuntimeConfig{}, fmt.Errorf("load %s: %w", f.envFile, err)
	}
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())
	if strings.TrimSpace(f.dataDir) != "" {
		cfg.DataDir = f.dataDir
	}
	if strings.TrimSpace(f.engine) != "" {
		cfg.StorageEngine = strings.ToLower(f.engine)
	}
	return cfg, nil
}

func openBackend(cfg update.RuntimeConfig) (storage.Backend, func(), error) {
	backend, closer, err := storage.NewByEngine(cfg.StorageEngine, cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	return backend, func() { _ = closer.Close() }, nil
}

// openUserStore signs user in against a synchronous store so every change is
// on disk before the command returns.
func openUserStore(cmd *cobra.Command, flags *rootFlags, user string, mustExist bool) (*store.Store, func(), error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, nil, fmt.Errorf("--user is required")
	}
	cfg, err := flags.config()
	if err != nil {
		return nil, nil, err
	}
	backend, cleanup, err := openBackend(cfg)
	if err != nil {
		return nil, nil, err
	}
	if mustExist {
		if _, err := backend.Load(context.Background(), storeFileID(user)); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("no save for %q: %w", user, err)
		}
	}
	st := store.New(backend,
		store.WithLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))),
		store.WithStrictDefault(cfg.StrictMode),
	)
	st.Login(cmd.Context(), user)
	return st, cleanup, nil
}

func writeOut(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
