package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/studyquest/internal/namespace"
	"github.com/sandeepkv93/studyquest/internal/storage"
)

func storeFileID(user string) string {
	return namespace.ResolveFileID(user)
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	var user, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a user's save as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cleanup, err := openUserStore(cmd, flags, user, true)
			if err != nil {
				return err
			}
			defer cleanup()

			blob, err := st.Export()
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(append(blob, '\n'))
				return err
			}
			if err := os.WriteFile(out, blob, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			writeOut(cmd.OutOrStdout(), "exported %s to %s\n", user, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "username to export")
	cmd.Flags().StringVar(&out, "out", "", "file to write instead of stdout")
	return cmd
}

func newImportCmd(flags *rootFlags) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace a user's progress with an exported save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}
			st, cleanup, err := openUserStore(cmd, flags, user, false)
			if err != nil {
				return err
			}
			defer cleanup()

			if st.ReadOnly() {
				return fmt.Errorf("the save for %q was written by a newer version", user)
			}
			if !st.Import(blob) {
				return fmt.Errorf("%s is not a readable save", args[0])
			}
			snap := st.Snapshot()
			writeOut(cmd.OutOrStdout(), "imported %s: %d XP, %d energy, %d sessions\n", user, snap.XP, snap.Energy, len(snap.Sessions))
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "username to import into")
	return cmd
}

func newResetCmd(flags *rootFlags) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe a user's progress, keeping the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cleanup, err := openUserStore(cmd, flags, user, true)
			if err != nil {
				return err
			}
			defer cleanup()

			if st.ReadOnly() {
				return fmt.Errorf("the save for %q was written by a newer version", user)
			}
			st.Reset()
			writeOut(cmd.OutOrStdout(), "reset %s\n", user)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "username to reset")
	return cmd
}

func newWhereIsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whereis <username>",
		Short: "Show where a user's progress is stored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config()
			if err != nil {
				return err
			}
			fileID := storeFileID(args[0])
			writeOut(cmd.OutOrStdout(), "file id: %s\n", fileID)
			switch cfg.StorageEngine {
			case storage.EngineSQLite:
				writeOut(cmd.OutOrStdout(), "sqlite row in: %s\n", cfg.DataDir)
			case storage.EngineMemory:
				writeOut(cmd.OutOrStdout(), "memory engine: nothing is kept on disk\n")
			default:
				files, err := storage.NewFileBackend(cfg.DataDir)
				if err != nil {
					return err
				}
				writeOut(cmd.OutOrStdout(), "path: %s\n", files.Path(fileID))
			}
			return nil
		},
	}
}
