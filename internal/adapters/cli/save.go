package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/devempire-go/internal/adapters/persistence"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
	"github.com/andrescamacho/devempire-go/internal/infrastructure/database"
)

// NewSaveCommand creates the save command with subcommands
func NewSaveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Manage save slots",
		Long: `Inspect, export, import and delete save slots.

Saves are compressed JSON documents checksummed on write. Import also reads
saves exported from the original browser game.

Examples:
  devempire save info
  devempire save export > backup.json
  devempire save import backup.json --slot restored
  devempire save delete --slot old --yes`,
	}

	cmd.AddCommand(newSaveInfoCommand())
	cmd.AddCommand(newSaveExportCommand())
	cmd.AddCommand(newSaveImportCommand())
	cmd.AddCommand(newSaveDeleteCommand())

	return cmd
}

// withSnapshots opens the database and runs fn against the selected slot
func withSnapshots(fn func(ctx context.Context, repo *persistence.GormSnapshotRepository) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	return fn(context.Background(), persistence.NewGormSnapshotRepository(db, resolveSlot(cfg), shared.NewRealClock()))
}

func newSaveInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Describe the stored save",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSnapshots(func(ctx context.Context, repo *persistence.GormSnapshotRepository) error {
				info, err := repo.Info(ctx)
				if errors.Is(err, game.ErrNoSnapshot) {
					fmt.Printf("Slot %q is empty\n", repo.Slot())
					return nil
				}
				if err != nil {
					return err
				}

				fmt.Printf("Slot:      %s\n", info.Slot)
				fmt.Printf("Format:    v%d\n", info.FormatVersion)
				fmt.Printf("Size:      %d bytes compressed\n", info.SizeBytes)
				fmt.Printf("Checksum:  %s\n", info.Checksum)
				fmt.Printf("Saved at:  %s\n", info.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
				return nil
			})
		},
	}
}

func newSaveExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the save as plain JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSnapshots(func(ctx context.Context, repo *persistence.GormSnapshotRepository) error {
				st, err := repo.Load(ctx)
				if err != nil {
					return fmt.Errorf("failed to load slot %q: %w", repo.Slot(), err)
				}

				doc, err := persistence.EncodeDocument(st)
				if err != nil {
					return err
				}

				if output == "" {
					_, err = os.Stdout.Write(append(doc, '\n'))
					return err
				}
				if err := os.WriteFile(output, doc, 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", output, err)
				}
				fmt.Printf("✓ Slot %q exported to %s\n", repo.Slot(), output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func newSaveImportCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load a JSON save into the slot",
		Long: `Load a JSON save into the selected slot. Both exported saves and the
original browser game's localStorage dump are accepted. The imported state is
repaired against the current catalog before it is stored.

Examples:
  devempire save import backup.json
  devempire save import devempire-storage.json --slot legacy --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := ensureLoopStopped(cfg); err != nil {
				return err
			}
			engine, err := newEngine(&cfg.Game)
			if err != nil {
				return err
			}

			return withSnapshots(func(ctx context.Context, repo *persistence.GormSnapshotRepository) error {
				if _, err := repo.Info(ctx); err == nil && !force {
					return fmt.Errorf("slot %q already holds a save; pass --force to overwrite it", repo.Slot())
				}

				st, err := persistence.DecodeDocument(raw, shared.NewRealClock().Now())
				if err != nil {
					return fmt.Errorf("failed to decode %s: %w", args[0], err)
				}
				engine.Repair(st)

				if err := repo.Save(ctx, st); err != nil {
					return err
				}

				p := newPrinter(resolveLocale())
				p.Printf("✓ Imported into slot %q\n", repo.Slot())
				p.Printf("  LOC:    %s\n", formatLOC(p, st.Currency))
				p.Printf("  LOC/s:  %s\n", formatLOC(p, st.ProductionRate))
				p.Printf("  Staff:  %d\n", st.Personnel())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing save")

	return cmd
}

func newSaveDeleteCommand() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the save in the slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("deleting a save cannot be undone; pass --yes to confirm")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := ensureLoopStopped(cfg); err != nil {
				return err
			}

			return withSnapshots(func(ctx context.Context, repo *persistence.GormSnapshotRepository) error {
				if err := repo.Delete(ctx); err != nil {
					return err
				}
				fmt.Printf("✓ Slot %q deleted\n", repo.Slot())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&confirm, "yes", false, "Confirm the deletion")

	return cmd
}
