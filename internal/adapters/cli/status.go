package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	gameQueries "github.com/andrescamacho/devempire-go/internal/application/game/queries"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/infrastructure/pidfile"
)

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the saved game",
		Long: `Show balances, staff, burnout and contracts. Prices are in "devempire shop".

While "devempire run" is active the save lags the live game by up to one
autosave interval.

Examples:
  devempire status
  devempire status --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			g, err := openGame(context.Background(), cfg, nil)
			if err != nil {
				return err
			}
			defer g.Close()

			result, err := g.mediator.Send(g.ctx, &gameQueries.GetStateQuery{})
			if err != nil {
				return fmt.Errorf("failed to get state: %w", err)
			}
			view := result.(*gameQueries.GetStateResponse).View

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}

			if pid, ok := pidfile.New(cfg.Runtime.PIDFile).Owner(); ok {
				fmt.Printf("Game loop running (PID %d), showing the last autosave\n", pid)
			}
			displayState(newPrinter(resolveLocale()), g.snapshots.Slot(), view, g.clock.Now())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the state as JSON")

	return cmd
}

// displayState formats and displays the game state
func displayState(p *message.Printer, slot string, view *gameApp.StateView, now time.Time) {
	p.Printf("\nDEVEMPIRE - save %q\n", slot)
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")
	p.Printf("LOC:               %s\n", formatLOC(p, view.Currency))
	p.Printf("LOC/s:             %s\n", formatLOC(p, view.ProductionRate))
	p.Printf("Click power:       %s\n", formatLOC(p, view.ClickPower))
	p.Printf("Lifetime LOC:      %s\n", formatLOC(p, view.LifetimeCurrency))
	p.Printf("Shares:            %s (+%s on prestige)\n", formatLOC(p, view.PrestigeCurrency), formatLOC(p, view.PrestigeGain))
	if view.TechnicalDebt > 0 {
		p.Printf("Technical debt:    %s\n", formatLOC(p, view.TechnicalDebt))
	}

	burnout := formatPercent(p, view.Burnout.Level) + " " + view.Burnout.Status
	if view.Burnout.RecoverAt != nil {
		if wait := view.Burnout.RecoverAt.Sub(now); wait > 0 {
			burnout += ", back in " + formatDuration(wait)
		} else {
			burnout += ", cooldown over"
		}
	}
	p.Printf("Burnout:           %s\n", burnout)

	office := view.Office
	p.Printf("Office:            %s (%d/%d staff)\n", office.Name, office.Personnel, office.Capacity)
	if view.Specialization != "" {
		p.Printf("Specialization:    %s\n", view.Specialization)
	}
	if view.IllegalAIActive {
		fmt.Println("Illegal AI:        ON")
	}
	if view.BugPending {
		fmt.Println("Bug:               on screen, run 'devempire squash'")
	}

	if len(view.Buildings) > 0 {
		fmt.Println("\nSTAFF")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		ids := make([]catalog.BuildingID, 0, len(view.Buildings))
		for id := range view.Buildings {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			fmt.Fprintf(w, "  %s\t%d\n", id, view.Buildings[id])
		}
		w.Flush()
	}

	fmt.Println("\nCONTRACTS")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tName\tDifficulty\tLOC Required\tReward\tStatus")
	fmt.Fprintln(w, "  ──\t────\t──────────\t────────────\t──────\t──────")
	for _, c := range view.Contracts {
		status := "offered"
		if c.Active {
			status = p.Sprintf("active %s/%s", formatLOC(p, view.ContractProgress), formatLOC(p, c.LOCRequired))
		}
		reward := formatLOC(p, c.RewardLOC) + " LOC"
		if c.RewardShares > 0 {
			reward += p.Sprintf(" + %s shares", formatLOC(p, c.RewardShares))
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Name, c.Difficulty, formatLOC(p, c.LOCRequired), reward, status)
	}
	w.Flush()
	p.Printf("  Delivered: %d\n", view.ContractsCompleted)

	fmt.Println("─────────────────────────────────────────────────────────────────────────────")
	p.Printf("Achievements: %d   Bugs squashed: %d   Inputs: %d\n",
		len(view.Achievements), view.BugsSquashed, view.ManualActions)
}
