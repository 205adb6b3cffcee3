package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	gameQueries "github.com/andrescamacho/devempire-go/internal/application/game/queries"
)

// NewShopCommand creates the shop command
func NewShopCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "shop",
		Short: "List everything for sale at current prices",
		Long: `List staff, upgrades, hardware, skills, stocks and the next office with
their ids and current prices. Rows marked * are affordable right now.

Examples:
  devempire shop
  devempire shop --json`,
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

			result, err := g.mediator.Send(g.ctx, &gameQueries.GetShopQuery{})
			if err != nil {
				return fmt.Errorf("failed to get shop: %w", err)
			}
			shop := result.(*gameQueries.GetShopResponse)

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(shop)
			}

			displayShop(newPrinter(resolveLocale()), shop)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the shop as JSON")

	return cmd
}

// displayShop formats and displays the shop sections
func displayShop(p *message.Printer, shop *gameQueries.GetShopResponse) {
	displayShopSection(p, "STAFF", shop.Buildings)
	displayShopSection(p, "UPGRADES", shop.Upgrades)
	displayShopSection(p, "HARDWARE", shop.Hardware)
	displayShopSection(p, "SKILLS", shop.Skills)
	if shop.Office != nil {
		displayShopSection(p, "NEXT OFFICE", []gameQueries.ShopItem{*shop.Office})
	}

	fmt.Println("\nSTOCKS")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tSymbol\tName\tPrice\tBase\tOwned")
	fmt.Fprintln(w, "  ──\t──────\t────\t─────\t────\t─────")
	for _, s := range shop.Stocks {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%d\n",
			s.ID, s.Symbol, s.Name, formatLOC(p, s.Price), formatLOC(p, s.BasePrice), s.Owned)
	}
	w.Flush()
}

func displayShopSection(p *message.Printer, title string, items []gameQueries.ShopItem) {
	fmt.Printf("\n%s\n", title)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  \tID\tName\tCost\tOwned\tEffect")
	fmt.Fprintln(w, "  \t──\t────\t────\t─────\t──────")
	for _, item := range items {
		mark := " "
		if item.Affordable {
			mark = "*"
		}
		detail := item.Detail
		if item.Requirement != "" && !item.Available && item.Owned == 0 {
			detail += " (needs " + item.Requirement + ")"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%d\t%s\n",
			mark, item.ID, item.Name, formatLOC(p, item.Cost), item.Owned, detail)
	}
	w.Flush()
}
