package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/questforge/questforge/internal/daemon"
	"github.com/questforge/questforge/internal/rules"
)

func init() {
	rootCmd.AddCommand(inventoryCmd)
}

var inventoryCmd = &cobra.Command{
	Use:     "inventory",
	Aliases: []string{"inv"},
	Short:   "Show your inventory and active effects",
	RunE:    runInventory,
}

func runInventory(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	inv := d.Engine.State().Inventory
	fmt.Printf("Slots: %d / %d used\n", inv.Used(), inv.MaxSize)

	if len(inv.Items) == 0 {
		fmt.Println("Inventory is empty. Visit 'questforge shop' to stock up.")
	} else {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ITEM\tQTY")
		for id, qty := range inv.Items {
			name := id
			if it, ok := rules.ShopItemByID(id); ok {
				name = fmt.Sprintf("%s %s", it.Icon, it.Name)
			}
			fmt.Fprintf(w, "%s\t%d\n", name, qty)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	now := time.Now()
	for _, e := range inv.ActiveEffects {
		if e.Expired(now) {
			continue
		}
		if e.EndTime.IsZero() {
			fmt.Printf("Active: %s (until used)\n", e.Type)
			continue
		}
		fmt.Printf("Active: %s until %s\n", e.Type, e.EndTime.Format("Jan 2 15:04"))
	}

	for _, id := range inv.PurchasedUpgrades {
		if it, ok := rules.ShopItemByID(id); ok {
			fmt.Printf("Upgrade: %s %s\n", it.Icon, it.Name)
		}
	}
	return nil
}
