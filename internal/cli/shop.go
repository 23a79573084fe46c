package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/questforge/questforge/internal/daemon"
	"github.com/questforge/questforge/internal/rules"
)

func init() {
	shopCmd.AddCommand(shopBuyCmd)
	rootCmd.AddCommand(shopCmd)
}

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Browse the item shop",
	RunE:  runShop,
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy ITEM",
	Short: "Buy an item from the shop",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopBuy,
}

func runShop(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	state := d.Engine.State()
	fmt.Printf("Gold: %d\n\n", state.Character.Gold)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tOWNED\tNOTES")
	for _, it := range rules.ShopItems() {
		notes := it.Desc
		owned := ""
		if it.Permanent {
			if state.Inventory.HasUpgrade(it.ID) {
				owned = "✓"
			} else if it.Requires != "" && !state.Inventory.HasUpgrade(it.Requires) {
				notes = "requires " + it.Requires
			}
		} else if n := state.Inventory.Items[it.ID]; n > 0 {
			owned = fmt.Sprintf("%d", n)
		}
		fmt.Fprintf(w, "%s\t%s %s\t%d\t%s\t%s\n", it.ID, it.Icon, it.Name, it.Price, owned, notes)
	}
	return w.Flush()
}

func runShopBuy(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	item, ok := rules.ShopItemByID(args[0])
	if !ok {
		return fmt.Errorf("unknown item %q (try 'questforge shop')", args[0])
	}

	if err := d.Engine.Purchase(item.ID); err != nil {
		return err
	}

	gold := d.Engine.State().Character.Gold
	fmt.Printf("Bought %s %s for %d gold. Remaining: %d gold.\n",
		item.Icon, item.Name, item.Price, gold)
	return nil
}
