package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/questforge/questforge/internal/daemon"
	"github.com/questforge/questforge/internal/domain"
	"github.com/questforge/questforge/internal/rules"
)

func init() {
	useCmd.Flags().StringVarP(&useStat, "stat", "s", "", "stat to raise (stat boost potions only)")
	rootCmd.AddCommand(useCmd)
}

var useStat string

var useCmd = &cobra.Command{
	Use:   "use ITEM",
	Short: "Use an item from your inventory",
	Args:  cobra.ExactArgs(1),
	RunE:  runUse,
}

func runUse(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	item, ok := rules.ShopItemByID(args[0])
	if !ok {
		return fmt.Errorf("unknown item %q", args[0])
	}

	if err := d.Engine.UseItem(item.ID, domain.Stat(useStat)); err != nil {
		return err
	}

	fmt.Printf("Used %s %s.\n", item.Icon, item.Name)
	return nil
}
