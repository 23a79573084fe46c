package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/questforge/questforge/internal/daemon"
)

func init() {
	timelineCmd.Flags().IntVarP(&timelineLimit, "limit", "n", 20, "number of entries to show")
	rootCmd.AddCommand(timelineCmd)
}

var timelineLimit int

var timelineCmd = &cobra.Command{
	Use:     "timeline",
	Aliases: []string{"log"},
	Short:   "Show your hero's journey log",
	RunE:    runTimeline,
}

func runTimeline(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	events, err := d.Store.List(ctx, d.Config.User.ID, timelineLimit)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No events yet. Complete some quests!")
		return nil
	}

	for _, ev := range events {
		fmt.Printf("%s  %s %s\n", ev.CreatedAt.Format("Jan 02 15:04"), ev.Icon, ev.Description)
	}
	return nil
}
