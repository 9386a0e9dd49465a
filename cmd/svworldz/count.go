package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/svworldz/internal/motion"
	"github.com/jpalmerr/svworldz/internal/view"
)

// countCmd plays the animated counter in the terminal.
var countCmd = &cobra.Command{
	Use:   "count <value>",
	Short: "Preview the animated counter",
	Long: `Play the landing page counter animation in the terminal, printing each
frame formatted for the chosen locale.

Example:
  svworldz count 774000
  svworldz count 58000000 --locale de --duration 3s --fps 30`,
	Args: cobra.ExactArgs(1),
	RunE: runCount,
}

func init() {
	rootCmd.AddCommand(countCmd)

	countCmd.Flags().Duration("duration", motion.DefaultCounterDuration, "animation length")
	countCmd.Flags().Int("fps", 30, "frames per second")
	countCmd.Flags().String("locale", "en", "locale used to group digits")
}

func runCount(cmd *cobra.Command, args []string) error {
	end, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || end < 0 {
		return fmt.Errorf("value must be a non-negative integer, got %q", args[0])
	}

	duration, _ := cmd.Flags().GetDuration("duration")
	fps, _ := cmd.Flags().GetInt("fps")
	locale, _ := cmd.Flags().GetString("locale")

	tag, ok := view.ParseTag(locale)
	if !ok {
		return fmt.Errorf("unsupported locale %q", locale)
	}
	p := view.Printer(tag)

	c := motion.NewCounter(end, time.Now())
	c.Duration = duration

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	driver, err := motion.NewDriver(c, fps, func(f motion.Frame) {
		fmt.Println(view.FormatCount(p, f.Value))
		if f.Done {
			cancel()
		}
	})
	if err != nil {
		return err
	}

	if err := driver.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
