package cmd

import (
	"fmt"
	"strconv"

	"github.com/smazurov/tenderhal/internal/led"
	"github.com/smazurov/tenderhal/internal/logging"
	"github.com/smazurov/tenderhal/pkg/lm8502"
	"github.com/spf13/cobra"
)

// CreateLEDCmd creates the led command with its apply and init subcommands.
// Both talk to the lm8502 device directly, bypassing a running daemon.
func CreateLEDCmd() *cobra.Command {
	var devicePath string
	var logJSON bool

	cmd := &cobra.Command{
		Use:   "led",
		Short: "Drive the lm8502 notification LED directly",
	}
	cmd.PersistentFlags().StringVarP(&devicePath, "device", "d", lm8502.DefaultPath, "LED engine device node")
	cmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Log in JSON format")

	apply := &cobra.Command{
		Use:   "apply <state>",
		Short: "Load and run the program for a notification state",
		Long: `Loads the pulse program for state (0 turns the light off, 1-5 select ` +
			`quick, quick-short, long, long-short and double) and starts the engines.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			state, err := parseState(args[0])
			if err != nil {
				return err
			}
			engine := newCLIEngine(devicePath, logJSON)
			if err := engine.ApplyState(state); err != nil {
				return fmt.Errorf("apply state %d failed (code %d): %w", state, led.Code(err), err)
			}
			fmt.Fprintf(c.OutOrStdout(), "state %d applied (%s)\n", state, lm8502.ProgramFor(state).Name)
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Reset both engines to idle",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, _ []string) {
			newCLIEngine(devicePath, logJSON).Initialize()
			fmt.Fprintln(c.OutOrStdout(), "engines initialized")
		},
	}

	cmd.AddCommand(apply, initCmd)
	return cmd
}

func newCLIEngine(path string, logJSON bool) *led.Engine {
	initCLILogging(logJSON)
	return led.NewEngine(path, logging.GetLogger("led"))
}

// parseState accepts any int32 notification state.
func parseState(s string) (int, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid state %q: must be an integer", s)
	}
	return int(n), nil
}

func initCLILogging(logJSON bool) {
	cfg := logging.Config{Level: "info", Format: "text"}
	if logJSON {
		cfg.Format = "json"
	}
	logging.Initialize(cfg)
}
