package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smazurov/tenderhal/internal/logging"
	"github.com/smazurov/tenderhal/internal/power"
	"github.com/spf13/cobra"
)

// CreatePowerCmd creates the power command with its interactive and hint
// subcommands. Each invocation starts from a fresh power state.
func CreatePowerCmd() *cobra.Command {
	var socketPath string
	var logJSON bool
	limits := power.DefaultLimits()

	cmd := &cobra.Command{
		Use:   "power",
		Short: "Send power HAL requests directly to the hardware",
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&socketPath, "socket", power.DefaultSocketPath, "Touchscreen driver socket")
	flags.StringVar(&limits.MaxFreqPath, "max-freq-path", limits.MaxFreqPath, "Maximum CPU frequency limit file")
	flags.StringVar(&limits.MinFreqPath, "min-freq-path", limits.MinFreqPath, "Minimum CPU frequency limit file")
	flags.IntVar(&limits.LowPowerMax, "low-power-max-freq", limits.LowPowerMax, "Maximum frequency in low power mode (kHz)")
	flags.IntVar(&limits.LowPowerMin, "low-power-min-freq", limits.LowPowerMin, "Minimum frequency in low power mode (kHz)")
	flags.IntVar(&limits.NormalMax, "normal-max-freq", limits.NormalMax, "Maximum frequency outside low power mode (kHz)")
	flags.BoolVar(&logJSON, "log-json", false, "Log in JSON format")

	interactive := &cobra.Command{
		Use:       "interactive on|off",
		Short:     "Tell the touchscreen driver the screen turned on or off",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(c *cobra.Command, args []string) error {
			on, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			initCLILogging(logJSON)
			notifier := &reportingNotifier{next: power.NewSocketNotifier(socketPath)}
			hal := power.NewHAL(power.NewState(), logging.GetLogger("power"),
				power.WithNotifier(notifier), power.WithLimits(limits))
			hal.SetInteractive(on)
			if notifier.err != nil {
				return notifier.err
			}
			fmt.Fprintf(c.OutOrStdout(), "interactive %s sent\n", args[0])
			return nil
		},
	}

	hint := &cobra.Command{
		Use:   "hint <kind> <data>",
		Short: "Deliver a power hint",
		Long: `Delivers a power hint by name or number. Known hints: ` +
			strings.Join(power.HintNames(), ", ") + `. Only low_power acts; ` +
			`a non-zero data value enables it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			kind, err := power.ParseHint(args[0])
			if err != nil {
				return err
			}
			data, err := strconv.ParseInt(args[1], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid hint data %q: must be an integer", args[1])
			}
			initCLILogging(logJSON)
			hal := power.NewHAL(power.NewState(), logging.GetLogger("power"),
				power.WithNotifier(power.NewSocketNotifier(socketPath)), power.WithLimits(limits))
			hal.Hint(kind, int32(data))
			fmt.Fprintf(c.OutOrStdout(), "hint %s delivered, low power %t\n", kind, hal.Status().LowPower)
			return nil
		},
	}

	cmd.AddCommand(interactive, hint)
	return cmd
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "1", "true":
		return true, nil
	case "off", "0", "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid interactive value %q: want on or off", s)
}

// reportingNotifier keeps the last delivery error so a one-shot command can
// exit non-zero; the HAL itself only logs it.
type reportingNotifier struct {
	next power.Notifier
	err  error
}

func (n *reportingNotifier) Notify(cmd byte) error {
	n.err = n.next.Notify(cmd)
	return n.err
}
