package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/olhovivo/olhovivo"
)

var stopsCmd = &cobra.Command{
	Use:   "stops",
	Short: "Search bus stops",
}

var stopsSearchCmd = &cobra.Command{
	Use:   "search TERMS",
	Short: "Search stops by name or address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stops, err := client.SearchStops(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printStops(cmd, stops)
	},
}

var stopsLineCmd = &cobra.Command{
	Use:   "line LINE_CODE",
	Short: "List the stops served by a line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stops, err := client.StopsByLine(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printStops(cmd, stops)
	},
}

var stopsLaneCmd = &cobra.Command{
	Use:   "lane LANE_CODE",
	Short: "List the stops of a bus corridor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stops, err := client.StopsByLane(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printStops(cmd, stops)
	},
}

func init() {
	rootCmd.AddCommand(stopsCmd)
	stopsCmd.AddCommand(stopsSearchCmd)
	stopsCmd.AddCommand(stopsLineCmd)
	stopsCmd.AddCommand(stopsLaneCmd)
}

func printStops(cmd *cobra.Command, stops []olhovivo.Stop) error {
	stops, err := filterItems(stops)
	if err != nil {
		return err
	}

	logger.Info().Int("count", len(stops)).Msg("Found stops")
	return printResult(cmd, stops)
}
