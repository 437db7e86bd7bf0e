package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/olhovivo/olhovivo"
)

var linesCmd = &cobra.Command{
	Use:   "lines",
	Short: "Search bus lines",
}

var linesSearchCmd = &cobra.Command{
	Use:   "search TERMS",
	Short: "Search lines by number or terminal name",
	Long: `Search lines by number or by a part of a terminal name, e.g. "8000" or "Lapa".
Each direction of a route is returned as its own line.`,
	Args: cobra.ExactArgs(1),
	RunE: runLinesSearch,
}

var linesDirectionCmd = &cobra.Command{
	Use:   "direction TERMS DIRECTION",
	Short: "Search lines running in one direction (1 or 2)",
	Long: `Search lines like "lines search", keeping only one direction:
1 runs from the primary to the secondary terminal, 2 the other way.`,
	Args: cobra.ExactArgs(2),
	RunE: runLinesDirection,
}

func init() {
	rootCmd.AddCommand(linesCmd)
	linesCmd.AddCommand(linesSearchCmd)
	linesCmd.AddCommand(linesDirectionCmd)
}

func runLinesSearch(cmd *cobra.Command, args []string) error {
	lines, err := client.SearchLines(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printLines(cmd, lines)
}

func runLinesDirection(cmd *cobra.Command, args []string) error {
	direction, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid direction %q: must be 1 or 2", args[1])
	}

	lines, err := client.LinesByDirection(cmd.Context(), args[0], olhovivo.Direction(direction))
	if err != nil {
		return err
	}
	return printLines(cmd, lines)
}

func printLines(cmd *cobra.Command, lines []olhovivo.Line) error {
	lines, err := filterItems(lines)
	if err != nil {
		return err
	}

	logger.Info().Int("count", len(lines)).Msg("Found lines")
	return printResult(cmd, lines)
}
