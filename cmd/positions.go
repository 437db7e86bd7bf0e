package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/olhovivo/gtfsrt"
	"github.com/s0up4200/olhovivo/olhovivo"
)

var (
	rawPositions bool
	gtfsrtFile   string

	garageCompany string
	concurrency   int
)

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "Show the position of every vehicle in service",
	Long: `Show the position of every vehicle in service, grouped by line.

--raw prints the API payload untouched. --gtfsrt writes the positions as a
GTFS-realtime VehiclePositions feed in protobuf format.`,
	Args: cobra.NoArgs,
	RunE: runPositions,
}

var vehiclesCmd = &cobra.Command{
	Use:   "vehicles LINE_CODE...",
	Short: "Show the vehicles of one or more lines",
	Long: `Show the vehicles of one or more lines. Several lines are fetched in parallel,
each over its own session.

With --garage, show the vehicles of a company parked in its garages instead,
optionally restricted to one line.`,
	PersistentPreRunE: initializeVehicles,
	RunE:              runVehicles,
}

func init() {
	rootCmd.AddCommand(positionsCmd)
	rootCmd.AddCommand(vehiclesCmd)

	positionsCmd.Flags().BoolVar(&rawPositions, "raw", false, "print the API payload untouched")
	positionsCmd.Flags().StringVar(&gtfsrtFile, "gtfsrt", "", "write a GTFS-realtime feed to `FILE`")
	positionsCmd.MarkFlagsMutuallyExclusive("raw", "gtfsrt")

	vehiclesCmd.Flags().StringVar(&garageCompany, "garage", "", "show vehicles in the garages of company `CODE`")
	vehiclesCmd.Flags().IntVar(&concurrency, "concurrency", olhovivo.DefaultConcurrency, "sessions opened at once for several lines")
}

func runPositions(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if rawPositions {
		raw, err := client.PositionsRaw(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
		return err
	}

	positions, err := client.Positions(ctx)
	if err != nil {
		return err
	}

	positions.Lines, err = filterItems(positions.Lines)
	if err != nil {
		return err
	}

	if gtfsrtFile != "" {
		feed := gtfsrt.FromPositions(positions, time.Now())
		if err := gtfsrt.WriteFile(gtfsrtFile, feed); err != nil {
			return err
		}
		logger.Info().
			Str("file", gtfsrtFile).
			Int("entities", len(feed.Entity)).
			Msg("GTFS-realtime feed written")
		return nil
	}

	return printResult(cmd, positions)
}

// initializeVehicles skips the root login when several lines are fetched,
// since every line then gets its own session
func initializeVehicles(cmd *cobra.Command, args []string) error {
	if garageCompany == "" && len(args) > 1 {
		return loadConfig(cmd)
	}
	return initializeApp(cmd, args)
}

func runVehicles(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if garageCompany != "" {
		if len(args) > 1 {
			return fmt.Errorf("--garage accepts at most one line code")
		}
		line := ""
		if len(args) == 1 {
			line = args[0]
		}

		garage, err := client.VehiclesInGarage(ctx, garageCompany, line)
		if err != nil {
			return err
		}
		return printResult(cmd, garage)
	}

	switch len(args) {
	case 0:
		return fmt.Errorf("at least one line code is required")
	case 1:
		vehicles, err := client.VehiclesByLine(ctx, args[0])
		if err != nil {
			return err
		}
		if vehicles.Vehicles, err = filterItems(vehicles.Vehicles); err != nil {
			return err
		}
		return printResult(cmd, vehicles)
	}

	factory := olhovivo.SessionFactory(cfg.Session(), logger, cfg.ClientOptions()...)
	results, err := olhovivo.VehiclesByLines(ctx, factory, args, concurrency)
	if err != nil {
		return err
	}

	for _, vehicles := range results {
		if vehicles.Vehicles, err = filterItems(vehicles.Vehicles); err != nil {
			return err
		}
	}

	return printResult(cmd, results)
}
