package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/olhovivo/olhovivo"
)

var mapRoutes = map[string]string{
	"all":         olhovivo.MapAll,
	"corridors":   olhovivo.MapCorridors,
	"other-roads": olhovivo.MapOtherRoads,
}

var mapCmd = &cobra.Command{
	Use:       "map [all|corridors|other-roads]",
	Short:     "Export the network map as KMZ",
	Long:      `Download the KMZ map of the whole network, the corridors or the other roads to client.map_path (mapa.kmz by default).`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"all", "corridors", "other-roads"},
	RunE:      runMap,
}

func init() {
	rootCmd.AddCommand(mapCmd)
}

func runMap(cmd *cobra.Command, args []string) error {
	name := "all"
	if len(args) == 1 {
		name = args[0]
	}

	ok, err := client.ExportMap(cmd.Context(), mapRoutes[name])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("map export failed, %s was not written", client.MapPath())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Map saved to %s\n", client.MapPath())
	return nil
}
