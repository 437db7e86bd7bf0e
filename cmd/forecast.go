package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/s0up4200/olhovivo/olhovivo"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Show arrival forecasts",
}

var forecastStopCmd = &cobra.Command{
	Use:   "stop STOP_CODE",
	Short: "Forecast every line arriving at a stop",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		forecast, err := client.StopForecast(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printStopForecast(cmd, forecast)
	},
}

var forecastLineCmd = &cobra.Command{
	Use:   "line LINE_CODE",
	Short: "Forecast a line's arrival at each of its stops",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		forecast, err := client.LineForecast(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		forecast.Stops, err = filterItems(forecast.Stops)
		if err != nil {
			return err
		}
		return printResult(cmd, forecast)
	},
}

var forecastStopLineCmd = &cobra.Command{
	Use:   "stop-line STOP_CODE LINE_CODE",
	Short: "Forecast one line's arrival at one stop",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		forecast, err := client.StopLineForecast(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return printStopForecast(cmd, forecast)
	},
}

var arrivalCmd = &cobra.Command{
	Use:   "arrival LINE STOP",
	Short: "Find a line and a stop by name and forecast the arrival",
	Long: `Search a line and a stop by their search terms and show the forecast of the
first line found at the first stop found, e.g.

  olhovivo arrival 8000 "Afonso Braz"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		arrival, err := client.ArrivalAt(cmd.Context(), args[0], args[1])
		if errors.Is(err, olhovivo.ErrArrivalNotFound) {
			logger.Warn().Str("line", args[0]).Str("stop", args[1]).Msg("Line does not stop there")
		}
		if err != nil {
			return err
		}
		return printResult(cmd, arrival)
	},
}

func init() {
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(arrivalCmd)
	forecastCmd.AddCommand(forecastStopCmd)
	forecastCmd.AddCommand(forecastLineCmd)
	forecastCmd.AddCommand(forecastStopLineCmd)
}

func printStopForecast(cmd *cobra.Command, forecast *olhovivo.StopForecast) error {
	if forecast.Stop == nil {
		logger.Info().Msg("No forecast available for stop")
		return printResult(cmd, forecast)
	}

	var err error
	forecast.Stop.Lines, err = filterItems(forecast.Stop.Lines)
	if err != nil {
		return err
	}
	return printResult(cmd, forecast)
}
