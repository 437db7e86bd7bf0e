package cmd

import (
	"github.com/spf13/cobra"
)

var lanesCmd = &cobra.Command{
	Use:   "lanes",
	Short: "List the bus corridors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lanes, err := client.Lanes(cmd.Context())
		if err != nil {
			return err
		}

		lanes, err = filterItems(lanes)
		if err != nil {
			return err
		}
		return printResult(cmd, lanes)
	},
}

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List the bus operators by operation area",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		companies, err := client.Companies(cmd.Context())
		if err != nil {
			return err
		}

		for i := range companies.Areas {
			companies.Areas[i].Companies, err = filterItems(companies.Areas[i].Companies)
			if err != nil {
				return err
			}
		}
		return printResult(cmd, companies)
	},
}

func init() {
	rootCmd.AddCommand(lanesCmd)
	rootCmd.AddCommand(companiesCmd)
}
