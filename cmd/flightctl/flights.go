package main

import (
	"github.com/Domenick1991/airbooking-client/internal/domain"
	"github.com/spf13/cobra"
)

var (
	searchFrom       string
	searchTo         string
	searchDepart     string
	searchReturn     string
	searchCabin      string
	searchPassengers int
	searchTripType   string
)

func init() {
	rootCmd.AddCommand(locationsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(flightCmd)

	searchCmd.Flags().StringVar(&searchFrom, "from", "", "origin airport code (required)")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "destination airport code (required)")
	searchCmd.Flags().StringVar(&searchDepart, "depart", "", "departure date, YYYY-MM-DD (required)")
	searchCmd.Flags().StringVar(&searchReturn, "return", "", "return date, YYYY-MM-DD")
	searchCmd.Flags().StringVar(&searchCabin, "cabin", string(domain.CabinClassEconomy), "cabin class")
	searchCmd.Flags().IntVar(&searchPassengers, "passengers", 1, "number of passengers")
	searchCmd.Flags().StringVar(&searchTripType, "trip", "", "ONE_WAY or ROUND_TRIP (derived from --return when empty)")
	_ = searchCmd.MarkFlagRequired("from")
	_ = searchCmd.MarkFlagRequired("to")
	_ = searchCmd.MarkFlagRequired("depart")
}

var locationsCmd = &cobra.Command{
	Use:   "locations [id]",
	Short: "List airports, or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if len(args) == 1 {
			airport, err := current.flights.Location(ctx, args[0])
			if err != nil {
				return err
			}
			if outputJSON {
				return printJSON(cmd.OutOrStdout(), airport)
			}
			return printAirports(cmd.OutOrStdout(), []domain.Airport{*airport})
		}

		airports, err := current.flights.Locations(ctx)
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd.OutOrStdout(), airports)
		}
		return printAirports(cmd.OutOrStdout(), airports)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search flights",
	Long: `Search outbound and, for round trips, return flights.

Examples:
  flightctl search --from JFK --to LAX --depart 2026-11-02
  flightctl search --from JFK --to LAX --depart 2026-11-02 --return 2026-11-09 --cabin Business --passengers 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := current.flights.Search(cmd.Context(), domain.SearchRequest{
			Origin:        searchFrom,
			Destination:   searchTo,
			DepartureDate: searchDepart,
			ReturnDate:    searchReturn,
			CabinClass:    domain.CabinClass(searchCabin),
			Passengers:    searchPassengers,
			TripType:      domain.TripType(searchTripType),
		})
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd.OutOrStdout(), res)
		}
		out := cmd.OutOrStdout()
		if err := printFlights(out, "Outbound", res.Outbound); err != nil {
			return err
		}
		if res.Return != nil {
			return printFlights(out, "Return", res.Return)
		}
		return nil
	},
}

var flightCmd = &cobra.Command{
	Use:   "flight <id>",
	Short: "Show one flight",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := current.flights.GetFlight(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd.OutOrStdout(), f)
		}
		return printFlights(cmd.OutOrStdout(), "Flight", []domain.Flight{*f})
	},
}
