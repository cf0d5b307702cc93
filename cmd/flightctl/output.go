package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Domenick1991/airbooking-client/internal/domain"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printAirports(w io.Writer, airports []domain.Airport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tCITY\tCOUNTRY")
	for _, a := range airports {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.Code, a.Name, a.City, a.Country)
	}
	return tw.Flush()
}

func printFlights(w io.Writer, title string, list []domain.Flight) error {
	fmt.Fprintf(w, "%s (%d)\n", title, len(list))
	if len(list) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFLIGHT\tROUTE\tDEPARTS\tDURATION\tCABIN\tSEATS\tPRICE")
	for _, f := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s-%s\t%s\t%s\t%s\t%d\t%.2f\n",
			f.ID, f.FlightNumber, f.Origin.Code, f.Destination.Code,
			formatTime(f), formatDuration(f.Duration), f.CabinClass, f.AvailableSeats, f.Price)
	}
	return tw.Flush()
}

func printBookings(w io.Writer, list []domain.Booking) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tOUTBOUND\tRETURN\tPASSENGERS\tTOTAL\tDATE")
	for _, b := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%.2f\t%s\n",
			b.ID, b.Status, orDash(b.OutboundFlightID), orDash(b.ReturnFlightID), len(b.Passengers), b.TotalPrice, b.BookingDate)
	}
	return tw.Flush()
}

func printBooking(w io.Writer, b *domain.Booking, outbound, ret *domain.Flight) {
	fmt.Fprintf(w, "Booking %s: %s\n", b.ID, b.Status)
	if outbound != nil {
		fmt.Fprintf(w, "  Outbound: %s %s-%s %s\n", outbound.FlightNumber, outbound.Origin.Code, outbound.Destination.Code, formatTime(*outbound))
	}
	if ret != nil {
		fmt.Fprintf(w, "  Return:   %s %s-%s %s\n", ret.FlightNumber, ret.Origin.Code, ret.Destination.Code, formatTime(*ret))
	}
	names := make([]string, 0, len(b.Passengers))
	for _, p := range b.Passengers {
		names = append(names, strings.TrimSpace(p.FirstName+" "+p.LastName))
	}
	fmt.Fprintf(w, "  Passengers: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(w, "  Contact: %s %s\n", b.ContactEmail, b.ContactPhone)
	fmt.Fprintf(w, "  Total: %.2f\n", b.TotalPrice)
}

func formatTime(f domain.Flight) string {
	if f.DepartureTime.IsZero() {
		return "-"
	}
	return f.DepartureTime.Format("2006-01-02 15:04")
}

func formatDuration(minutes int) string {
	if minutes <= 0 {
		return "-"
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
