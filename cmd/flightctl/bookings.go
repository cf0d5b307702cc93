package main

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/Domenick1991/airbooking-client/internal/apiclient"
	"github.com/Domenick1991/airbooking-client/internal/domain"
	"github.com/Domenick1991/airbooking-client/internal/service/booking"
	"github.com/Domenick1991/airbooking-client/internal/service/confirmation"
	"github.com/spf13/cobra"
)

var (
	bookFile     string
	bookNoPrompt bool
)

func init() {
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(bookingsCmd)
	rootCmd.AddCommand(confirmationCmd)
	rootCmd.AddCommand(cancelCmd)

	bookCmd.Flags().StringVarP(&bookFile, "file", "f", "", "YAML file with flights, passengers and contact (required)")
	bookCmd.Flags().BoolVar(&bookNoPrompt, "no-prompt", false, "fail instead of prompting for sign-in")
	_ = bookCmd.MarkFlagRequired("file")
}

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Create a booking",
	Long: `Create a booking from a YAML file. When no one is signed in, the booking
is held, you are asked to sign in, and it is then submitted unchanged.

Example:
  flightctl book --file booking.yaml`,
	Args: cobra.NoArgs,
	RunE: runBook,
}

func runBook(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	file, err := loadBookingFile(bookFile)
	if err != nil {
		return err
	}

	var outbound, ret *domain.Flight
	if file.OutboundFlight != "" {
		if outbound, err = current.flights.GetFlight(ctx, file.OutboundFlight); err != nil {
			return fmt.Errorf("load outbound flight: %w", err)
		}
	}
	if file.ReturnFlight != "" {
		if ret, err = current.flights.GetFlight(ctx, file.ReturnFlight); err != nil {
			return fmt.Errorf("load return flight: %w", err)
		}
	}

	res, err := current.bookings.Checkout(ctx, booking.CheckoutInput{Outbound: outbound, Return: ret, Form: file.Form()})
	if err != nil {
		return checkoutError(cmd.ErrOrStderr(), err)
	}

	for res.Status == booking.CheckoutAwaitingAuth {
		msg := booking.SubmitMessage(authRequired(res))
		if bookNoPrompt {
			return errors.New(msg)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), msg)
		email, password, err := credentials("", "")
		if err != nil {
			return err
		}
		auth, err := current.bookings.SignIn(ctx, email, password)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Sign in failed: %v\n", err)
			continue
		}
		if auth.CheckoutErr != nil && auth.Checkout == nil {
			return checkoutError(cmd.ErrOrStderr(), auth.CheckoutErr)
		}
		if auth.Checkout == nil {
			return errors.New("no held booking to submit")
		}
		res = auth.Checkout
	}

	if outputJSON {
		return printJSON(out, res)
	}
	if res.Booking == nil {
		return fmt.Errorf("booking was not created (%s)", res.Status)
	}
	fmt.Fprintln(out, "Booking created")
	printBooking(out, res.Booking, res.Booking.OutboundFlight, res.Booking.ReturnFlight)
	return nil
}

func authRequired(res *booking.CheckoutResult) error {
	if res.SessionExpired {
		return apiclient.ErrUnauthorized
	}
	return apiclient.ErrAuthRequired
}

// checkoutError prints field errors one per line and returns the
// user-facing summary.
func checkoutError(w io.Writer, err error) error {
	var verr *booking.ValidationError
	if errors.As(err, &verr) {
		keys := make([]string, 0, len(verr.Fields))
		for k := range verr.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s: %s\n", k, verr.Fields[k])
		}
	}
	return errors.New(booking.SubmitMessage(err))
}

var bookingsCmd = &cobra.Command{
	Use:   "bookings [id]",
	Short: "List your bookings, or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if len(args) == 1 {
			b, err := current.bookings.Booking(ctx, args[0])
			if err != nil {
				return err
			}
			if outputJSON {
				return printJSON(cmd.OutOrStdout(), b)
			}
			printBooking(cmd.OutOrStdout(), b, b.OutboundFlight, b.ReturnFlight)
			return nil
		}

		list, err := current.bookings.Bookings(ctx)
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd.OutOrStdout(), list)
		}
		return printBookings(cmd.OutOrStdout(), list)
	},
}

var confirmationCmd = &cobra.Command{
	Use:   "confirmation <id>",
	Short: "Show the confirmation for a booking with both flight legs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var state confirmation.State
		for state = range current.reconciler.Resolve(cmd.Context(), confirmation.Reference{BookingID: args[0]}) {
			if state.Phase == confirmation.PhaseLoading && !outputJSON {
				fmt.Fprintln(cmd.ErrOrStderr(), "Loading booking details...")
			}
		}
		if outputJSON {
			return printJSON(cmd.OutOrStdout(), state)
		}
		if state.Phase == confirmation.PhaseError {
			return errors.New(state.Error)
		}
		printBooking(cmd.OutOrStdout(), state.Booking, state.Outbound, state.Return)
		return nil
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a booking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := current.bookings.Cancel(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd.OutOrStdout(), b)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Booking %s: %s\n", b.ID, b.Status)
		return nil
	},
}
