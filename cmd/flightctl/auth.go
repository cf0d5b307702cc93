package main

import (
	"fmt"

	"github.com/Domenick1991/airbooking-client/internal/apiclient"
	"github.com/spf13/cobra"
)

var (
	authEmail     string
	authPassword  string
	authFirstName string
	authLastName  string
)

func init() {
	rootCmd.AddCommand(signinCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(signoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	for _, c := range []*cobra.Command{signinCmd, signupCmd} {
		c.Flags().StringVar(&authEmail, "email", "", "account email (prompted when empty)")
		c.Flags().StringVar(&authPassword, "password", "", "account password (prompted when empty)")
	}
	signupCmd.Flags().StringVar(&authFirstName, "first-name", "", "first name")
	signupCmd.Flags().StringVar(&authLastName, "last-name", "", "last name")
}

var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in and store the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, password, err := credentials(authEmail, authPassword)
		if err != nil {
			return err
		}
		res, err := current.bookings.SignIn(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", res.Session.User.Email)
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, password, err := credentials(authEmail, authPassword)
		if err != nil {
			return err
		}
		res, err := current.bookings.SignUp(cmd.Context(), apiclient.SignUpInput{
			Email:     email,
			Password:  password,
			FirstName: authFirstName,
			LastName:  authLastName,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Account created, signed in as %s\n", res.Session.User.Email)
		return nil
	},
}

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.bookings.SignOut(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := current.bookings.CurrentUser(cmd.Context())
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("not signed in")
		}
		if outputJSON {
			return printJSON(cmd.OutOrStdout(), user)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", user.Email, user.ID)
		return nil
	},
}
