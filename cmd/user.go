package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var userEmail string

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage API users",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a user and print its API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		defer a.close()

		user, err := a.users.Register(cmd.Context(), userEmail)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", user.Email, user.APIToken)
		return nil
	},
}

var userRotateCmd = &cobra.Command{
	Use:   "rotate-token",
	Short: "Issue a new API token for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		defer a.close()

		user, err := a.users.RotateToken(cmd.Context(), userEmail)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", user.Email, user.APIToken)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{userAddCmd, userRotateCmd} {
		c.Flags().StringVar(&userEmail, "email", "", "user email")
		_ = c.MarkFlagRequired("email")
		userCmd.AddCommand(c)
	}
	rootCmd.AddCommand(userCmd)
}
