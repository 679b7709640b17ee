package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"catalogctl/internal/models"
)

func loginCmd() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			notifier := newNotifier()

			gate, err := newGate(notifier, logger)
			if err != nil {
				return err
			}
			api := newClient(gate, notifier, logger)

			if err := gate.Login(cmd.Context(), api, username, password); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			user := gate.User()
			fmt.Printf("signed in as %s (%s)\n", user.Username, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func signupCmd() *cobra.Command {
	var (
		username string
		password string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account and sign in",
		Long:  "Registers a new account. Requesting the ADMIN role queues the account for approval by an existing administrator.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			notifier := newNotifier()

			gate, err := newGate(notifier, logger)
			if err != nil {
				return err
			}
			api := newClient(gate, notifier, logger)

			if err := gate.Signup(cmd.Context(), api, username, password, models.Role(role)); err != nil {
				return fmt.Errorf("signup failed: %w", err)
			}

			user := gate.User()
			fmt.Printf("registered %s (%s)\n", user.Username, user.Role)
			if user.Role == models.RoleAdmin && !user.Approved {
				fmt.Println("admin rights are pending approval by an existing administrator")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().StringVar(&role, "role", string(models.RoleUser), "requested role: USER or ADMIN")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			notifier := newNotifier()

			gate, err := newGate(notifier, logger)
			if err != nil {
				return err
			}
			if err := gate.Logout(); err != nil {
				return fmt.Errorf("logout failed: %w", err)
			}
			fmt.Println("signed out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			notifier := newNotifier()

			gate, err := newGate(notifier, logger)
			if err != nil {
				return err
			}
			user := gate.User()
			if user == nil {
				fmt.Println("not signed in")
				return nil
			}
			fmt.Printf("%s (%s), id %d\n", user.Username, user.Role, user.ID)
			return nil
		},
	}
}
