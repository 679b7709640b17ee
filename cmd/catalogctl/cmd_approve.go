package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func approveCmd() *cobra.Command {
	var deny bool

	cmd := &cobra.Command{
		Use:   "approve [user-id]",
		Short: "Approve or deny a pending admin request",
		Long:  "Without arguments, lists accounts waiting for admin approval. With a user id, approves the request, or denies it with --deny.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			notifier := newNotifier()

			gate, err := newGate(notifier, logger)
			if err != nil {
				return err
			}
			if err := requireUser(gate); err != nil {
				return err
			}
			api := newClient(gate, notifier, logger)

			if len(args) == 0 {
				pending, err := api.PendingAdmins(cmd.Context())
				if err != nil {
					return fmt.Errorf("approve: fetching pending requests: %w", err)
				}
				if len(pending) == 0 {
					fmt.Println("no pending admin requests")
					return nil
				}
				for _, u := range pending {
					fmt.Printf("%d\t%s\n", u.ID, u.Username)
				}
				return nil
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("approve: invalid user id %q", args[0])
			}
			if err := api.Approve(cmd.Context(), id, !deny); err != nil {
				return fmt.Errorf("approve: %w", err)
			}
			if deny {
				fmt.Printf("denied admin request for user %d\n", id)
			} else {
				fmt.Printf("approved admin request for user %d\n", id)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&deny, "deny", false, "deny the request instead of approving")
	return cmd
}
