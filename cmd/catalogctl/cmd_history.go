package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"catalogctl/internal/models"
	"catalogctl/internal/store"
)

func historyCmd() *cobra.Command {
	var (
		sortBy  string
		desc    bool
		status  string
		userID  int64
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the import history",
		Long:  "Shows import history records. Admins see every user's records, other users only their own. Supports sorting, status and user filters, and paging.",
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
			reg := newRegistry(api, gate, notifier, logger)

			if err := reg.History.Load(cmd.Context()); err != nil {
				return err
			}

			items := reg.History.Items()
			items = store.FilterHistory(items, models.ImportStatus(status), userID)
			store.SortHistory(items, store.HistoryField(sortBy), !desc)
			items = store.PageHistory(items, page, perPage)

			for _, h := range items {
				fmt.Printf("%d\tuser=%d\t%s\timported=%d\t%s\n",
					h.ID, h.UserID, h.Status, h.SuccessCount, h.Timestamp.Format(time.RFC3339))
			}
			if len(items) == 0 {
				fmt.Println("no import history")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sortBy, "sort", "id", "sort field: id, userId, status, successCount, timestamp")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.Flags().StringVar(&status, "status", "", "filter by status: SUCCESS or ERROR")
	cmd.Flags().Int64Var(&userID, "user", 0, "filter by user id")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 20, "records per page")
	return cmd
}
