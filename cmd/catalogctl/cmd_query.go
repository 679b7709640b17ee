package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"catalogctl/internal/models"
)

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a product query",
	}
	cmd.AddCommand(
		queryAverageRatingCmd(),
		queryCountByPartNumberCmd(),
		queryByPartNumberPrefixCmd(),
		queryByPriceCmd(),
		queryByUnitCmd(),
	)
	return cmd
}

func queryAverageRatingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "average-rating",
		Short: "Average rating across all products",
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

			avg, err := api.AverageRating(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%g\n", avg)
			return nil
		},
	}
}

func queryCountByPartNumberCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count-by-part-number <part-number>",
		Short: "Count products with the exact part number",
		Args:  cobra.ExactArgs(1),
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

			count, err := api.CountByPartNumber(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(count)
			return nil
		},
	}
}

func queryByPartNumberPrefixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "by-part-number-prefix <prefix>",
		Short: "Products whose part number starts with the prefix",
		Args:  cobra.ExactArgs(1),
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

			products, err := api.ProductsByPartNumberPrefix(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printProducts(products)
			return nil
		},
	}
}

func queryByPriceCmd() *cobra.Command {
	var minPrice, maxPrice string

	cmd := &cobra.Command{
		Use:   "by-price",
		Short: "Products priced within a range",
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

			min, err := decimal.NewFromString(minPrice)
			if err != nil {
				return fmt.Errorf("invalid min price %q", minPrice)
			}
			max, err := decimal.NewFromString(maxPrice)
			if err != nil {
				return fmt.Errorf("invalid max price %q", maxPrice)
			}

			products, err := api.ProductsByPriceBetween(cmd.Context(), min, max)
			if err != nil {
				return err
			}
			printProducts(products)
			return nil
		},
	}

	cmd.Flags().StringVar(&minPrice, "min", "0", "lower price bound")
	cmd.Flags().StringVar(&maxPrice, "max", "0", "upper price bound")
	_ = cmd.MarkFlagRequired("min")
	_ = cmd.MarkFlagRequired("max")
	return cmd
}

func queryByUnitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "by-unit <unit-of-measure>",
		Short: "Products measured in the given unit",
		Args:  cobra.ExactArgs(1),
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

			unit := models.UnitOfMeasure(args[0])
			if !unit.IsValid() {
				return fmt.Errorf("unit %q must be one of %v", args[0], models.ValidUnitsOfMeasure)
			}

			products, err := api.ProductsByUnitOfMeasure(cmd.Context(), unit)
			if err != nil {
				return err
			}
			printProducts(products)
			return nil
		},
	}
}
