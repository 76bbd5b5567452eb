package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"art-booking/internal/data/entity"
	"art-booking/internal/dto/request"
	"art-booking/internal/usecase"
	"art-booking/pkg/utils"

	"github.com/spf13/cobra"
)

func tripsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trips",
		Short: "Inspect and manage trips as an administrator",
	}

	cmd.AddCommand(tripsListCmd())
	cmd.AddCommand(tripsStatusCmd())

	return cmd
}

func tripsListCmd() *cobra.Command {
	var route string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trips, optionally filtered by route colour",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			service := usecase.NewService(rt.repo, rt.config, rt.publisher, rt.logger, usecase.Options{})
			trips, err := service.Trip.ListTrips(cmd.Context(), route)
			if err != nil {
				return err
			}

			if len(trips) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No trips found.")
				return nil
			}
			for _, t := range trips {
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s %-6s %-8s %s -> %s  %s\n",
					t.TripID, t.Color, t.StartStationID, t.DepartureTime, t.ArrivalTime, t.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&route, "route", "r", "", "route colour (RED, BLUE, GREEN)")

	return cmd
}

func tripsStatusCmd() *cobra.Command {
	var departure string

	cmd := &cobra.Command{
		Use:   "status <tripId> <STATUS>",
		Short: "Change a trip status, cascading to its bookings",
		Example: `  art-booking trips status RED_0800_KJ-01 CANCELLED
  art-booking trips status RED_0800_KJ-01 RESCHEDULED --departure "2026-01-20 09:30"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.UpdateTripStatusRequest{
				Status:    entity.TripStatus(strings.ToUpper(args[1])),
				Departure: departure,
			}
			if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
				return fmt.Errorf("invalid status %q", args[1])
			}

			rt, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			service := usecase.NewService(rt.repo, rt.config, rt.publisher, rt.logger, usecase.Options{})
			result, err := service.Trip.UpdateStatus(cmd.Context(), args[0], &req)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&departure, "departure", "", `new departure "YYYY-MM-DD HH:MM" (RESCHEDULED)`)

	return cmd
}
