package command

import (
	"fmt"
	"strings"

	"mindwell/cmd/cli/authentication"
	"mindwell/internal/microservices/http-api/dto"
	"mindwell/internal/microservices/http-api/models"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "Request and manage counselling sessions",
}

func statusColor(s models.BookingStatus) *color.Color {
	switch s {
	case models.BookingAccepted:
		return color.New(color.FgGreen)
	case models.BookingRescheduled:
		return color.New(color.FgYellow)
	case models.BookingCancelled:
		return color.New(color.FgRed)
	}
	return color.New(color.FgCyan)
}

func printBooking(b models.BookingRequest) {
	fmt.Printf("ID: %s  ", b.ID)
	statusColor(b.Status).Printf("[%s]\n", b.Status)
	fmt.Printf("When: %s %s (%d min) | %s\n", b.RequestedDate, b.RequestedTime, b.Duration, b.SessionType)
	fmt.Printf("Student: %s <%s> | Counsellor: %s\n", b.Student.Name, b.Student.Email, b.CounsellorID)
	if b.Notes != nil {
		fmt.Printf("Notes: %s\n", *b.Notes)
	}
	fmt.Println(strings.Repeat("-", 50))
}

func printBookings(list []models.BookingRequest) {
	if len(list) == 0 {
		fmt.Println("No bookings found.")
		return
	}
	for _, b := range list {
		printBooking(b)
	}
}

var requestBookingCmd = &cobra.Command{
	Use:   "request",
	Short: "Request a session with a counsellor",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		var req dto.CreateBookingDTO
		req.CounsellorID, _ = f.GetString("counsellor")
		req.StudentName, _ = f.GetString("name")
		req.StudentEmail, _ = f.GetString("email")
		req.StudentPhone, _ = f.GetString("phone")
		req.RequestedDate, _ = f.GetString("date")
		req.RequestedTime, _ = f.GetString("time")
		req.Duration, _ = f.GetInt("duration")
		req.SessionType, _ = f.GetString("session-type")
		if notes, _ := f.GetString("notes"); notes != "" {
			req.Notes = &notes
		}

		c, err := authenticatedClient()
		if err != nil {
			return err
		}
		b, err := c.CreateBooking(&req)
		if err != nil {
			return fmt.Errorf("failed to request booking: %w", err)
		}
		success("Booking requested")
		printBooking(*b)
		return nil
	},
}

var myBookingsCmd = &cobra.Command{
	Use:   "mine",
	Short: "List the bookings you requested",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authenticatedClient()
		if err != nil {
			return err
		}
		list, err := c.MyBookings()
		if err != nil {
			return fmt.Errorf("failed to list bookings: %w", err)
		}
		printBookings(list)
		return nil
	},
}

var getBookingCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one booking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authenticatedClient()
		if err != nil {
			return err
		}
		b, err := c.GetBooking(args[0])
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}
		printBooking(*b)
		return nil
	},
}

var queueCmd = &cobra.Command{
	Use:   "queue [counsellor-id]",
	Short: "List a counsellor's requests (defaults to your own)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		counsellorID := ""
		if len(args) == 1 {
			counsellorID = args[0]
		} else {
			creds, err := authentication.GetTokens()
			if err != nil {
				return err
			}
			counsellorID = creds.UserID
		}

		c, err := authenticatedClient()
		if err != nil {
			return err
		}
		list, err := c.CounsellorQueue(counsellorID, status)
		if err != nil {
			return fmt.Errorf("failed to list queue: %w", err)
		}
		printBookings(list)
		return nil
	},
}

var decideCmd = &cobra.Command{
	Use:       "decide [booking-id] [accept|reschedule|cancel]",
	Short:     "Decide on a pending booking",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{string(models.ActionAccept), string(models.ActionReschedule), string(models.ActionCancel)},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authenticatedClient()
		if err != nil {
			return err
		}
		b, err := c.DecideBooking(args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to decide booking: %w", err)
		}
		success("Booking %s", b.Status)
		printBooking(*b)
		return nil
	},
}

func init() {
	bookingsCmd.AddCommand(requestBookingCmd, myBookingsCmd, getBookingCmd, queueCmd, decideCmd)

	f := requestBookingCmd.Flags()
	f.String("counsellor", "", "Counsellor ID")
	f.String("name", "", "Your name")
	f.String("email", "", "Your email")
	f.String("phone", "", "Your phone number")
	f.String("date", "", "Requested date (YYYY-MM-DD)")
	f.String("time", "", "Requested time (HH:MM)")
	f.Int("duration", 60, "Session length in minutes (15-240)")
	f.String("session-type", "Initial consultation", "Kind of session")
	f.String("notes", "", "Anything the counsellor should know")
	for _, name := range []string{"counsellor", "name", "email", "date", "time"} {
		requestBookingCmd.MarkFlagRequired(name)
	}

	queueCmd.Flags().String("status", "", "pending (default), accepted, rescheduled, cancelled or all")
}
