package command

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notif"},
	Short:   "Read booking notifications",
}

var unreadCmd = &cobra.Command{
	Use:   "unread",
	Short: "List unread notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authenticatedClient()
		if err != nil {
			return err
		}
		list, err := c.UnreadNotifications()
		if err != nil {
			return fmt.Errorf("failed to get notifications: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No unread notifications.")
			return nil
		}
		for _, n := range list {
			color.Yellow("🔔 [%d] %s", n.ID, n.Title)
			fmt.Printf("   %s (%s)\n", n.Message, n.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var readCmd = &cobra.Command{
	Use:   "read [id]",
	Short: "Mark one notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid notification ID: %w", err)
		}
		c, err := authenticatedClient()
		if err != nil {
			return err
		}
		if err := c.MarkNotificationRead(id); err != nil {
			return err
		}
		success("Notification marked as read")
		return nil
	},
}

var readAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification as read",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authenticatedClient()
		if err != nil {
			return err
		}
		if err := c.MarkAllNotificationsRead(); err != nil {
			return err
		}
		success("All notifications marked as read")
		return nil
	},
}

func init() {
	notificationsCmd.AddCommand(unreadCmd, readCmd, readAllCmd)
}
