package command

import (
	"fmt"
	"strconv"
	"strings"

	"mindwell/cmd/cli/command/client"
	"mindwell/internal/microservices/http-api/models"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resourcesCmd = &cobra.Command{
	Use:     "resources",
	Aliases: []string{"res"},
	Short:   "Browse, search and engage with resources",
}

func printResource(r models.Resource) {
	color.New(color.Bold).Printf("%s\n", r.Title)
	fmt.Printf("ID: %s\n", r.ID)
	fmt.Printf("Category: %s | Type: %s | Difficulty: %s\n", r.Category, r.Type, r.Difficulty)
	fmt.Printf("Author: %s\n", r.Author)
	fmt.Printf("Rating: %.1f (%d) | Likes: %d | Bookmarks: %d | Shares: %d\n",
		r.Rating.Average, r.Rating.Count, r.Engagement.Likes, r.Engagement.Bookmarks, r.Engagement.Shares)
	if len(r.Tags) > 0 {
		fmt.Printf("Tags: %s\n", strings.Join(r.Tags, ", "))
	}
	fmt.Println(strings.Repeat("-", 50))
}

var listResourcesCmd = &cobra.Command{
	Use:   "list",
	Short: "List resources with filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		var opts client.ListOptions
		opts.Category, _ = f.GetString("category")
		opts.Type, _ = f.GetString("type")
		opts.Difficulty, _ = f.GetString("difficulty")
		opts.Language, _ = f.GetString("language")
		opts.TargetAudience, _ = f.GetString("audience")
		opts.Search, _ = f.GetString("search")
		opts.Page, _ = f.GetInt("page")
		opts.Limit, _ = f.GetInt("limit")
		opts.SortBy, _ = f.GetString("sort")
		opts.SortOrder, _ = f.GetString("order")

		items, page, err := publicClient().ListResources(opts)
		if err != nil {
			return fmt.Errorf("failed to list resources: %w", err)
		}
		if len(items) == 0 {
			fmt.Println("No resources found.")
			return nil
		}
		if page != nil {
			fmt.Printf("Page %d/%d, Total: %d\n\n", page.Page, page.Pages, page.Total)
		}
		for _, r := range items {
			printResource(r)
		}
		return nil
	},
}

var featuredCmd = &cobra.Command{
	Use:   "featured",
	Short: "Show featured resources",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		items, err := publicClient().FeaturedResources(limit)
		if err != nil {
			return fmt.Errorf("failed to get featured resources: %w", err)
		}
		for _, r := range items {
			printResource(r)
		}
		return nil
	},
}

var getResourceCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one resource",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := publicClient().GetResource(args[0])
		if err != nil {
			return fmt.Errorf("failed to get resource: %w", err)
		}
		printResource(*r)
		fmt.Printf("URL: %s\n", r.URL)
		fmt.Printf("Description: %s\n", r.Description)
		return nil
	},
}

var metaCmd = &cobra.Command{
	Use:       "meta [categories|types]",
	Short:     "List the categories or types in use",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"categories", "types"},
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := publicClient().Meta(args[0])
		if err != nil {
			return err
		}
		for _, v := range values {
			fmt.Println(v)
		}
		return nil
	},
}

// toggleCmd builds like/bookmark/share; each call flips the caller's state.
func toggleCmd(interactionType string) *cobra.Command {
	return &cobra.Command{
		Use:   interactionType + " [resource-id]",
		Short: "Toggle " + interactionType + " on a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authenticatedClient()
			if err != nil {
				return err
			}
			result, err := c.Interact(args[0], interactionType)
			if err != nil {
				return fmt.Errorf("failed to %s resource: %w", interactionType, err)
			}
			success("%s", result.Message)
			if e := result.Engagement; e != nil {
				fmt.Printf("Likes: %d | Bookmarks: %d | Shares: %d\n", e.Likes, e.Bookmarks, e.Shares)
			}
			return nil
		},
	}
}

var rateCmd = &cobra.Command{
	Use:   "rate [resource-id] [rating]",
	Short: "Rate a resource (1-5)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rating, err := strconv.Atoi(args[1])
		if err != nil || rating < 1 || rating > 5 {
			return fmt.Errorf("rating must be between 1 and 5")
		}
		c, err := authenticatedClient()
		if err != nil {
			return err
		}
		result, err := c.Rate(args[0], rating)
		if err != nil {
			return fmt.Errorf("failed to rate resource: %w", err)
		}
		success("%s", result.Message)
		if result.Rating != nil {
			fmt.Printf("Average: %.1f from %d ratings\n", result.Rating.Average, result.Rating.Count)
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your interactions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("type")
		c, err := authenticatedClient()
		if err != nil {
			return err
		}
		list, err := c.History(kind)
		if err != nil {
			return fmt.Errorf("failed to get history: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No interactions yet.")
			return nil
		}
		for _, i := range list {
			title := i.ResourceID
			if i.Resource != nil {
				title = i.Resource.Title
			}
			fmt.Printf("%s  %-8s  %s\n", i.CreatedAt.Format("2006-01-02 15:04"), i.InteractionType, title)
		}
		return nil
	},
}

func init() {
	resourcesCmd.AddCommand(listResourcesCmd, featuredCmd, getResourceCmd, metaCmd, rateCmd, historyCmd)
	for _, t := range []string{models.InteractionLike, models.InteractionBookmark, models.InteractionShare} {
		resourcesCmd.AddCommand(toggleCmd(t))
	}

	f := listResourcesCmd.Flags()
	f.String("category", "", "Filter by category")
	f.String("type", "", "Filter by type")
	f.String("difficulty", "", "Filter by difficulty")
	f.String("language", "", "Filter by language")
	f.String("audience", "", "Filter by target audience")
	f.StringP("search", "s", "", "Search title, description, author and tags")
	f.Int("page", 1, "Page number")
	f.Int("limit", 12, "Items per page")
	f.String("sort", "createdAt", "Sort field")
	f.String("order", "desc", "Sort order (asc|desc)")

	featuredCmd.Flags().Int("limit", 6, "Number of featured resources")
	historyCmd.Flags().String("type", "", "Only this interaction type (like, bookmark, share, view)")
}
