package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"seichi/internal/bootstrap"
	"seichi/internal/bootstrap/logging"
	"seichi/internal/errs"
	"seichi/internal/usecase/guestbook"
)

var guestbookCmd = &cobra.Command{
	Use:   "guestbook",
	Short: "Guestbook entry commands",
}

var guestbookPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Certify a visit and post a guestbook entry",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *guestbook.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		userID, _ := cmd.Flags().GetUint64("user")
		pilgrimageID, _ := cmd.Flags().GetUint64("pilgrimage")
		title, _ := cmd.Flags().GetString("title")
		body, _ := cmd.Flags().GetString("body")
		hashtags, _ := cmd.Flags().GetStringSlice("hashtag")
		imagePaths, _ := cmd.Flags().GetStringSlice("image")

		images, err := readImageFiles(imagePaths)
		if err != nil {
			return err
		}

		entry, err := svc.CertifyAndPost(ctx, guestbook.CertifyAndPostInput{
			UserID:       userID,
			PilgrimageID: pilgrimageID,
			Title:        title,
			Body:         body,
			Hashtags:     hashtags,
			Images:       images,
		})
		if err != nil {
			return errs.Wrap(err, "certify and post")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "entry posted: entry=%d user=%d pilgrimage=%d\n",
			entry.EntryID, userID, pilgrimageID); err != nil {
			return errs.Wrap(err, "write post output")
		}
		return nil
	}),
}

var guestbookModifyCmd = &cobra.Command{
	Use:   "modify",
	Short: "Modify an entry you authored",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *guestbook.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		userID, _ := cmd.Flags().GetUint64("user")
		entryID, _ := cmd.Flags().GetUint64("entry")

		input := guestbook.ModifyEntryInput{
			UserID:  userID,
			EntryID: entryID,
		}

		// Flags left unset keep the stored value; replacement flags swap
		// the whole hashtag or image set.
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			input.Title = &title
		}
		if cmd.Flags().Changed("body") {
			body, _ := cmd.Flags().GetString("body")
			input.Body = &body
		}
		if cmd.Flags().Changed("hashtag") {
			hashtags, _ := cmd.Flags().GetStringSlice("hashtag")
			input.Hashtags = hashtags
		}
		if cmd.Flags().Changed("image") {
			imagePaths, _ := cmd.Flags().GetStringSlice("image")
			images, err := readImageFiles(imagePaths)
			if err != nil {
				return err
			}
			input.Images = images
		}

		if err := svc.ModifyEntry(ctx, input); err != nil {
			return errs.Wrap(err, "modify entry")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "entry modified: entry=%d\n", entryID); err != nil {
			return errs.Wrap(err, "write modify output")
		}
		return nil
	}),
}

var guestbookDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an entry you authored",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *guestbook.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		userID, _ := cmd.Flags().GetUint64("user")
		entryID, _ := cmd.Flags().GetUint64("entry")

		if err := svc.DeleteEntry(ctx, guestbook.DeleteEntryInput{
			UserID:  userID,
			EntryID: entryID,
		}); err != nil {
			return errs.Wrap(err, "delete entry")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "entry deleted: entry=%d\n", entryID); err != nil {
			return errs.Wrap(err, "write delete output")
		}
		return nil
	}),
}

var guestbookShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show an entry and count the view",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *guestbook.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		entryID, _ := cmd.Flags().GetUint64("entry")
		viewerID, _ := cmd.Flags().GetUint64("viewer")

		if err := svc.IncreaseView(ctx, entryID); err != nil {
			return errs.Wrap(err, "increase view")
		}
		detail, err := svc.EntryDetail(ctx, entryID, viewerID)
		if err != nil {
			return errs.Wrap(err, "load entry detail")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Entry: %d\n", detail.Entry.EntryID)
		fmt.Fprintf(out, "Author: %d\n", detail.Entry.UserID)
		fmt.Fprintf(out, "Pilgrimage: %d\n", detail.Entry.PilgrimageID)
		fmt.Fprintf(out, "Title: %s\n", detail.Entry.Title)
		fmt.Fprintf(out, "Body: %s\n", detail.Entry.Body)
		fmt.Fprintf(out, "Hashtags: %s\n", strings.Join(detail.Hashtags, ","))
		for _, url := range detail.ImageURLs {
			fmt.Fprintf(out, "Image: %s\n", url)
		}
		fmt.Fprintf(out, "Views: %d Likes: %d Comments: %d\n",
			detail.Entry.ViewCount, detail.Entry.LikeCount, detail.CommentCount)
		if viewerID != 0 {
			fmt.Fprintf(out, "Liked: %v Author: %v\n", detail.IsLiked, detail.IsAuthor)
		}
		return nil
	}),
}

var guestbookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's entries or today's trending entries",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *guestbook.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		out := cmd.OutOrStdout()
		trending, _ := cmd.Flags().GetBool("trending")
		if trending {
			limit, _ := cmd.Flags().GetInt("size")
			entries, err := svc.TrendingToday(ctx, limit)
			if err != nil {
				return errs.Wrap(err, "list trending entries")
			}
			for _, entry := range entries {
				fmt.Fprintf(out, "e%d likes=%d views=%d user=%d %s\n",
					entry.EntryID, entry.LikeCount, entry.ViewCount, entry.UserID, entry.Title)
			}
			return nil
		}

		userID, _ := cmd.Flags().GetUint64("user")
		page, _ := cmd.Flags().GetInt("page")
		size, _ := cmd.Flags().GetInt("size")
		entries, err := svc.ListEntriesByUser(ctx, userID, page, size)
		if err != nil {
			return errs.Wrap(err, "list user entries")
		}
		for _, entry := range entries {
			fmt.Fprintf(out, "e%d pilgrimage=%d views=%d likes=%d %s\n",
				entry.EntryID, entry.PilgrimageID, entry.ViewCount, entry.LikeCount, entry.Title)
		}
		return nil
	}),
}

func readImageFiles(paths []string) ([][]byte, error) {
	images := make([][]byte, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errs.Wrapf(err, "read image file %q", path)
		}
		images = append(images, data)
	}
	return images, nil
}

func init() {
	rootCmd.AddCommand(guestbookCmd)
	guestbookCmd.AddCommand(guestbookPostCmd)
	guestbookCmd.AddCommand(guestbookModifyCmd)
	guestbookCmd.AddCommand(guestbookDeleteCmd)
	guestbookCmd.AddCommand(guestbookShowCmd)
	guestbookCmd.AddCommand(guestbookListCmd)

	guestbookPostCmd.Flags().Uint64("user", 0, "User id")
	guestbookPostCmd.Flags().Uint64("pilgrimage", 0, "Pilgrimage id")
	guestbookPostCmd.Flags().String("title", "", "Entry title")
	guestbookPostCmd.Flags().String("body", "", "Entry body")
	guestbookPostCmd.Flags().StringSlice("hashtag", nil, "Hashtag (repeatable)")
	guestbookPostCmd.Flags().StringSlice("image", nil, "Image file path (repeatable, at least one required)")
	_ = guestbookPostCmd.MarkFlagRequired("user")
	_ = guestbookPostCmd.MarkFlagRequired("pilgrimage")

	guestbookModifyCmd.Flags().Uint64("user", 0, "User id")
	guestbookModifyCmd.Flags().Uint64("entry", 0, "Entry id")
	guestbookModifyCmd.Flags().String("title", "", "New title")
	guestbookModifyCmd.Flags().String("body", "", "New body")
	guestbookModifyCmd.Flags().StringSlice("hashtag", nil, "Replacement hashtag set (repeatable)")
	guestbookModifyCmd.Flags().StringSlice("image", nil, "Replacement image file paths (repeatable)")
	_ = guestbookModifyCmd.MarkFlagRequired("user")
	_ = guestbookModifyCmd.MarkFlagRequired("entry")

	guestbookDeleteCmd.Flags().Uint64("user", 0, "User id")
	guestbookDeleteCmd.Flags().Uint64("entry", 0, "Entry id")
	_ = guestbookDeleteCmd.MarkFlagRequired("user")
	_ = guestbookDeleteCmd.MarkFlagRequired("entry")

	guestbookShowCmd.Flags().Uint64("entry", 0, "Entry id")
	guestbookShowCmd.Flags().Uint64("viewer", 0, "Viewer user id (0 for anonymous)")
	_ = guestbookShowCmd.MarkFlagRequired("entry")

	guestbookListCmd.Flags().Uint64("user", 0, "User id")
	guestbookListCmd.Flags().Int("page", 1, "Page number (1-based)")
	guestbookListCmd.Flags().Int("size", 20, "Page size")
	guestbookListCmd.Flags().Bool("trending", false, "Show today's trending entries instead")
}
