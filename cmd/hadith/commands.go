package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
	"github.com/kailas-cloud/hadithview/internal/usecase/browse"
	"github.com/kailas-cloud/hadithview/internal/usecase/detail"
	"github.com/kailas-cloud/hadithview/internal/usecase/health"
	"github.com/kailas-cloud/hadithview/internal/usecase/search"
	"github.com/kailas-cloud/hadithview/internal/usecase/view"
	"github.com/kailas-cloud/hadithview/internal/version"
)

// errViewFailed is returned after a failure message has been printed,
// so the process exits non-zero without repeating the message.
var errViewFailed = errors.New("request failed")

func newSearchCmd(a *app) *cobra.Command {
	var (
		lang   string
		bookID int
		limit  int
		rawURL string
	)
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search hadiths across all collections",
		Example: `  hadith search prayer
  hadith search --book 1 --limit 5 "night prayer"
  hadith search --url '/search?q=salah&lang=ar'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := hadith.ParseLang(lang)
			if err != nil {
				return err
			}
			if limit == 0 {
				limit = a.cfg.Display.SearchLimit
			}
			if limit < 1 || limit > hadith.MaxLimit {
				return fmt.Errorf("--limit must be between 1 and %d", hadith.MaxLimit)
			}

			o := search.New(a.client, a.logger).WithDefaults(filter, bookID, limit)

			var f view.Fetch
			if rawURL != "" {
				if f, err = o.SubmitURL(rawURL); err != nil {
					return err
				}
			} else {
				f = o.Submit(strings.Join(args, " "))
			}
			if f == nil {
				return errors.New("a query is required")
			}
			f(cmd.Context())

			st := o.State()
			fmt.Fprintln(cmd.OutOrStdout(), a.renderer(cmd.OutOrStdout()).Search(st, -1))
			if st.Status == view.Failure {
				return errViewFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "only match text in this language (en, ar, bn, ur)")
	cmd.Flags().IntVar(&bookID, "book", 0, "only search this book id")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results (default: display.search_limit)")
	cmd.Flags().StringVar(&rawURL, "url", "", "search location, e.g. /search?q=prayer&book=1")
	return cmd
}

func newHadithCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hadith <id>",
		Short: "Show one hadith with every translation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := positiveID(args[0])
			if err != nil {
				return err
			}
			st := detail.New(a.client, a.logger).Run(cmd.Context(), id)
			fmt.Fprintln(cmd.OutOrStdout(), a.renderer(cmd.OutOrStdout()).Detail(st))
			if st.Status == view.Failure {
				return errViewFailed
			}
			return nil
		},
	}
}

func newBooksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "books",
		Short: "List hadith collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := view.NewMachine[[]hadith.Book]("books", view.DescribeFailure("Loading books", ""), a.logger)
			m.Trigger(a.client.ListBooks)(cmd.Context())

			st := m.State()
			r := a.renderer(cmd.OutOrStdout())
			if st.Status == view.Failure {
				fmt.Fprintln(cmd.OutOrStdout(), st.Message)
				return errViewFailed
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.Books(st.Value, -1))
			return nil
		},
	}
}

func newBookCmd(a *app) *cobra.Command {
	var (
		page      int
		chapterID int
		chapters  bool
	)
	cmd := &cobra.Command{
		Use:   "book <id>",
		Short: "Browse a book page by page",
		Example: `  hadith book 1
  hadith book 1 --page 3
  hadith book 1 --chapters
  hadith book 1 --chapter 103`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := positiveID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			r := a.renderer(cmd.OutOrStdout())
			o := browse.New(a.client, a.logger).WithPageSize(a.cfg.Display.PageSize)

			view.RunConcurrently(ctx, o.Open(id)...)
			if chapterID != 0 {
				view.Run(ctx, o.FilterChapter(chapterID))
			}
			if page > 1 {
				view.Run(ctx, o.GoToPage(page))
			}

			if chapters {
				cs := o.Chapters()
				if cs.Status == view.Failure {
					fmt.Fprintln(cmd.OutOrStdout(), cs.Message)
					return errViewFailed
				}
				fmt.Fprintln(cmd.OutOrStdout(), r.Chapters(cs.Value))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), r.Browse(o, -1))
			if o.Book().Status == view.Failure || o.Hadiths().Status == view.Failure {
				return errViewFailed
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number (clamped to the last page)")
	cmd.Flags().IntVar(&chapterID, "chapter", 0, "only list hadiths of this chapter id")
	cmd.Flags().BoolVar(&chapters, "chapters", false, "list the chapters instead of hadiths")
	return cmd
}

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the backend health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep := health.New(a.client, a.logger).Check(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), a.renderer(cmd.OutOrStdout()).Health(rep))
			if rep.Status != health.Healthy {
				return fmt.Errorf("backend is %s", rep.Status)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// no config or network needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func positiveID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}
