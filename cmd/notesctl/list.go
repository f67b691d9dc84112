package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"notesnest-web/internal/domain"
	"notesnest-web/internal/search"
	"notesnest-web/internal/service"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var (
		query   string
		subject string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List approved notes, optionally searched and filtered by subject",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			notes := service.NewNotesService(a.noteRepo(cmd), service.RetryPolicy{
				Attempts:  3,
				BaseDelay: a.env.RetryDelay,
				Timeout:   a.env.Timeout,
			}, search.DefaultThreshold, a.logger)

			listing := notes.Listing(cmd.Context(), service.Filter{Query: query, Subject: subject}, true)
			if listing.State == service.StateError {
				return fmt.Errorf("list approved notes: %w", listing.Err)
			}

			return printNotes(cmd.OutOrStdout(), listing.Notes, asJSON)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Fuzzy search over title, description, subject and contributor")
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Only notes with exactly this subject")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print notes as JSON")
	return cmd
}

func newPendingCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List notes awaiting review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cred, err := a.credential(cmd)
			if err != nil {
				return err
			}

			notes, err := a.noteRepo(cmd).ListPending(cmd.Context(), cred)
			if err != nil {
				return fmt.Errorf("list pending notes: %w", err)
			}
			return printNotes(cmd.OutOrStdout(), notes, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print notes as JSON")
	return cmd
}

func printNotes(w io.Writer, notes []*domain.Note, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if notes == nil {
			notes = []*domain.Note{}
		}
		return enc.Encode(notes)
	}

	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSUBJECT\tCATEGORY\tCONTRIBUTOR")
	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", n.ID, n.Title, n.Subject, n.Category, n.Contributor)
	}
	return tw.Flush()
}
