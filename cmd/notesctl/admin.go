package main

import (
	"fmt"

	"notesnest-web/internal/domain"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newActionCmd builds approve, reject and delete. The terminal has no
// dialog, so --yes stands in for the confirmation step.
func newActionCmd(a *app, action domain.AdminAction, short string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   string(action) + " <note-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pending := &domain.PendingConfirmation{Action: action, NoteID: args[0]}
			if !yes {
				fmt.Fprintln(cmd.OutOrStdout(), pending.Prompt())
				fmt.Fprintln(cmd.OutOrStdout(), "Re-run with --yes to confirm.")
				return nil
			}

			cred, err := a.credential(cmd)
			if err != nil {
				return err
			}

			repo := a.noteRepo(cmd)
			if action == domain.ActionApprove {
				err = repo.Approve(cmd.Context(), cred, pending.NoteID)
			} else {
				err = repo.Delete(cmd.Context(), cred, pending.NoteID)
			}
			if err != nil {
				a.logger.Error("admin action failed", zap.String("action", string(action)), zap.String("note_id", pending.NoteID), zap.Error(err))
				return fmt.Errorf("%s %s: %w", action, pending.NoteID, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), action.Outcome().Message)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the action")
	return cmd
}
