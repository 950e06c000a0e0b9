package main

import (
	"time"

	"github.com/spf13/cobra"

	dErrors "listly/pkg/domain-errors"
)

func parseDue(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, dErrors.New(dErrors.CodeValidation, "enter a valid due date")
}

func newAddCmd() *cobra.Command {
	var due string
	cmd := &cobra.Command{
		Use:   "add <list-id> <text>",
		Short: "Add a to-do to the front of a list",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string, e *env) error {
			var dueDate *time.Time
			if due != "" {
				t, err := parseDue(due)
				if err != nil {
					return err
				}
				dueDate = &t
			}
			if err := e.actions.AddItem(cmd.Context(), args[0], args[1], dueDate); err != nil {
				return err
			}
			printFocused(cmd, e)
			return nil
		}),
	}
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD or RFC 3339)")
	return cmd
}

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <list-id> <item-id> <text>",
		Short: "Rewrite a to-do's text",
		Args:  cobra.ExactArgs(3),
		RunE: run(func(cmd *cobra.Command, args []string, e *env) error {
			if err := e.actions.UpdateItemText(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			printFocused(cmd, e)
			return nil
		}),
	}
}

func newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <list-id> <item-id>",
		Short: "Mark a to-do done",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string, e *env) error {
			if err := e.actions.CompleteItem(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			printFocused(cmd, e)
			return nil
		}),
	}
}

func newIncompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "incomplete <list-id> <item-id>",
		Short: "Reopen a completed to-do",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string, e *env) error {
			if err := e.actions.IncompleteItem(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			printFocused(cmd, e)
			return nil
		}),
	}
}

func newDueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "due <list-id> <item-id> <date>",
		Short: "Set a to-do's due date",
		Args:  cobra.ExactArgs(3),
		RunE: run(func(cmd *cobra.Command, args []string, e *env) error {
			t, err := parseDue(args[2])
			if err != nil {
				return err
			}
			if err := e.actions.SetDueDate(cmd.Context(), args[0], args[1], t); err != nil {
				return err
			}
			printFocused(cmd, e)
			return nil
		}),
	}
}

func newUndueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undue <list-id> <item-id>",
		Short: "Clear a to-do's due date",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string, e *env) error {
			if err := e.actions.UnsetDueDate(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			printFocused(cmd, e)
			return nil
		}),
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <list-id> <item-id>",
		Short: "Delete a to-do",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string, e *env) error {
			if err := e.actions.RemoveItem(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			printFocused(cmd, e)
			return nil
		}),
	}
}
