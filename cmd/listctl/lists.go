package main

import (
	"github.com/spf13/cobra"
)

func newListsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "Show every list you belong to",
		RunE: run(func(cmd *cobra.Command, _ []string, e *env) error {
			if err := e.actions.GetLists(cmd.Context()); err != nil {
				return err
			}
			lists := e.store.Lists().Lists
			if len(lists) == 0 {
				cmd.Println("no lists yet")
				return nil
			}
			for _, l := range lists {
				done := 0
				for _, item := range l.Items {
					if item.CompletedDate != nil {
						done++
					}
				}
				cmd.Printf("%s  %s (%d/%d done)\n", l.ID, l.Name, done, len(l.Items))
			}
			return nil
		}),
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <list-id>",
		Short: "Show one list with its items",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, e *env) error {
			if err := e.actions.GetList(cmd.Context(), args[0]); err != nil {
				return err
			}
			printFocused(cmd, e)
			return nil
		}),
	}
}

func newCreateCmd() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new list",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, e *env) error {
			var desc *string
			if description != "" {
				desc = &description
			}
			if err := e.actions.CreateList(cmd.Context(), args[0], desc); err != nil {
				return err
			}
			lists := e.store.Lists().Lists
			if len(lists) > 0 {
				cmd.Printf("created %s (%s)\n", lists[0].Name, lists[0].ID)
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&description, "description", "", "list description")
	return cmd
}

func newDescCmd() *cobra.Command {
	var clear bool
	cmd := &cobra.Command{
		Use:   "desc <list-id> [description]",
		Short: "Set or clear a list's description",
		Args:  cobra.RangeArgs(1, 2),
		RunE: run(func(cmd *cobra.Command, args []string, e *env) error {
			var desc *string
			if !clear && len(args) == 2 {
				desc = &args[1]
			}
			if err := e.actions.UpdateDescription(cmd.Context(), args[0], desc); err != nil {
				return err
			}
			printFocused(cmd, e)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&clear, "clear", false, "clear the description")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <list-id>",
		Short: "Delete a list for every member",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, e *env) error {
			if err := e.actions.DeleteList(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Println("list deleted")
			return nil
		}),
	}
}

func newShareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share <list-id> <email>",
		Short: "Add another account to a list by email",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string, e *env) error {
			if err := e.actions.AddUser(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			cmd.Printf("shared with %s\n", args[1])
			return nil
		}),
	}
}

func newUnshareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unshare <list-id> <user-id>",
		Short: "Remove a member from a list",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string, e *env) error {
			if err := e.actions.RemoveUser(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			cmd.Println("member removed")
			return nil
		}),
	}
}
