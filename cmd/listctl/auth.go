package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword prompts on stderr and reads without echo when stdin is a
// terminal; otherwise it falls back to the flag value.
func readPassword(cmd *cobra.Command, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	cmd.PrintErr("Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	cmd.PrintErrln()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func newRegisterCmd() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and start a session",
		RunE: run(func(cmd *cobra.Command, _ []string, e *env) error {
			pw, err := readPassword(cmd, password)
			if err != nil {
				return err
			}
			if err := e.actions.Register(cmd.Context(), name, email, pw); err != nil {
				return err
			}
			cmd.Printf("registered %s\n", e.store.Auth().User.Email)
			return nil
		}),
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start a session",
		RunE: run(func(cmd *cobra.Command, _ []string, e *env) error {
			pw, err := readPassword(cmd, password)
			if err != nil {
				return err
			}
			if err := e.actions.Login(cmd.Context(), email, pw); err != nil {
				return err
			}
			cmd.Printf("logged in as %s\n", e.store.Auth().User.Email)
			return nil
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and revoke the token",
		RunE: run(func(cmd *cobra.Command, _ []string, e *env) error {
			if err := e.actions.Logout(cmd.Context()); err != nil {
				// Local state is already cleared; the token will still
				// expire server-side.
				cmd.PrintErrf("warning: server-side revocation failed: %v\n", err)
			}
			cmd.Println("logged out")
			return nil
		}),
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current account",
		RunE: run(func(cmd *cobra.Command, _ []string, e *env) error {
			if err := e.actions.LoadUser(cmd.Context()); err != nil {
				return err
			}
			user := e.store.Auth().User
			cmd.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.ID)
			return nil
		}),
	}
}
