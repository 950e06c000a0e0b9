package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"listly/internal/client/actions"
	"listly/internal/client/api"
	clientconfig "listly/internal/client/config"
	"listly/internal/client/state"
	"listly/internal/client/storage"
	list "listly/internal/list/models"
)

var (
	flagConfig string
	flagServer string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "listctl",
		Short:         "Manage shared to-do lists from the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default ~/.listly/config.toml)")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "server base URL (overrides config)")

	root.AddCommand(
		newRegisterCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newListsCmd(),
		newShowCmd(),
		newCreateCmd(),
		newDescCmd(),
		newDeleteCmd(),
		newShareCmd(),
		newUnshareCmd(),
		newAddCmd(),
		newEditCmd(),
		newCompleteCmd(),
		newIncompleteCmd(),
		newDueCmd(),
		newUndueCmd(),
		newRemoveCmd(),
	)
	return root
}

// env bundles everything a command needs for one invocation.
type env struct {
	actions *actions.Actions
	store   *state.Store
	tokens  *storage.TokenStore
}

func (e *env) close() {
	if e.tokens != nil {
		_ = e.tokens.Close()
	}
}

// newEnv loads config, opens the session store, and restores any persisted
// token into the state store.
func newEnv() (*env, error) {
	path := flagConfig
	if path == "" {
		var err error
		path, err = clientconfig.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	cfg, err := clientconfig.Load(path)
	if err != nil {
		return nil, err
	}
	if flagServer != "" {
		cfg.ServerURL = flagServer
	}

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	tokens, err := storage.OpenTokenStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	store := state.NewStore(state.WithTokenStorage(tokens))
	if token, err := tokens.LoadToken(); err == nil && token != "" {
		store.RestoreToken(token)
	}

	apiClient := api.New(cfg.ServerURL, api.WithHTTPClient(&http.Client{
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}))
	return &env{
		actions: actions.New(apiClient, store),
		store:   store,
		tokens:  tokens,
	}, nil
}

// run wraps a command body with env setup and teardown.
func run(fn func(cmd *cobra.Command, args []string, e *env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()
		return fn(cmd, args, e)
	}
}

func printList(cmd *cobra.Command, l *list.List) {
	cmd.Printf("%s  %s\n", l.ID, l.Name)
	if l.Description != "" {
		cmd.Printf("  %s\n", l.Description)
	}
	for _, item := range l.Items {
		mark := " "
		if item.CompletedDate != nil {
			mark = "x"
		}
		line := fmt.Sprintf("  [%s] %d. %s (%s)", mark, item.Order, item.Text, item.ID)
		if item.DueDate != nil {
			line += " due " + item.DueDate.Format("2006-01-02")
		}
		cmd.Println(line)
	}
}

func printFocused(cmd *cobra.Command, e *env) {
	if l := e.store.Lists().List; l != nil {
		printList(cmd, l)
	}
}
