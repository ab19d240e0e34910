package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"lektor/internal/config"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Manage the user dictionary",
}

var dictAddCmd = &cobra.Command{
	Use:   "add <word>...",
	Short: "Accept words as correctly spelled",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := dictEnv(cmd)
		if err != nil {
			return err
		}
		for _, word := range args {
			added, err := e.store.Add(word)
			if err != nil {
				return fmt.Errorf("add %q: %w", word, err)
			}
			e.provider.AddWord(word)
			if added {
				fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", word)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already in the dictionary\n", word)
			}
		}
		return nil
	},
}

var dictRemoveCmd = &cobra.Command{
	Use:     "remove <word>...",
	Aliases: []string{"rm"},
	Short:   "Forget previously accepted words",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := dictEnv(cmd)
		if err != nil {
			return err
		}
		removed := false
		for _, word := range args {
			ok, err := e.store.Remove(word)
			if err != nil {
				return fmt.Errorf("remove %q: %w", word, err)
			}
			if ok {
				removed = true
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", word)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is not in the dictionary\n", word)
			}
		}
		// загруженный словарь уже содержит удалённые слова
		if removed {
			e.provider.Reset()
		}
		return nil
	},
}

var dictListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the user dictionary in Slovenian alphabetical order",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := dictEnv(cmd)
		if err != nil {
			return err
		}
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		words := e.store.List()
		switch format {
		case "json":
			if words == nil {
				words = []string{}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(words)
		case "plain":
			for _, w := range words {
				fmt.Fprintln(cmd.OutOrStdout(), w)
			}
			return nil
		default:
			return fmt.Errorf("unsupported format %q (must be plain or json)", format)
		}
	},
}

var dictPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the location of the user dictionary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := dictEnv(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), e.store.Path())
		return nil
	},
}

func init() {
	dictListCmd.Flags().String("format", "plain", "output format (plain|json)")
	dictCmd.AddCommand(dictAddCmd, dictRemoveCmd, dictListCmd, dictPathCmd)
}

func dictEnv(cmd *cobra.Command) (*env, error) {
	e, err := newEnv(cmd, ".")
	if err != nil {
		return nil, err
	}
	if e.store == nil {
		return nil, fmt.Errorf("no user dictionary: set [spelling].user in %s", config.FileName)
	}
	return e, nil
}
