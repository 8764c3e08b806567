package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"evodex/internal/record"
)

var catchCmd = &cobra.Command{
	Use:     "catch <familyID>...",
	Short:   `Mark family IDs (e.g. "K 001") as caught`,
	Args:    cobra.MinimumNArgs(1),
	Example: `  dexctl catch "K 001" "K 004"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCaught(args, true)
	},
}

var releaseCmd = &cobra.Command{
	Use:   "release <familyID>...",
	Short: "Unmark family IDs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCaught(args, false)
	},
}

func setCaught(ids []string, caught bool) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := s.SetCaught(id, caught); err != nil {
			_ = s.Close()
			return err
		}
	}
	if err := s.Close(); err != nil {
		return err
	}
	fmt.Printf("%d caught\n", len(s.Caught()))
	return nil
}

var caughtCmd = &cobra.Command{
	Use:   "caught",
	Short: "Print the local caught list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		if name := s.Name(); name != "" {
			fmt.Printf("name: %s\n", name)
		}
		for _, id := range s.Caught() {
			fmt.Println(id)
		}
		return nil
	},
}

var nameCmd = &cobra.Command{
	Use:   "name <name>",
	Short: "Set the name used for remote save and load",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		if err := s.SetName(args[0]); err != nil {
			_ = s.Close()
			return err
		}
		return s.Close()
	},
}

var saveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Back up the caught list to the server",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		name := s.Name()
		if len(args) == 1 {
			name = args[0]
		}

		ctx, cancel := timeoutCtx()
		defer cancel()
		if err := s.SaveRemote(ctx, name); err != nil {
			return describe(err)
		}
		if err := s.SetName(strings.TrimSpace(name)); err != nil {
			return err
		}
		fmt.Printf("saved %d caught under %q\n", len(s.Caught()), strings.TrimSpace(name))
		return nil
	},
}

var loadCmd = &cobra.Command{
	Use:   "load [name]",
	Short: "Replace the local caught list with the server copy",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		name := s.Name()
		if len(args) == 1 {
			name = args[0]
		}

		ctx, cancel := timeoutCtx()
		defer cancel()
		if err := s.LoadRemote(ctx, name); err != nil {
			return describe(err)
		}
		fmt.Printf("loaded %d caught for %q\n", len(s.Caught()), s.Name())
		return nil
	},
}

// describe turns remote errors into messages for the terminal.
func describe(err error) error {
	var ve *record.ValidationError
	switch {
	case errors.As(err, &ve):
		return fmt.Errorf("name %s", ve.Reason)
	case errors.Is(err, record.ErrNotFound):
		return errors.New("no saved record under that name")
	default:
		return err
	}
}
