// Command rosterview filters a roster file and prints the matching rows.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"roster-lookup-go/parser"
	"roster-lookup-go/render"
	"roster-lookup-go/roster"
)

type options struct {
	day         string
	class       string
	classNo     string
	listClasses bool
	verbose     bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "rosterview FILE",
		Short: "Filter a student roster by day or by class and class number",
		Long: `rosterview reads a CSV (or .xlsx) roster with the columns
Day, Name, Class, ClassNo and Activity, and prints the rows matching either
--day or the --class/--class-no pair.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.verbose {
				log.SetOutput(io.Discard)
			}
			return run(args[0], opts, stdout, stderr)
		},
	}

	cmd.Flags().StringVar(&opts.day, "day", "", "show rows for this day")
	cmd.Flags().StringVar(&opts.class, "class", "", "class to look up (needs --class-no)")
	cmd.Flags().StringVar(&opts.classNo, "class-no", "", "class number to look up (needs --class)")
	cmd.Flags().BoolVar(&opts.listClasses, "classes", false, "list the classes in the roster")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log diagnostics to stderr")
	cmd.MarkFlagsMutuallyExclusive("day", "class")
	cmd.MarkFlagsMutuallyExclusive("day", "class-no")
	return cmd
}

func run(path string, opts *options, stdout, stderr io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening file: %w", err)
	}
	defer f.Close()

	term := render.NewTerminal(stdout, stderr)
	board := roster.NewBoard(roster.NewSession(path), parser.ForFilename(path), term)
	count, err := board.Upload(f)
	if err != nil {
		return err
	}
	fmt.Fprintf(stderr, "%d rows loaded\n", count)

	if opts.listClasses {
		fmt.Fprintln(stdout, strings.Join(board.Session.ClassIndex(), "\n"))
	}

	switch {
	case opts.day != "":
		_, err = board.ChangeDay(opts.day)
	case opts.class != "" || opts.classNo != "":
		_, err = board.FindStudent(opts.class, opts.classNo)
	}
	return err
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		var verr *roster.ValidationError
		var perr *roster.ParseError
		if !errors.As(err, &verr) && !errors.As(err, &perr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
