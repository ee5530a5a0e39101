package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Streams are the writers the commands print to.
type Streams struct {
	Out io.Writer
	Err io.Writer
}

type options struct {
	configPath string
	notesDir   string
	file       string
	debug      bool
	noColor    bool
}

// NewRootCommand builds the mdt command tree. Running mdt without a
// subcommand prints the status report.
func NewRootCommand(version string, streams Streams) *cobra.Command {
	if streams.Out == nil {
		streams.Out = os.Stdout
	}
	if streams.Err == nil {
		streams.Err = os.Stderr
	}

	opts := &options{}

	root := &cobra.Command{
		Use:   "mdt",
		Short: "mdt - markdown tag status",
		Long: `mdt scans a directory of markdown notes for tagged headings such as
"# TODO: buy milk" and prints every item, together with any list written
directly beneath the heading.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd.Context(), opts, streams)
		},
	}
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $HOME/.config/mdt/mdt.yaml)")
	flags.StringVar(&opts.notesDir, "notes-dir", "", "notes directory, overrides the config file")
	flags.StringVarP(&opts.file, "file", "f", "", "report a single file, relative to the notes directory or absolute")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable coloured labels")

	root.AddCommand(newStatusCommand(opts, streams))
	return root
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := NewRootCommand(version, Streams{Out: os.Stdout, Err: os.Stderr})
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
