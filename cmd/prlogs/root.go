package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/prlogs/internal/app"
)

type rootFlags struct {
	opts  app.Options
	debug bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "prlogs [<PR URL> | <PR number>] [flags]",
		Short: "Browse the CI build logs of a GitHub pull request",
		Args:  cobra.MaximumNArgs(1),
		Example: `  # logs of PR 767 in the current repository
  prlogs 767

  # look up via a full URL to a GitHub PR
  prlogs https://github.com/five82/spindle/pull/767

  # another repository
  prlogs -R five82/spindle 767

  # reopen a saved snapshot and reload it whenever it changes
  prlogs --file pr-767.yaml --watch`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(flags.debug, flags.opts.ConfigPath)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.opts
			if len(args) > 0 {
				opts.Target = args[0]
			}
			return app.Run(cmd.Context(), opts)
		},
	}
	root.Version = versionString()
	root.SetVersionTemplate("prlogs {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.opts.Repo, "repo", "R", "", "[HOST/]OWNER/REPO   select another repository")
	pf.StringVar(&flags.opts.ConfigPath, "config", "", "config file (default ~/.config/prlogs/config.toml)")
	pf.BoolVar(&flags.debug, "debug", false, "write debug output to the log file")

	f := root.Flags()
	f.StringVarP(&flags.opts.File, "file", "f", "", "show a snapshot file instead of fetching from GitHub")
	f.BoolVarP(&flags.opts.Watch, "watch", "w", false, "reload the snapshot file when it changes")

	root.AddCommand(newDumpCmd(flags), newVersionCmd())
	return root
}

func newDumpCmd(flags *rootFlags) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "dump <PR URL | PR number> -o <file>",
		Short: "Save a pull request's build logs to a snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.opts
			opts.Target = args[0]
			return app.Dump(cmd.Context(), opts, out)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "snapshot file to write")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
