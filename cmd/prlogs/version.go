package main

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	styleBrand   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "30", Dark: "45"})
	styleVersion = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "40"})
	styleLabel   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "242", Dark: "240"})
)

func versionString() string {
	return fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Show version information",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "  %s %s\n", styleBrand.Render("prlogs"), styleVersion.Render(version))
			fmt.Fprintf(w, "    %s  %s\n", styleLabel.Render("Commit"), commit)
			fmt.Fprintf(w, "    %s   %s\n", styleLabel.Render("Built"), date)
			fmt.Fprintf(w, "    %s %s\n", styleLabel.Render("OS/Arch"), runtime.GOOS+"/"+runtime.GOARCH)
			fmt.Fprintf(w, "    %s      %s\n", styleLabel.Render("Go"), runtime.Version())
		},
	}
}
