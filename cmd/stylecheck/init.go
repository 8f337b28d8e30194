package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stylecheck/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a stylecheck.toml with default settings",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing stylecheck.toml")
	initCmd.Flags().Bool("stdout", false, "print the template instead of writing a file")
}

func runInit(cmd *cobra.Command, args []string) error {
	toStdout, _ := cmd.Flags().GetBool("stdout")
	if toStdout {
		return config.WriteTemplate(cmd.OutOrStdout())
	}
	dir := "."
	if len(args) > 0 && args[0] != "" {
		dir = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")
	path, err := config.Init(dir, force)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	return nil
}
