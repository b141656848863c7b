package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/avaldes/carechart/internal/carechart/config"
	"github.com/avaldes/carechart/internal/carechart/shell"
	"github.com/avaldes/carechart/internal/carechart/store"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive login and menus",
	RunE:  runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	cfg := config.Get().Cluster

	s, err := store.Connect(cfg.Hosts, cfg.Keyspace, cfg.Timeout)
	if err != nil {
		return err
	}
	defer s.Close()

	return shell.New(s, os.Stdin, os.Stdout).Run()
}
