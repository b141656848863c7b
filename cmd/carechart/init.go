package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avaldes/carechart/internal/carechart/config"
	"github.com/avaldes/carechart/internal/carechart/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the keyspace and tables",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg := config.Get().Cluster

	// keyspace creation needs a cluster-level session
	s, err := store.Connect(cfg.Hosts, "", cfg.Timeout)
	if err != nil {
		return err
	}
	if err := store.EnsureKeyspace(s, cfg.Keyspace, cfg.ReplicationFactor); err != nil {
		s.Close()
		return err
	}
	s.Close()

	s, err = store.Connect(cfg.Hosts, cfg.Keyspace, cfg.Timeout)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := store.EnsureTables(s); err != nil {
		return err
	}

	fmt.Printf("Keyspace %s ready.\n", cfg.Keyspace)
	return nil
}
