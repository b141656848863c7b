package main

import (
	"flag"
	"fmt"
	"os"

	loadr "github.com/avaldes/carechart/internal/loadr"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		genCmd := flag.NewFlagSet("generate", flag.ExitOnError)
		configPath := genCmd.String("config", "", "Path to config file")
		genCmd.Parse(os.Args[2:])
		if *configPath == "" {
			fmt.Println("Error: --config is required for 'generate'")
			genCmd.Usage()
			os.Exit(1)
		}
		fmt.Printf("Running 'generate' with config: %s\n", *configPath)
		loadr.Generate(configPath)

	case "load":
		loadCmd := flag.NewFlagSet("load", flag.ExitOnError)
		configPath := loadCmd.String("config", "", "Path to config file")
		loadCmd.Parse(os.Args[2:])
		if *configPath == "" {
			fmt.Println("Error: --config is required for 'load'")
			loadCmd.Usage()
			os.Exit(1)
		}
		fmt.Printf("Running 'load' with config: %s\n", *configPath)
		loadr.Load(configPath)

	case "help", "--help", "-h":
		printHelp()
	default:
		fmt.Printf("Unknown subcommand: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`Usage: loadr <subcommand> --config <path>`)
	fmt.Println()
	fmt.Println("Subcommands:")
	fmt.Println("  generate --config <path>   Generate CSV data files")
	fmt.Println("  load     --config <path>   Load CSV data into the cluster")
	fmt.Println("  help                       Show this help message")
}
