package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/beatdodge/internal/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Work with YAML level files",
	Long: `Inspect YAML level files before playing them.

Examples:
  beatdodge levels list ./levels
  beatdodge levels validate ./levels`,
}

var levelsListCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List level IDs found in a directory",
	Args:  cobra.MaximumNArgs(1),
	Run:   runLevelsList,
}

var levelsValidateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check every level file in a directory",
	Long: `Parse every level file under the directory and report each one that
fails. Exits with status 1 if any file is invalid.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLevelsValidate,
}

func init() {
	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsValidateCmd)
}

func levelsDirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return flagLevelsDir
}

func runLevelsList(_ *cobra.Command, args []string) {
	dir := levelsDirArg(args)
	ids, err := levels.NewLoader(dir).ListIDs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(ids) == 0 {
		fmt.Printf("No level files in %s.\n", dir)
		return
	}
	for _, id := range ids {
		fmt.Println(id)
	}
}

func runLevelsValidate(_ *cobra.Command, args []string) {
	dir := levelsDirArg(args)
	loader := levels.NewLoader(dir)

	problems, err := loader.Validate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	all, err := loader.LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, lvl := range all {
		fmt.Printf("ok    %s (%s, %d events)\n", lvl.FilePath, lvl.ID, len(lvl.Events))
	}
	for _, p := range problems {
		fmt.Printf("FAIL  %s: %v\n", p.Path, p.Err)
	}

	if len(problems) > 0 {
		os.Exit(1)
	}
}
