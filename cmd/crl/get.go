package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single letter by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)
	defer db.Close()

	letter, err := db.GetByID(args[0])
	if err != nil {
		exitWithError(ExitError, "loading letter: %v", err)
	}
	if letter == nil {
		exitWithError(ExitDataError, "letter not found: %s", args[0])
	}

	if humanOutput {
		fmt.Printf("%s\n", letter.ID)
		fmt.Printf("  Company: %s\n", letter.CompanyName)
		if letter.ProductName != "" {
			fmt.Printf("  Product: %s\n", letter.ProductName)
		}
		if len(letter.ApplicationNumber) > 0 {
			fmt.Printf("  Application: %s (%s)\n",
				strings.Join(letter.ApplicationNumber, ", "), letter.ApplicationType)
		}
		if letter.TherapeuticCategory != "" {
			fmt.Printf("  Category: %s\n", letter.TherapeuticCategory)
		}
		if letter.DeficiencyReason != "" {
			fmt.Printf("  Deficiency: %s\n", letter.DeficiencyReason)
		}
		fmt.Printf("  Date: %s  Status: %s\n", letter.LetterDate, letter.ApprovalStatus)
		if letter.Summary != "" {
			fmt.Printf("\n%s\n", letter.Summary)
		}
		return nil
	}

	return outputJSON(letter)
}
