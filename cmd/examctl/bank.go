package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/examstack/examstack/internal/bank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Question bank commands",
}

var bankLintCmd = &cobra.Command{
	Use:   "lint <file>",
	Short: "Load a bank file and report per-type counts and discarded rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, stats, err := bank.Load(args[0])
		if err != nil {
			return err
		}
		var singles, multiples, trueFalses int
		for _, q := range pool {
			switch bank.Classify(q) {
			case bank.TypeTrueFalse:
				trueFalses++
			case bank.TypeSingle:
				singles++
			case bank.TypeMultiple:
				multiples++
			}
		}
		fmt.Printf("%s: %d rows, %d discarded (empty answer)\n", args[0], stats.Rows, stats.Discarded)
		fmt.Printf("  single:     %d\n", singles)
		fmt.Printf("  multiple:   %d\n", multiples)
		fmt.Printf("  true/false: %d\n", trueFalses)
		return nil
	},
}

func init() {
	bankCmd.AddCommand(bankLintCmd)
}
