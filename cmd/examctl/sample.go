package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/examstack/examstack/internal/bank"
	"github.com/examstack/examstack/internal/exam"
)

var sampleCmd = &cobra.Command{
	Use:   "sample <file>",
	Short: "Preview the exam sampled from a bank for given counts and seed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, _, err := bank.Load(args[0])
		if err != nil {
			return err
		}
		single, _ := cmd.Flags().GetInt("single")
		multiple, _ := cmd.Flags().GetInt("multiple")
		trueFalse, _ := cmd.Flags().GetInt("true-false")
		seed, _ := cmd.Flags().GetInt64("seed")

		s := exam.New(pool, exam.Counts{Single: single, Multiple: multiple, TrueFalse: trueFalse}, seed)
		fmt.Printf("%d questions (single: %d, multiple: %d, true/false: %d), seed %d\n",
			len(s.Questions), s.BreakSingle, s.BreakMultiple-s.BreakSingle, len(s.Questions)-s.BreakMultiple, seed)
		for i, q := range s.Questions {
			fmt.Printf("%3d [%-10s] %s\n", i+1, bank.Classify(q), q.Stem)
		}
		return nil
	},
}

func init() {
	sampleCmd.Flags().Int("single", 30, "single-choice question count")
	sampleCmd.Flags().Int("multiple", 20, "multiple-choice question count")
	sampleCmd.Flags().Int("true-false", 10, "true/false question count")
	sampleCmd.Flags().Int64("seed", 42, "sampling seed")
}
