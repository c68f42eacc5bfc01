package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/examstack/examstack/internal/db"
	"github.com/examstack/examstack/internal/scores"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "List all submitted score records",
	RunE: func(cmd *cobra.Command, args []string) error {
		driver, _ := cmd.Flags().GetString("driver")
		dsn, _ := cmd.Flags().GetString("dsn")

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		dbh, err := db.Open(ctx, db.Driver(driver), dsn)
		if err != nil {
			return fmt.Errorf("db open failed: %w", err)
		}
		defer dbh.Close()

		sink := scores.NewSQLSink(dbh, driver)
		recs, err := sink.ListAll(ctx)
		if err != nil {
			return err
		}
		for _, r := range recs {
			fmt.Printf("%s\t%s\t%d\t%s\n", r.Name, r.CandidateID, r.Score, r.SubmittedAt.Format(time.RFC3339))
		}
		sum := scores.Summarize(recs)
		fmt.Printf("-- %d records, mean %.1f, max %d, min %d\n", sum.Count, sum.Mean, sum.Max, sum.Min)
		return nil
	},
}

func init() {
	scoresCmd.Flags().String("driver", "sqlite", "database driver (sqlite|postgres|mysql)")
	scoresCmd.Flags().String("dsn", "", "database DSN")
}
