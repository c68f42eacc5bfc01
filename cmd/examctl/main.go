package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "examctl",
	Short: "Operator tooling for the examstack quiz service",
	Long:  "examctl inspects question banks, previews sampled exams and lists submitted scores.",
}

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(scoresCmd)
}
