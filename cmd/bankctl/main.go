package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/quizforge/quizd/internal/bank"
)

func main() {
	input := flag.String("input", "questions_bank.json", "Path to the question-bank JSON file")
	stats := flag.Bool("stats", false, "Print bank statistics after validating")
	dump := flag.Bool("dump", false, "Print the normalized questions as JSON")

	flag.Parse()

	b, err := bank.Load(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK: %s (%d questions)\n", *input, b.Len())

	if *stats {
		printStats(b)
	}
	if *dump {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(b.Questions()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printStats(b *bank.Bank) {
	var single, multi, sims, noExplanation int
	for _, q := range b.Questions() {
		switch {
		case q.Simulation:
			sims++
		case q.Key.Mode == bank.ModeMulti:
			multi++
		default:
			single++
		}
		if !q.Simulation && q.Explanation == "" {
			noExplanation++
		}
	}
	fmt.Printf("  single-choice:  %d\n", single)
	fmt.Printf("  multi-choice:   %d\n", multi)
	fmt.Printf("  simulations:    %d\n", sims)
	fmt.Printf("  gradable without explanation: %d\n", noExplanation)
}
