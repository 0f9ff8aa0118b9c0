package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"ivy-crm-be/pkg/ai/router"
	"ivy-crm-be/pkg/command"
	"ivy-crm-be/pkg/store"
)

// Offline replay of the routing engine against a canned roster. Feed it
// utterances on stdin, or run the built-in cases with no input.

var defaultCases = []string{
	"call the applicant",
	"update the date of birth to 25/09/1989",
	"why are these applicants at risk?",
	"show me the pipeline",
	"what documents are missing for the visa?",
	"book an interview with alex",
}

func main() {
	ctx := store.Context{
		SelectedApplicantID: "alex_thompson_id",
		HasPhoneNumber:      true,
		ActiveView:          "pipeline",
		Roster: []store.Applicant{
			{ID: "alex_thompson_id", FullName: "Alex Thompson", Programme: "MSc Finance", Stage: "interview"},
			{ID: "maria_garcia_id", FullName: "Maria Garcia", Programme: "MBA", Stage: "offer"},
		},
	}

	engine := router.NewEngine(command.NewRegistry())

	queries := defaultCases
	if stat, _ := os.Stdin.Stat(); stat.Mode()&os.ModeCharDevice == 0 {
		queries = nil
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				queries = append(queries, line)
			}
		}
	}

	header := color.New(color.FgCyan, color.Bold)
	header.Println("=== Assistant Routing Replay ===")

	for _, query := range queries {
		replay(engine, query, ctx)
	}
}

func replay(engine *router.Engine, query string, ctx store.Context) {
	result := engine.Decide(query, ctx)

	fmt.Println()
	color.New(color.Bold).Printf("USER: %s\n", query)

	typeColor := color.New(color.FgYellow)
	switch result.Type {
	case router.ResultCommand:
		typeColor = color.New(color.FgGreen)
	case router.ResultRAG:
		typeColor = color.New(color.FgMagenta)
	}
	typeColor.Printf("  type:       %s (%.2f)\n", result.Type, result.Confidence)

	fmt.Printf("  domain:     %s (%.2f)\n", result.Domain.Domain, result.Domain.Confidence)
	fmt.Printf("  intent:     %s (%.2f)\n", result.Intent.Primary, result.Intent.Confidence)
	if result.CommandID != "" {
		fmt.Printf("  command:    %s\n", result.CommandID)
	}
	if result.Action != nil {
		fmt.Printf("  action:     %s -> %s %v\n", result.Action.Type, result.Action.Target, result.Action.Payload)
	}
	if result.RagQuery != "" {
		fmt.Printf("  rag query:  %s\n", result.RagQuery)
	}
	color.New(color.Faint).Printf("  reasoning:  %s\n", result.Reasoning)
}
