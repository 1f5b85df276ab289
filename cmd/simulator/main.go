package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/asterah/chaos-full-nightmare/internal/engine"
	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Global flags
	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "run":
		runCmd(apiURL, args)
	case "rules":
		rulesCmd(apiURL)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Calculator Simulator - Development tool for replaying card actions

USAGE:
  simulator <command> [options]

COMMANDS:
  run       Register a user, create a session and play a script of actions
  rules     Print the server's active point table
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:8080)

SCRIPT FORMAT (YAML):
  combatant: mika
  tier: 3
  steps:
    - {kind: add_card, cardType: monster}
    - {kind: duplicate_card, cardId: 5}
    - {kind: update_card, cardId: 4, state: epiphany}
    - {kind: remove_card, cardId: 1}
    - {kind: undo}

EXAMPLES:
  # Play the built-in demo against the default combatant
  simulator run

  # Play a script file
  simulator run --script=mika.yaml`)
}

// Script is a scripted series of slot actions.
type Script struct {
	Combatant string `yaml:"combatant"`
	Tier      int    `yaml:"tier"`
	Steps     []Step `yaml:"steps"`
}

type Step struct {
	Kind     string           `yaml:"kind"`
	CardType domain.CardType  `yaml:"cardType"`
	CardID   int              `yaml:"cardId"`
	State    domain.CardState `yaml:"state"`
	Type     domain.CardType  `yaml:"type"`
}

var demoScript = Script{
	Combatant: domain.DefaultCombatantID,
	Tier:      1,
	Steps: []Step{
		{Kind: string(engine.CommandAddCard), CardType: domain.CardTypeMonster},
		{Kind: string(engine.CommandDuplicateCard), CardID: 4},
		{Kind: string(engine.CommandDuplicateCard), CardID: 5},
		{Kind: string(engine.CommandRemoveCard), CardID: 1},
		{Kind: string(engine.CommandConvertCard), CardID: 6},
		{Kind: string(engine.CommandUpdateCard), CardID: 7, State: domain.CardStateDivineEpiphany},
		{Kind: "undo"},
	},
}

func runCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	scriptPath := fs.String("script", "", "YAML script file (default: built-in demo)")
	fs.Parse(args)

	script := demoScript
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		script = Script{}
		if err := yaml.Unmarshal(data, &script); err != nil {
			fmt.Printf("Error: invalid script: %v\n", err)
			os.Exit(1)
		}
	}
	if script.Tier == 0 {
		script.Tier = 1
	}

	client := NewAPIClient(apiURL)

	fmt.Println("=== Calculator Simulator ===")
	fmt.Println()

	fmt.Print("Creating user and session... ")
	_, token, err := client.RegisterUser("Simulator")
	if err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	detail, err := client.CreateSession(token, script.Tier, 1)
	if err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK (code: %s, limit: %d)\n", detail.Session.ShortCode, detail.Session.ScoreLimit)

	sessionID := detail.Session.ID
	view := &detail.Slots[0]
	if script.Combatant != "" && script.Combatant != view.Combatant.ID {
		view, err = client.ChangeCombatant(token, sessionID, 0, script.Combatant)
		if err != nil {
			fmt.Printf("Failed to select combatant: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("Combatant: %s (%d cards)\n\n", view.Combatant.Name, len(view.State.Cards))

	for i, step := range script.Steps {
		if step.Kind == "undo" {
			view, err = client.Undo(token, sessionID, 0)
			if err != nil {
				fmt.Printf("  [%d/%d] undo FAILED: %v\n", i+1, len(script.Steps), err)
				continue
			}
			fmt.Printf("  [%d/%d] %-40s score %4d\n", i+1, len(script.Steps), "Undo", view.Score)
			continue
		}

		cmd, err := step.command(view)
		if err != nil {
			fmt.Printf("  [%d/%d] %s FAILED: %v\n", i+1, len(script.Steps), step.Kind, err)
			continue
		}
		result, err := client.Apply(token, sessionID, 0, cmd)
		if err != nil {
			fmt.Printf("  [%d/%d] %s FAILED: %v\n", i+1, len(script.Steps), step.Kind, err)
			continue
		}
		view = &result.Slot
		fmt.Printf("  [%d/%d] %-40s %+4d  score %4d\n", i+1, len(script.Steps), result.Entry.Description, result.Entry.Points, view.Score)
	}

	fmt.Println()
	fmt.Println("=========================================")
	fmt.Printf("  FINAL SCORE: %d / %d", view.Score, view.ScoreLimit)
	if view.OverLimit {
		fmt.Print("  (OVER LIMIT)")
	}
	fmt.Println()
	fmt.Println("=========================================")
	fmt.Printf("  Session code: %s\n", detail.Session.ShortCode)
	fmt.Println()
}

// command turns a script step into an engine command. Card updates start
// from the card as the server last reported it.
func (s Step) command(view *SlotView) (engine.Command, error) {
	switch engine.CommandKind(s.Kind) {
	case engine.CommandAddCard:
		return engine.AddCard(s.CardType), nil
	case engine.CommandUpdateCard:
		for _, card := range view.State.Cards {
			if card.ID != s.CardID {
				continue
			}
			if s.State != "" {
				card.State = s.State
			}
			if s.Type != "" {
				card.Type = s.Type
			}
			return engine.UpdateCard(card), nil
		}
		return engine.Command{}, fmt.Errorf("card %d is not in the deck", s.CardID)
	case engine.CommandConvertCard:
		return engine.ConvertCard(s.CardID), nil
	case engine.CommandRemoveCard:
		return engine.RemoveCard(s.CardID), nil
	case engine.CommandDiscardCard:
		return engine.DiscardCard(s.CardID), nil
	case engine.CommandDuplicateCard:
		return engine.DuplicateCard(s.CardID), nil
	}
	return engine.Command{}, fmt.Errorf("unknown step kind %q", s.Kind)
}

func rulesCmd(apiURL string) {
	client := NewAPIClient(apiURL)

	rules, err := client.GetRules()
	if err != nil {
		fmt.Printf("Failed to get rules: %v\n", err)
		os.Exit(1)
	}

	var pretty map[string]interface{}
	json.Unmarshal(rules, &pretty)
	out, _ := yaml.Marshal(pretty)
	fmt.Print(string(out))
}
