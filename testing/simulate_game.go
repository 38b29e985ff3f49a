package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/kastle/internal/config"
	"github.com/tatianab/kastle/internal/engine"
	"github.com/tatianab/kastle/internal/hclworld"
	"github.com/tatianab/kastle/internal/models"
	"github.com/tatianab/kastle/internal/sample"
	"google.golang.org/api/option"
)

const maxTurns = 15

// playthrough is the minimal state needed to walk a compiled world.
type playthrough struct {
	world     *models.GameConfiguration
	room      string
	inventory []string
	taken     map[string]bool
	history   []string
}

// Simulates a play session of a compiled world: descriptions are filled in
// by the engine, then a second model plays the world until it wins or runs
// out of turns. Pass an .hcl path to play something other than the demo.
func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.RequireGemini(); err != nil {
		log.Fatal(err)
	}

	world := sample.World()
	if len(os.Args) > 1 {
		world, err = hclworld.NewLoader().Load(ctx, os.Args[1])
		if err != nil {
			log.Fatalf("Failed to load world: %v", err)
		}
	}

	// 1. Fill in missing descriptions
	fmt.Println("--- Step 1: Enriching world ---")
	eng, err := engine.NewEngine(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	defer eng.Close()
	world, err = eng.FillDescriptions(ctx, world)
	if err != nil {
		log.Fatalf("Failed to enrich world: %v", err)
	}

	// Initialize the Player LLM
	playerClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Fatalf("Failed to create player client: %v", err)
	}
	defer playerClient.Close()
	playerModel := playerClient.GenerativeModel(cfg.GeminiModel)

	// 2. Play the game
	fmt.Println("--- Step 2: Playing ---")
	if world.Preface != nil {
		fmt.Printf("%s\n\n", *world.Preface)
	}
	p := &playthrough{world: world, room: world.InitialRoomID, taken: map[string]bool{}}
	for turn := 1; turn <= maxTurns; turn++ {
		fmt.Printf("--- Turn %d ---\n", turn)
		fmt.Println(p.look())

		action := getPlayerAction(ctx, playerModel, p)
		fmt.Printf("Player Action: %s\n", action)

		outcome := p.apply(action)
		fmt.Printf("Outcome: %s\n", outcome)
		fmt.Printf("Inventory: %v\n\n", p.inventory)
		p.history = append(p.history, fmt.Sprintf("Action: %s\nOutcome: %s", action, outcome))

		if p.won() {
			fmt.Println("Game Ended: Player Won!")
			return
		}
	}
	fmt.Println("Game Ended: out of turns.")
}

func (p *playthrough) look() string {
	r, ok := p.world.Room(p.room)
	if !ok {
		return fmt.Sprintf("You are nowhere (room %q is not declared).", p.room)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.Name)
	if r.Description != nil {
		fmt.Fprintf(&b, "%s\n", *r.Description)
	}
	for _, id := range r.Items {
		if i, ok := p.world.Item(id); ok && !p.taken[id] {
			fmt.Fprintf(&b, "You see: %s\n", i.Name)
		}
	}
	for _, id := range r.Characters {
		if c, ok := p.world.Character(id); ok {
			fmt.Fprintf(&b, "Here is: %s\n", c.Name)
		}
	}
	r.Links.Each(func(side string, d models.Direction) {
		fmt.Fprintf(&b, "Exit %s (%s)\n", side, strings.ToLower(d.State.State.String()))
	})
	return strings.TrimRight(b.String(), "\n")
}

// apply understands "go DIR", "take THING" and "talk PERSON".
func (p *playthrough) apply(action string) string {
	verb, arg, _ := strings.Cut(strings.ToLower(strings.TrimSpace(action)), " ")
	arg = strings.TrimSpace(arg)
	r, ok := p.world.Room(p.room)
	if !ok {
		return "There is nothing here."
	}

	switch verb {
	case "go":
		var target *models.Direction
		r.Links.Each(func(side string, d models.Direction) {
			if side == arg {
				target = &d
			}
		})
		if target == nil {
			return "You cannot go that way."
		}
		if target.State.State != models.LinkOpen && !p.ownsAny(target.State.Triggers) {
			return fmt.Sprintf("The way %s is %s.", arg, strings.ToLower(target.State.State.String()))
		}
		p.room = target.RoomID
		return "You go " + arg + "."

	case "take":
		for _, id := range r.Items {
			i, ok := p.world.Item(id)
			if !ok || p.taken[id] || !matches(i.Matchers, i.Name, arg) {
				continue
			}
			if !i.Storable() {
				return "You cannot take the " + i.Name + "."
			}
			p.taken[id] = true
			p.inventory = append(p.inventory, id)
			return "You take the " + i.Name + "."
		}
		return "You do not see that here."

	case "talk":
		for _, id := range r.Characters {
			c, ok := p.world.Character(id)
			if !ok || !matches(c.Matchers, c.Name, arg) {
				continue
			}
			if c.Dialogue == nil {
				return c.Name + " says nothing."
			}
			return p.converse(c)
		}
		return "There is nobody like that here."
	}
	return "Nothing happens."
}

// converse follows the first answer of every question and collects rewards.
func (p *playthrough) converse(c models.Character) string {
	var lines []string
	next := c.Dialogue.FirstQuestion
	visited := map[string]bool{}
	for next != models.DefaultQuestionID && !visited[next] {
		visited[next] = true
		idx := slices.IndexFunc(c.Dialogue.Questions, func(q models.Question) bool { return q.ID == next })
		if idx < 0 {
			break
		}
		q := c.Dialogue.Questions[idx]
		lines = append(lines, fmt.Sprintf("%s: %s", c.Name, q.Text))
		if q.Reward != nil && !slices.Contains(p.inventory, *q.Reward) {
			p.inventory = append(p.inventory, *q.Reward)
			p.taken[*q.Reward] = true
			lines = append(lines, "You receive "+*q.Reward+".")
		}
		if len(q.Answers) == 0 {
			break
		}
		lines = append(lines, "You: "+q.Answers[0].Text)
		next = q.Answers[0].NextQuestion
	}
	return strings.Join(lines, "\n")
}

func (p *playthrough) ownsAny(ids []string) bool {
	for _, id := range ids {
		if slices.Contains(p.inventory, id) {
			return true
		}
	}
	return false
}

func (p *playthrough) won() bool {
	w := p.world.WinningConditions
	if w == nil {
		return false
	}
	if w.PlayerOwns != nil && slices.Contains(p.inventory, *w.PlayerOwns) {
		return true
	}
	return w.PlayerEnters != nil && p.room == *w.PlayerEnters
}

func matches(matchers []string, name, arg string) bool {
	if strings.EqualFold(name, arg) {
		return true
	}
	for _, m := range matchers {
		if strings.EqualFold(m, arg) {
			return true
		}
	}
	return false
}

func getPlayerAction(ctx context.Context, model *genai.GenerativeModel, p *playthrough) string {
	prompt := fmt.Sprintf(`You are playing a text-based adventure game.
You can only use these actions: "go north|south|east|west", "take <thing>", "talk <person>".

Where you are:
%s

Inventory: %v

History:
%s

What is your next action? Return ONLY the action string, no extra commentary.`,
		p.look(),
		p.inventory,
		strings.Join(p.history, "\n"),
	)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "look"
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "look"
	}
	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
}
