package engine

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/kastle/internal/ctxlog"
	"github.com/tatianab/kastle/internal/models"
	"google.golang.org/api/option"
)

//go:embed prompts/describe_room.txt
var describeRoomPrompt string

//go:embed prompts/describe_item.txt
var describeItemPrompt string

//go:embed prompts/describe_character.txt
var describeCharacterPrompt string

var (
	roomTmpl      = template.Must(template.New("describe_room").Parse(describeRoomPrompt))
	itemTmpl      = template.Must(template.New("describe_item").Parse(describeItemPrompt))
	characterTmpl = template.Must(template.New("describe_character").Parse(describeCharacterPrompt))
)

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Engine writes descriptions for the rooms, items and characters an author
// left undescribed.
type Engine struct {
	gen   Generator
	close func()
}

// New returns an Engine backed by gen.
func New(gen Generator) *Engine {
	return &Engine{gen: gen, close: func() {}}
}

// NewEngine returns an Engine backed by a Gemini model.
func NewEngine(ctx context.Context, apiKey, modelName string) (*Engine, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &Engine{
		gen:   &gemini{model: client.GenerativeModel(modelName)},
		close: func() { client.Close() },
	}, nil
}

func (e *Engine) Close() {
	e.close()
}

type gemini struct {
	model *genai.GenerativeModel
}

func (g *gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return string(text), nil
}

// FillDescriptions returns a copy of cfg in which every room, item and
// character without a description has a generated one. cfg is not modified.
func (e *Engine) FillDescriptions(ctx context.Context, cfg *models.GameConfiguration) (*models.GameConfiguration, error) {
	logger := ctxlog.FromContext(ctx)
	out := cfg.Clone()

	world := ""
	if out.Metadata != nil && out.Metadata.Name != nil {
		world = *out.Metadata.Name
	}
	preface := ""
	if out.Preface != nil {
		preface = *out.Preface
	}

	names := map[string]string{}
	for _, i := range out.Items {
		names[i.ID] = i.Name
	}
	for _, c := range out.Characters {
		names[c.ID] = c.Name
	}

	filled := 0
	for idx := range out.Rooms {
		r := &out.Rooms[idx]
		if r.Description != nil {
			continue
		}
		var contents []string
		for _, id := range slices.Concat(r.Items, r.Characters) {
			contents = append(contents, nameOr(names, id))
		}
		var exits []string
		r.Links.Each(func(side string, d models.Direction) {
			exits = append(exits, fmt.Sprintf("%s (%s)", side, strings.ToLower(d.State.State.String())))
		})

		desc, err := e.describe(ctx, roomTmpl, struct {
			World, Preface, Name, Contents, Exits string
		}{world, preface, r.Name, strings.Join(contents, ", "), strings.Join(exits, ", ")})
		if err != nil {
			return nil, fmt.Errorf("describe room %s: %w", r.ID, err)
		}
		r.Description = &desc
		filled++
	}

	for idx := range out.Items {
		i := &out.Items[idx]
		if i.Description != nil {
			continue
		}
		desc, err := e.describe(ctx, itemTmpl, struct {
			World, Name string
			Storable    bool
		}{world, i.Name, i.Storable()})
		if err != nil {
			return nil, fmt.Errorf("describe item %s: %w", i.ID, err)
		}
		i.Description = &desc
		filled++
	}

	for idx := range out.Characters {
		c := &out.Characters[idx]
		if c.Description != nil {
			continue
		}
		desc, err := e.describe(ctx, characterTmpl, struct {
			World, Name, Opening string
		}{world, c.Name, openingLine(c.Dialogue)})
		if err != nil {
			return nil, fmt.Errorf("describe character %s: %w", c.ID, err)
		}
		c.Description = &desc
		filled++
	}

	logger.Info("Descriptions generated.", "count", filled)
	return out, nil
}

func (e *Engine) describe(ctx context.Context, tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	text, err := e.gen.Generate(ctx, buf.String())
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	text = strings.Trim(text, "\"")
	if text == "" {
		return "", fmt.Errorf("empty description generated")
	}
	return text, nil
}

func openingLine(d *models.Dialogue) string {
	if d == nil {
		return ""
	}
	for _, q := range d.Questions {
		if q.ID == d.FirstQuestion {
			return q.Text
		}
	}
	return ""
}

func nameOr(names map[string]string, id string) string {
	if n, ok := names[id]; ok {
		return n
	}
	return id
}
