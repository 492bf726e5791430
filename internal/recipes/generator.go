package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"

	"rasoimate/internal/models"
	"rasoimate/internal/monitoring"
)

const (
	defaultServings = 4
	defaultCuisine  = "any"
)

// Generator turns ingredient lists into recipes. It makes a single bounded
// attempt against the language model; any non-success outcome is absorbed
// by the local fallback builder, so a validated request always produces a
// recipe. No retries, no backoff.
type Generator struct {
	model   llms.LLM
	timeout time.Duration
	newRand func() *rand.Rand
}

// NewGenerator creates a generator backed by the given model. A nil model
// means no credential was configured; every request then takes the
// fallback path.
func NewGenerator(model llms.LLM, timeout time.Duration) *Generator {
	return &Generator{
		model:   model,
		timeout: timeout,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// Generate validates the request and produces a recipe. An empty ingredient
// list is the only error callers can see; remote failures degrade to the
// fallback builder instead of surfacing.
func (g *Generator) Generate(ctx context.Context, req models.RecipeRequest) (models.Recipe, error) {
	if len(req.Ingredients) == 0 {
		return models.Recipe{}, models.NewValidationError("ingredients", "must be a non-empty list")
	}
	if req.Servings <= 0 {
		req.Servings = defaultServings
	}
	if req.Cuisine == "" {
		req.Cuisine = defaultCuisine
	}

	rng := g.newRand()
	recipe, err := g.generateRemote(ctx, req, rng)
	if err != nil {
		log.Printf("recipes: remote generation failed, using fallback: %v", err)
		monitoring.RecipeGenerated("fallback")
		return BuildFallback(req.Ingredients, rng), nil
	}
	monitoring.RecipeGenerated("remote")
	return recipe, nil
}

// remoteRecipe is the JSON schema the model is asked to produce
type remoteRecipe struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Image       string   `json:"image"`
}

func (g *Generator) generateRemote(ctx context.Context, req models.RecipeRequest, rng *rand.Rand) (models.Recipe, error) {
	if g.model == nil {
		return models.Recipe{}, &models.UpstreamError{Reason: "no language-model credential configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	stepsTarget := 6 + rng.Intn(5)
	prompt := buildPrompt(req, stepsTarget)

	raw, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt,
		llms.WithTemperature(0.9),
		llms.WithMaxTokens(900),
	)
	if err != nil {
		return models.Recipe{}, &models.UpstreamError{Reason: "model call failed", Err: err}
	}

	var parsed remoteRecipe
	if err := json.Unmarshal([]byte(sanitizeJSON(raw)), &parsed); err != nil {
		return models.Recipe{}, &models.UpstreamError{Reason: "malformed model response", Err: err}
	}

	steps := normalizeSteps(parsed.Steps)
	if parsed.Name == "" || len(steps) == 0 {
		return models.Recipe{}, &models.UpstreamError{Reason: "model response missing name or steps"}
	}

	image := parsed.Image
	if !isHTTPURL(image) {
		image = foodImageURL(strings.TrimSpace(parsed.Name + " " + strings.Join(req.Ingredients, " ")))
	}

	ingredients := parsed.Ingredients
	if len(ingredients) == 0 {
		ingredients = req.Ingredients
	}

	return models.Recipe{
		ID:          uuid.NewString(),
		Name:        parsed.Name,
		Description: parsed.Description,
		Ingredients: ingredients,
		Steps:       steps,
		Image:       image,
	}, nil
}

func buildPrompt(req models.RecipeRequest, stepsTarget int) string {
	restrictions := "none"
	if len(req.DietaryRestrictions) > 0 {
		restrictions = strings.Join(req.DietaryRestrictions, ", ")
	}

	return fmt.Sprintf(`Create a practical, delicious recipe using these ingredients: %s.

Constraints:
- Servings: %d
- Dietary restrictions: %s
- Cuisine preference: %s

Output requirements:
- Provide exactly %d short, actionable steps in plain text (no numbering characters like "1."; just the sentence).
- Vary the phrasing and technique across requests; include timings/temperatures where useful; avoid repeating identical wording between steps.
- If a suitable image URL is known (royalty-free, publicly accessible), set the image field to that URL; otherwise leave it empty.

Respond ONLY with a single JSON object in this exact schema (no markdown, no commentary):
{
  "name": string,
  "description": string,
  "ingredients": string[],
  "steps": string[],
  "image": string
}`,
		strings.Join(req.Ingredients, ", "), req.Servings, restrictions, req.Cuisine, stepsTarget)
}

var (
	fencedJSON = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)```")
	stepNumber = regexp.MustCompile(`^\s*\d+\.?\s*`)
)

// sanitizeJSON strips markdown code fences some models wrap around their
// JSON output.
func sanitizeJSON(text string) string {
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}

// normalizeSteps drops blank steps and any numbering prefixes the model
// added despite instructions.
func normalizeSteps(steps []string) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		s = strings.TrimSpace(stepNumber.ReplaceAllString(s, ""))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
