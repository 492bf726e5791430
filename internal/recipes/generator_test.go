package recipes

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"rasoimate/internal/models"
)

// MockLLM is a mock implementation of the language model interface
type MockLLM struct {
	mock.Mock
}

func (m *MockLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	args := m.Called(ctx, messages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llms.ContentResponse), args.Error(1)
}

func contentResponse(text string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: text}},
	}
}

func seededGenerator(model llms.LLM, seed int64) *Generator {
	g := NewGenerator(model, time.Second)
	g.newRand = func() *rand.Rand { return rand.New(rand.NewSource(seed)) }
	return g
}

func TestGenerateRejectsEmptyIngredients(t *testing.T) {
	mockLLM := new(MockLLM)
	g := seededGenerator(mockLLM, 1)

	_, err := g.Generate(context.Background(), models.RecipeRequest{})
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	mockLLM.AssertNotCalled(t, "GenerateContent")
}

func TestGenerateRemoteSuccess(t *testing.T) {
	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).Return(contentResponse(`{
		"name": "Tomato Rice",
		"description": "Comfort in a bowl.",
		"ingredients": ["Rice", "Tomato", "Salt"],
		"steps": ["1. Rinse the rice.", "2. Simmer with tomato.", ""],
		"image": "https://images.example.com/tomato-rice.jpg"
	}`), nil)

	g := seededGenerator(mockLLM, 1)
	recipe, err := g.Generate(context.Background(), models.RecipeRequest{Ingredients: []string{"Rice", "Tomato"}})
	require.NoError(t, err)

	assert.Equal(t, "Tomato Rice", recipe.Name)
	assert.Equal(t, []string{"Rice", "Tomato", "Salt"}, recipe.Ingredients)
	assert.Equal(t, []string{"Rinse the rice.", "Simmer with tomato."}, recipe.Steps,
		"numbering prefixes and blank steps must be stripped")
	assert.Equal(t, "https://images.example.com/tomato-rice.jpg", recipe.Image)
	assert.NotEmpty(t, recipe.ID)
}

func TestGenerateStripsMarkdownFences(t *testing.T) {
	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).Return(contentResponse(
		"```json\n{\"name\":\"Dal\",\"description\":\"\",\"ingredients\":[\"Lentils\"],\"steps\":[\"Boil the lentils.\"],\"image\":\"\"}\n```",
	), nil)

	g := seededGenerator(mockLLM, 1)
	recipe, err := g.Generate(context.Background(), models.RecipeRequest{Ingredients: []string{"Lentils"}})
	require.NoError(t, err)

	assert.Equal(t, "Dal", recipe.Name)
	assert.Contains(t, recipe.Image, "https://source.unsplash.com/",
		"an empty image field must be replaced by a synthesized one")
}

func TestGenerateFallsBackWhenServiceUnreachable(t *testing.T) {
	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	g := seededGenerator(mockLLM, 1)
	recipe, err := g.Generate(context.Background(), models.RecipeRequest{Ingredients: []string{"Rice", "Milk"}})
	require.NoError(t, err, "a remote failure must never surface to the caller")

	assert.Contains(t, recipe.Ingredients, "Rice")
	assert.Contains(t, recipe.Ingredients, "Milk")
	assert.NotEmpty(t, recipe.Steps)
}

func TestGenerateFallsBackOnMalformedResponse(t *testing.T) {
	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).Return(contentResponse("Sure! Here's a recipe idea for you:"), nil)

	g := seededGenerator(mockLLM, 1)
	recipe, err := g.Generate(context.Background(), models.RecipeRequest{Ingredients: []string{"Paneer"}})
	require.NoError(t, err)
	assert.Equal(t, "Simple Paneer", recipe.Name)
}

func TestGenerateFallsBackWithoutCredential(t *testing.T) {
	g := seededGenerator(nil, 1)

	recipe, err := g.Generate(context.Background(), models.RecipeRequest{Ingredients: []string{"Rice"}})
	require.NoError(t, err)
	assert.Contains(t, recipe.Ingredients, "Rice")
}

func TestGenerateRemoteRejectsMissingSteps(t *testing.T) {
	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).Return(contentResponse(
		`{"name":"Mystery","description":"","ingredients":[],"steps":[],"image":""}`,
	), nil)

	g := seededGenerator(mockLLM, 1)
	_, err := g.generateRemote(context.Background(), models.RecipeRequest{Ingredients: []string{"Rice"}, Servings: 4, Cuisine: "any"}, rand.New(rand.NewSource(1)))
	var uerr *models.UpstreamError
	assert.True(t, errors.As(err, &uerr))
}

func TestSanitizeJSON(t *testing.T) {
	plain := `{"name":"x"}`
	assert.Equal(t, plain, sanitizeJSON(plain))
	assert.Equal(t, plain, sanitizeJSON("  \n"+plain+"\n"))
	assert.Equal(t, plain, sanitizeJSON("```json\n"+plain+"\n```"))
	assert.Equal(t, plain, sanitizeJSON("```\n"+plain+"\n```"))
}
