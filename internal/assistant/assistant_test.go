package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/venture-compass/internal/llm"
	"github.com/jonathan/venture-compass/internal/types"
)

type fakeStore struct {
	step       *types.Step
	profile    *types.CompanyProfile
	profileErr error
}

func (f *fakeStore) GetStep(context.Context, uuid.UUID) (*types.Step, error) {
	return f.step, nil
}

func (f *fakeStore) FetchCompanyProfile(context.Context, uuid.UUID) (*types.CompanyProfile, error) {
	return f.profile, f.profileErr
}

// fakeClient returns a canned JSON response and records the last prompt
type fakeClient struct {
	response string
	err      error

	lastPrompt string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

const validGuidance = `{
	"suggestions": ["Draft three candidate value propositions"],
	"guiding_questions": ["Which customer segment feels this problem most acutely?"]
}`

func testStep() *types.Step {
	return &types.Step{
		ID:          uuid.New(),
		Name:        "Define value proposition",
		Description: "Articulate the core value your product delivers",
		Phase:       types.Phase{Name: "Ideation"},
		Categories:  []string{"strategy"},
	}
}

func TestStepGuidance_ParsesValidResponse(t *testing.T) {
	store := &fakeStore{step: testStep()}
	client := &fakeClient{response: validGuidance}

	guidance, err := New(store, client).StepGuidance(context.Background(), uuid.New(), uuid.New())

	require.NoError(t, err)
	require.Len(t, guidance.Suggestions, 1)
	require.Len(t, guidance.GuidingQuestions, 1)
	assert.Contains(t, client.lastPrompt, "Define value proposition")
}

func TestStepGuidance_IncludesProfileContext(t *testing.T) {
	store := &fakeStore{
		step: testStep(),
		profile: &types.CompanyProfile{
			Stage:         "mvp",
			BusinessModel: "b2b_saas",
			FocusAreas:    []string{"sales"},
		},
	}
	client := &fakeClient{response: validGuidance}

	_, err := New(store, client).StepGuidance(context.Background(), uuid.New(), uuid.New())

	require.NoError(t, err)
	assert.Contains(t, client.lastPrompt, "Company context")
	assert.Contains(t, client.lastPrompt, "b2b_saas")
}

func TestStepGuidance_ProfileLookupFailureStillGenerates(t *testing.T) {
	store := &fakeStore{step: testStep(), profileErr: errors.New("profile table down")}
	client := &fakeClient{response: validGuidance}

	guidance, err := New(store, client).StepGuidance(context.Background(), uuid.New(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, guidance)
	assert.NotContains(t, client.lastPrompt, "Company context")
}

func TestStepGuidance_UnknownStep(t *testing.T) {
	store := &fakeStore{step: nil}
	client := &fakeClient{response: validGuidance}

	_, err := New(store, client).StepGuidance(context.Background(), uuid.New(), uuid.New())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "step not found")
}

func TestStepGuidance_RejectsSchemaViolations(t *testing.T) {
	store := &fakeStore{step: testStep()}

	for name, response := range map[string]string{
		"empty arrays":  `{"suggestions": [], "guiding_questions": []}`,
		"missing field": `{"suggestions": ["a"]}`,
		"extra field":   `{"suggestions": ["a"], "guiding_questions": ["b"], "tone": "upbeat"}`,
	} {
		client := &fakeClient{response: response}

		_, err := New(store, client).StepGuidance(context.Background(), uuid.New(), uuid.New())

		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "schema validation", name)
	}
}

func TestStepGuidance_GenerationFailure(t *testing.T) {
	store := &fakeStore{step: testStep()}
	client := &fakeClient{err: errors.New("quota exceeded")}

	_, err := New(store, client).StepGuidance(context.Background(), uuid.New(), uuid.New())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate guidance")
}
