package repositories

import (
	"context"

	"github.com/lurelab/lurelab-backend/models"

	"github.com/checkmarble/llmberjack"
	"github.com/cockroachdb/errors"
)

type objectiveJudgmentOutput struct {
	ObjectiveMet  bool   `json:"objective_met" jsonschema_description:"Whether the transcript shows the caller's objective was achieved" jsonschema_required:"true"`
	Justification string `json:"justification" jsonschema_description:"Short factual justification for the judgment" jsonschema_required:"true"`
}

// GenerativeTextRepository is the narrow generative-text capability used for
// spoken turns, the deferred verdict and follow-up artifacts.
type GenerativeTextRepository struct {
	client *llmberjack.Llmberjack
	model  string
}

func NewGenerativeTextRepository(client *llmberjack.Llmberjack, model string) *GenerativeTextRepository {
	return &GenerativeTextRepository{
		client: client,
		model:  model,
	}
}

// GenerateText produces the next caller line given a system instruction and
// the conversation so far. Turns alternate between the generated caller and
// the employee; the employee's words are fed back as user turns.
func (repo *GenerativeTextRepository) GenerateText(ctx context.Context,
	instruction string, conversation []models.CallTurn,
) (string, error) {
	req := llmberjack.NewUntypedRequest().
		WithModel(repo.model).
		WithInstruction(instruction)

	for _, turn := range conversation {
		role := llmberjack.RoleUser
		if turn.Speaker == models.SpeakerCaller {
			role = llmberjack.RoleAi
		}
		req = req.WithText(role, turn.Content)
	}

	resp, err := req.Do(ctx, repo.client)
	if err != nil {
		return "", errors.Wrap(models.ErrUpstreamUnavailable, err.Error())
	}

	text, err := resp.Get(0)
	if err != nil {
		return "", errors.Wrap(models.ErrUpstreamUnavailable, err.Error())
	}
	return text, nil
}

// JudgeObjective asks the model whether the transcript shows the objective
// was met, as a typed judgment.
func (repo *GenerativeTextRepository) JudgeObjective(ctx context.Context,
	instruction, prompt string,
) (models.ObjectiveJudgment, error) {
	resp, err := llmberjack.NewRequest[objectiveJudgmentOutput]().
		WithModel(repo.model).
		WithInstruction(instruction).
		WithText(llmberjack.RoleUser, prompt).
		Do(ctx, repo.client)
	if err != nil {
		return models.ObjectiveJudgment{}, errors.Wrap(models.ErrUpstreamUnavailable, err.Error())
	}

	judgment, err := resp.Get(0)
	if err != nil {
		return models.ObjectiveJudgment{}, errors.Wrap(models.ErrVerdictUnparsable, err.Error())
	}

	return models.ObjectiveJudgment{
		ObjectiveMet:  judgment.ObjectiveMet,
		Justification: judgment.Justification,
	}, nil
}
