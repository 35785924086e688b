package memory

import (
	"context"
	"sort"

	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/db/repositories"
)

type answerRepository struct {
	state *state
}

func (r *answerRepository) Upsert(ctx context.Context, request *models.Answer) (*models.Answer, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	d := r.state.data
	if _, ok := d.instances[request.PollInstanceID]; !ok {
		return nil, repositories.ErrNotFound
	}

	for _, a := range d.answers {
		if a.EmployeeID == request.EmployeeID &&
			a.QuestionID == request.QuestionID &&
			models.SameTarget(a.TargetEmployeeID, request.TargetEmployeeID) {
			a.Answer = request.Answer
			a.Token = request.Token
			a.RequiresAttention = request.RequiresAttention
			a.PollInstanceID = request.PollInstanceID
			a.CreatedAt = request.CreatedAt
			request.ID = a.ID
			result := *a
			return &result, nil
		}
	}

	request.ID = d.newID()
	answer := *request
	d.answers[request.ID] = &answer

	result := answer
	return &result, nil
}

func (r *answerRepository) GetLast(ctx context.Context, pollInstanceID int64) (*models.Answer, error) {
	answers := r.byInstance(pollInstanceID)
	if len(answers) == 0 {
		return nil, repositories.ErrNotFound
	}

	return answers[len(answers)-1], nil
}

func (r *answerRepository) GetMany(ctx context.Context, pollInstanceID int64) ([]*models.Answer, error) {
	return r.byInstance(pollInstanceID), nil
}

func (r *answerRepository) DeleteByInstance(ctx context.Context, pollInstanceID int64) (int, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	deleted := 0
	for id, a := range r.state.data.answers {
		if a.PollInstanceID == pollInstanceID {
			delete(r.state.data.answers, id)
			deleted++
		}
	}

	return deleted, nil
}

func (r *answerRepository) byInstance(pollInstanceID int64) []*models.Answer {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	answers := make([]*models.Answer, 0)
	for _, a := range r.state.data.answers {
		if a.PollInstanceID == pollInstanceID {
			result := *a
			answers = append(answers, &result)
		}
	}

	sort.Slice(answers, func(i, j int) bool {
		if !answers[i].CreatedAt.Equal(answers[j].CreatedAt) {
			return answers[i].CreatedAt.Before(answers[j].CreatedAt)
		}
		return answers[i].ID < answers[j].ID
	})
	return answers
}
