package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskLeadScoreSweep = "leads.score.sweep"

type LeadScoreSweepPayload struct {
	TenantID   string  `json:"tenantId"`
	CampaignID *string `json:"campaignId,omitempty"`
}

func NewLeadScoreSweepTask(payload LeadScoreSweepPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadScoreSweep, data), nil
}

func ParseLeadScoreSweepPayload(task *asynq.Task) (LeadScoreSweepPayload, error) {
	var payload LeadScoreSweepPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadScoreSweepPayload{}, err
	}
	return payload, nil
}
