package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Callback-запросы несут небольшой JSON вида {"action": ..., "id": ...}.
// Полезная нагрузка разбирается и проверяется на границе, до диспетчеризации.

type CallbackAction string

const (
	ActionSelectSubmission CallbackAction = "select_submission"
	ActionGradeSubmission  CallbackAction = "grade_submission"
	ActionDownload         CallbackAction = "download"
)

var (
	ErrUnknownCallbackAction = errors.New("unknown callback action")
	ErrCallbackIDRequired    = errors.New("callback id is required")
)

type CallbackPayload struct {
	Action CallbackAction `json:"action"`
	ID     int64          `json:"id,omitempty"`
}

func ParseCallback(data string) (*CallbackPayload, error) {
	var payload CallbackPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse callback data: %w", err)
	}

	switch payload.Action {
	case ActionSelectSubmission, ActionDownload:
		if payload.ID == 0 {
			return nil, ErrCallbackIDRequired
		}
	case ActionGradeSubmission:
		// id не требуется
	default:
		return nil, ErrUnknownCallbackAction
	}

	return &payload, nil
}

func (p CallbackPayload) Encode() string {
	data, _ := json.Marshal(p)
	return string(data)
}
