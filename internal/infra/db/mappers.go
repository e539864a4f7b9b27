package db

import (
	"encoding/json"
	"fmt"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application/events"
)

func MapOutboxModelToCommentPublished(outbox Outbox) (events.CommentPublished, error) {
	var commentPublished events.CommentPublished
	if err := json.Unmarshal(outbox.Payload, &commentPublished); err != nil {
		return events.CommentPublished{}, fmt.Errorf("err unmarshaling %s payload, %w", outbox.Event, err)
	}

	return commentPublished, nil
}
