package notifications

import (
	"context"
	"encoding/json"
	"fmt"
)

// LogPublisher пишет события в лог вместо брокера (уведомления выключены)
type LogPublisher struct {
	logger Logger
}

func NewLogPublisher(logger Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishJSON(ctx context.Context, routingKey string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}
	p.logger.Info("[notify] %s %s", routingKey, body)
	return nil
}
