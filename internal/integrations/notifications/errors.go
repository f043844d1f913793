package notifications

import "errors"

var (
	// ErrConnect возвращается при ошибке подключения к RabbitMQ
	ErrConnect = errors.New("notifications: failed to connect to broker")

	// ErrMarshal возвращается при ошибке сериализации события
	ErrMarshal = errors.New("notifications: failed to marshal event")

	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("notifications: failed to publish event")
)
