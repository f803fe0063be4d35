package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Asynq task settings for queued email delivery
const (
	TaskTypeEmail = "email:otp"
	QueueEmail    = "email"
)

// EmailPayload is the JSON payload of an email task
type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Enqueuer enqueues asynq tasks; *asynq.Client satisfies it
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueNotifier hands messages to the worker through an asynq queue.
// Send succeeds once the task is enqueued; SMTP errors surface in the worker.
type QueueNotifier struct {
	client   Enqueuer
	maxRetry int
	logger   *zap.Logger
}

// NewQueueNotifier creates a notifier that enqueues email tasks
func NewQueueNotifier(client Enqueuer, logger *zap.Logger) *QueueNotifier {
	return &QueueNotifier{
		client:   client,
		maxRetry: 3,
		logger:   logger,
	}
}

// Send enqueues an email task
func (n *QueueNotifier) Send(ctx context.Context, to, subject, body string) error {
	task, err := NewEmailTask(to, subject, body)
	if err != nil {
		return err
	}

	info, err := n.client.EnqueueContext(ctx, task, asynq.Queue(QueueEmail), asynq.MaxRetry(n.maxRetry))
	if err != nil {
		return fmt.Errorf("failed to enqueue email: %w", err)
	}

	n.logger.Debug("email enqueued", zap.String("to", to), zap.String("task_id", info.ID))
	return nil
}

// NewEmailTask builds the asynq task for an email
func NewEmailTask(to, subject, body string) (*asynq.Task, error) {
	payload, err := json.Marshal(EmailPayload{To: to, Subject: subject, Body: body})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal email payload: %w", err)
	}
	return asynq.NewTask(TaskTypeEmail, payload), nil
}

// EmailTaskHandler processes queued email tasks in the worker
type EmailTaskHandler struct {
	notifier Notifier
	logger   *zap.Logger
}

// NewEmailTaskHandler creates a handler that delivers email tasks through notifier
func NewEmailTaskHandler(notifier Notifier, logger *zap.Logger) *EmailTaskHandler {
	return &EmailTaskHandler{
		notifier: notifier,
		logger:   logger,
	}
}

// ProcessTask implements asynq.Handler
func (h *EmailTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload EmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		// A malformed payload never becomes valid, so retrying is pointless
		return fmt.Errorf("failed to parse email payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.To == "" {
		return fmt.Errorf("email payload has no recipient: %w", asynq.SkipRetry)
	}

	if err := h.notifier.Send(ctx, payload.To, payload.Subject, payload.Body); err != nil {
		return err
	}

	h.logger.Info("email task completed", zap.String("to", payload.To))
	return nil
}
