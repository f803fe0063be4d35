package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/mail.v2"
)

// mockMailSender records messages instead of dialing a server
type mockMailSender struct {
	messages []*mail.Message
	err      error
}

func (m *mockMailSender) DialAndSend(msgs ...*mail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

// mockEnqueuer records enqueued tasks
type mockEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (m *mockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.tasks = append(m.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type(), Payload: task.Payload(), Queue: QueueEmail}, nil
}

// mockNotifier records sent messages
type mockNotifier struct {
	sent []EmailPayload
	err  error
}

func (m *mockNotifier) Send(ctx context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, EmailPayload{To: to, Subject: subject, Body: body})
	return nil
}

func TestOTPBody(t *testing.T) {
	assert.Equal(t, "Your OTP is: 123456", OTPBody("123456"))
}

func TestSMTPNotifier_Send(t *testing.T) {
	tests := []struct {
		name          string
		senderErr     error
		cancelled     bool
		expectedError bool
		expectedSent  int
	}{
		{name: "success", expectedSent: 1},
		{name: "server error", senderErr: errors.New("connection refused"), expectedError: true},
		{name: "cancelled context", cancelled: true, expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &mockMailSender{err: tt.senderErr}
			n := NewSMTPNotifierWithSender(sender, "noreply@x.com", zap.NewNop())

			ctx := context.Background()
			if tt.cancelled {
				var cancel context.CancelFunc
				ctx, cancel = context.WithCancel(ctx)
				cancel()
			}

			err := n.Send(ctx, "a@x.com", OTPSubject, OTPBody("123456"))

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			require.Len(t, sender.messages, tt.expectedSent)
			if tt.expectedSent == 0 {
				return
			}

			m := sender.messages[0]
			assert.Equal(t, []string{"noreply@x.com"}, m.GetHeader("From"))
			assert.Equal(t, []string{"a@x.com"}, m.GetHeader("To"))
			assert.Equal(t, []string{"Your OTP Code"}, m.GetHeader("Subject"))

			var buf bytes.Buffer
			_, err = m.WriteTo(&buf)
			require.NoError(t, err)
			assert.Contains(t, buf.String(), "Your OTP is: 123456")
		})
	}
}

func TestNewSMTPNotifier(t *testing.T) {
	n := NewSMTPNotifier("smtp.x.com", 587, "user", "pass", "noreply@x.com", zap.NewNop())

	dialer, ok := n.sender.(*mail.Dialer)
	require.True(t, ok)
	assert.Equal(t, "smtp.x.com", dialer.Host)
	assert.Equal(t, 587, dialer.Port)
	assert.Equal(t, "noreply@x.com", n.from)
}

func TestQueueNotifier_Send(t *testing.T) {
	t.Run("enqueues email task", func(t *testing.T) {
		client := &mockEnqueuer{}
		n := NewQueueNotifier(client, zap.NewNop())

		err := n.Send(context.Background(), "a@x.com", OTPSubject, OTPBody("123456"))

		require.NoError(t, err)
		require.Len(t, client.tasks, 1)
		assert.Equal(t, TaskTypeEmail, client.tasks[0].Type())

		var payload EmailPayload
		require.NoError(t, json.Unmarshal(client.tasks[0].Payload(), &payload))
		assert.Equal(t, EmailPayload{To: "a@x.com", Subject: "Your OTP Code", Body: "Your OTP is: 123456"}, payload)
	})

	t.Run("enqueue error", func(t *testing.T) {
		client := &mockEnqueuer{err: errors.New("redis down")}
		n := NewQueueNotifier(client, zap.NewNop())

		err := n.Send(context.Background(), "a@x.com", OTPSubject, OTPBody("123456"))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to enqueue email")
	})
}

func TestEmailTaskHandler_ProcessTask(t *testing.T) {
	validTask, err := NewEmailTask("a@x.com", OTPSubject, OTPBody("123456"))
	require.NoError(t, err)
	noRecipient, err := NewEmailTask("", OTPSubject, OTPBody("123456"))
	require.NoError(t, err)

	tests := []struct {
		name          string
		task          *asynq.Task
		notifierErr   error
		expectedError bool
		skipRetry     bool
		expectedSent  int
	}{
		{name: "delivers email", task: validTask, expectedSent: 1},
		{name: "malformed payload", task: asynq.NewTask(TaskTypeEmail, []byte("{")), expectedError: true, skipRetry: true},
		{name: "missing recipient", task: noRecipient, expectedError: true, skipRetry: true},
		{name: "delivery error is retried", task: validTask, notifierErr: errors.New("smtp down"), expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &mockNotifier{err: tt.notifierErr}
			h := NewEmailTaskHandler(n, zap.NewNop())

			err := h.ProcessTask(context.Background(), tt.task)

			if tt.expectedError {
				require.Error(t, err)
				assert.Equal(t, tt.skipRetry, errors.Is(err, asynq.SkipRetry))
			} else {
				assert.NoError(t, err)
			}
			assert.Len(t, n.sent, tt.expectedSent)
		})
	}
}

func TestLogNotifier_Send(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	err := n.Send(context.Background(), "a@x.com", OTPSubject, OTPBody("123456"))

	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "a@x.com", fields["to"])
	assert.Equal(t, "Your OTP is: 123456", fields["body"])
}
