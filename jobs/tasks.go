package jobs

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeContactNotify is the task type for notifying staff of a new
	// storefront inquiry.
	TaskTypeContactNotify = "contact:notify"
)

// ContactNotifyPayload carries a stored inquiry to the mail handler.
type ContactNotifyPayload struct {
	InquiryID int64  `json:"inquiry_id"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Message   string `json:"message"`
	ItemSlug  string `json:"item_slug,omitempty"`
}

// NewContactNotifyTask constructs an Asynq task.
func NewContactNotifyTask(payload ContactNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeContactNotify, data), nil
}

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

// EnqueueContactNotify enqueues a contact-notification task.
func (c *Client) EnqueueContactNotify(ctx context.Context, payload ContactNotifyPayload) (*asynq.TaskInfo, error) {
	task, err := NewContactNotifyTask(payload)
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault), asynq.MaxRetry(5))
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}
