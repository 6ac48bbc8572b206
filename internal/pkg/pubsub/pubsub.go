package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelNotification = "gym_notifications"
)

// NotificationMessage worker 发送邮件后的回报消息，
// API 进程订阅后转发给后台仪表盘的 WebSocket 连接。
type NotificationMessage struct {
	Type       string `json:"type"`
	MemberID   int64  `json:"member_id"`
	MemberName string `json:"member_name"`
	Kind       string `json:"kind"` // welcome, payment_reminder, expiry_reminder
	Recipient  string `json:"recipient"`
	Delivered  bool   `json:"delivered"`
	Error      string `json:"error,omitempty"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishNotification 发布邮件发送结果
func (p *Publisher) PublishNotification(ctx context.Context, msg *NotificationMessage) error {
	msg.Type = "notification_sent"

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification message: %w", err)
	}

	return p.client.Publish(ctx, ChannelNotification, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅邮件发送结果
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*NotificationMessage)) error {
	pubsub := s.client.Subscribe(ctx, ChannelNotification)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var notification NotificationMessage
			if err := json.Unmarshal([]byte(msg.Payload), &notification); err != nil {
				continue // 忽略解析错误
			}

			handler(&notification)
		}
	}
}
