// Package notify 将需要发送的邮件投递到 rabbitmq 的邮件队列中，由 mail worker 负责发送
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/brightline5/shift-planner/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher struct {
	ch             *amqp.Channel
	queue          string
	publishTimeout time.Duration
}

func NewPublisher(ch *amqp.Channel, queue string, publishTimeout time.Duration) *Publisher {
	return &Publisher{
		ch:             ch,
		queue:          queue,
		publishTimeout: publishTimeout,
	}
}

// DeclareQueue 声明持久化的邮件队列，api 和 mail worker 启动时都会调用
func DeclareQueue(ch *amqp.Channel, queue string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		queue,
		true,  // 持久化
		false, // 没有消费者时不自动删除
		false, // 非独占
		false,
		nil,
	)
}

func (p *Publisher) Publish(ctx context.Context, msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(
		ctx,
		"",
		p.queue,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
