package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewConsumer(rabbitmqURL string) (*Consumer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// 设置QoS，限制未确认消息数量
	if err = ch.Qos(10, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	if err = setupTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}

	return &Consumer{
		conn:    conn,
		channel: ch,
	}, nil
}

// ConsumeVideoEvents 阻塞消费, 直到ctx取消或连接关闭
func (c *Consumer) ConsumeVideoEvents(ctx context.Context, handler VideoEventHandler) error {
	msgs, err := c.channel.Consume(
		VideoIndexQueue,
		"",    // consumer
		false, // auto-ack (设置为false，手动确认)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			hlog.Info("Video event consumer context cancelled")
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				hlog.Info("Video event consumer channel closed")
				return nil
			}
			dispatch(ctx, handler, d)
		}
	}
}

type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func dispatch(ctx context.Context, handler VideoEventHandler, d amqp091.Delivery) {
	handleDelivery(ctx, handler, d.Body, d)
}

func handleDelivery(ctx context.Context, handler VideoEventHandler, body []byte, ack acknowledger) {
	var event VideoEvent
	if err := json.Unmarshal(body, &event); err != nil || event.Video == nil {
		hlog.Errorf("Failed to unmarshal video event: %v", err)
		if nackErr := ack.Nack(false, false); nackErr != nil { // 拒绝消息，不重新入队
			hlog.CtxWarnf(ctx, "Failed to nack malformed video event: %v", nackErr)
		}
		return
	}

	if err := handler.HandleVideoEvent(ctx, &event); err != nil {
		hlog.Errorf("Failed to handle video event %s: %v", event.EventID, err)
		if nackErr := ack.Nack(false, true); nackErr != nil { // 拒绝消息，重新入队
			hlog.CtxWarnf(ctx, "Failed to requeue video event %s: %v", event.EventID, nackErr)
		}
		return
	}

	if err := ack.Ack(false); err != nil { // 确认消息
		hlog.CtxWarnf(ctx, "Failed to ack video event %s: %v", event.EventID, err)
		return
	}
	hlog.CtxInfof(ctx, "Successfully processed video event %s %s", event.Type, event.EventID)
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
