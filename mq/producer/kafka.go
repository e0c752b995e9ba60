package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
)

// KafkaProducer Kafka 消息生产者
type KafkaProducer struct {
	writer *kafka.Writer
	logger *core.ZapLogger
	topics config.Topics
}

// NewKafkaProducer 创建一个新的 Kafka 生产者实例
func NewKafkaProducer(config config.KafkaConfig, logger *core.ZapLogger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(config.Brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &KafkaProducer{
		writer: writer,
		logger: logger,
		topics: config.Topics,
	}
}

// SendEvent 发送事件到指定 Kafka 主题。
// - 生产者未配置 (nil) 时为空操作，调用方无需关心 Kafka 是否启用。
func (p *KafkaProducer) SendEvent(ctx context.Context, topic string, event interface{}) error {
	if p == nil {
		return nil
	}
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.Error(err), zap.String("topic", topic))
		return err
	}

	p.logger.Debug("Sending Kafka message",
		zap.String("topic", topic),
		zap.ByteString("payload", eventBytes))

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Value: eventBytes,
	})

	if err != nil {
		p.logger.Error("Failed to write Kafka message", zap.Error(err), zap.String("topic", topic))
	}
	return err
}

// SendBlogCreatedEvent 发送博客创建事件到 Kafka
// - 意图: 将新创建的博客发送到 Kafka 供搜索索引等下游服务消费
func (p *KafkaProducer) SendBlogCreatedEvent(ctx context.Context, blogData BlogEventData) error {
	if p == nil {
		return nil
	}
	event := BlogCreatedEvent{
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
		Blog:      blogData,
	}
	return p.SendEvent(ctx, p.topics.BlogCreated, event)
}

// SendBlogDeletedEvent 发送博客删除事件到 Kafka
func (p *KafkaProducer) SendBlogDeletedEvent(ctx context.Context, blogID uint64) error {
	if p == nil {
		return nil
	}
	event := BlogDeletedEvent{
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
		BlogID:    blogID,
	}
	return p.SendEvent(ctx, p.topics.BlogDeleted, event)
}

// SendModerationActionEvent 发送管理操作事件到 Kafka
func (p *KafkaProducer) SendModerationActionEvent(ctx context.Context, adminID uint64, action, targetType, targetID, reason string) error {
	if p == nil {
		return nil
	}
	event := ModerationActionEvent{
		EventID:    uuid.New().String(),
		Timestamp:  time.Now(),
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Reason:     reason,
	}
	return p.SendEvent(ctx, p.topics.ModerationAction, event)
}

// Close 关闭底层 writer，释放连接。
func (p *KafkaProducer) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
