// Package mq 提供消息事件的 Kafka 生产者
// messageMode 为 "none" 时整个包退化为空操作，发送消息只落库
package mq

import (
	"context"
	"encoding/json"
	"time"

	myconfig "echo_chat_server/internal/config"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageCreatedEvent 新消息事件
// 负载只携带标识与类型，消费方需要内容时按 messageId 回查
type MessageCreatedEvent struct {
	MessageId string `json:"messageId"`
	RoomId    string `json:"roomId,omitempty"`
	ReceiveId string `json:"receiveId,omitempty"`
	SendId    string `json:"sendId"`
	Type      int8   `json:"type"`
	CreatedAt string `json:"createdAt"`
}

type kafkaService struct {
	EventWriter *kafka.Writer
	enabled     bool
}

var KafkaService = new(kafkaService)

// KafkaInit 初始化 Kafka 生产者
// 按会话维度（房间或私聊对）做 Hash 分区，同一会话的事件保持有序
func (k *kafkaService) KafkaInit() {
	kafkaConfig := myconfig.GetConfig().KafkaConfig
	if kafkaConfig.MessageMode != "kafka" {
		k.enabled = false
		zap.L().Info("kafka message events disabled", zap.String("messageMode", kafkaConfig.MessageMode))
		return
	}
	k.EventWriter = &kafka.Writer{
		Addr:                   kafka.TCP(kafkaConfig.HostPort),
		Topic:                  kafkaConfig.EventTopic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           kafkaConfig.Timeout * time.Second,
		RequiredAcks:           kafka.RequireNone,
		AllowAutoTopicCreation: false,
	}
	k.enabled = true
	zap.L().Info("kafka message event producer initialized",
		zap.String("hostPort", kafkaConfig.HostPort),
		zap.String("topic", kafkaConfig.EventTopic))
}

// KafkaClose 关闭生产者
func (k *kafkaService) KafkaClose() {
	if k.EventWriter != nil {
		if err := k.EventWriter.Close(); err != nil {
			zap.L().Error(err.Error())
		}
	}
}

// CreateTopic 创建事件主题（已存在时 Kafka 返回的错误只记录日志）
func (k *kafkaService) CreateTopic() {
	kafkaConfig := myconfig.GetConfig().KafkaConfig
	if kafkaConfig.MessageMode != "kafka" {
		return
	}

	conn, err := kafka.Dial("tcp", kafkaConfig.HostPort)
	if err != nil {
		zap.L().Error(err.Error())
		return
	}
	defer conn.Close()

	topicConfigs := []kafka.TopicConfig{
		{
			Topic:             kafkaConfig.EventTopic,
			NumPartitions:     kafkaConfig.Partition,
			ReplicationFactor: 1,
		},
	}
	if err = conn.CreateTopics(topicConfigs...); err != nil {
		zap.L().Error(err.Error())
	}
}

// PublishMessageCreated 发布新消息事件
// key 为会话标识，保证同一会话路由到同一分区
// 发布失败只记录日志，不影响消息本身的落库结果
func (k *kafkaService) PublishMessageCreated(conversationKey string, event *MessageCreatedEvent) {
	if !k.enabled {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("marshal message event failed", zap.Error(err))
		return
	}
	err = k.EventWriter.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(conversationKey),
		Value: payload,
	})
	if err != nil {
		zap.L().Error("publish message event failed",
			zap.String("messageId", event.MessageId), zap.Error(err))
	}
}
