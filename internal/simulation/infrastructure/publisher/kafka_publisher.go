// Package publisher 提供结果事件的 Kafka 发布实现
package publisher

import (
	"context"

	"github.com/wyfcoding/montecarlo/internal/simulation/domain"
	"github.com/wyfcoding/montecarlo/pkg/mq"
)

// KafkaResultPublisher 把模拟完成事件发布到 Kafka
// 承担原始实现中向对象存储上传 CSV 摘要的下游角色
type KafkaResultPublisher struct {
	producer *mq.KafkaProducer
}

// NewKafkaResultPublisher 创建 Kafka 结果发布器
func NewKafkaResultPublisher(producer *mq.KafkaProducer) domain.ResultPublisher {
	return &KafkaResultPublisher{producer: producer}
}

// PublishCompleted 发布模拟完成事件，run_id 作为消息 key
func (p *KafkaResultPublisher) PublishCompleted(ctx context.Context, event domain.SimulationCompletedEvent) error {
	return p.producer.SendMessage(ctx, domain.SimulationCompletedEventType, event.RunID, event)
}
