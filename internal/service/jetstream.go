// NATS JetStream 航次事件持久化服务

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"optifuel/api/internal/model"
)

// StreamVoyages 航次事件 Stream
const StreamVoyages = "OPTIFUEL_VOYAGES"

const voyageSubjectPrefix = "optifuel.voyages"

// VoyageSubject 返回某个用户的事件主题
func VoyageSubject(ownerID uint) string {
	return fmt.Sprintf("%s.%d", voyageSubjectPrefix, ownerID)
}

// EventPublisher publishes voyage lifecycle events
type EventPublisher interface {
	PublishVoyageEvent(ctx context.Context, event *model.VoyageEvent) error
}

// JetStreamService JetStream服务
type JetStreamService struct {
	nc *nats.Conn
	js nats.JetStreamContext
}

// NewJetStreamService 创建JetStream服务并确保 Stream 存在
func NewJetStreamService(nc *nats.Conn) (*JetStreamService, error) {
	js, err := nc.JetStream()
	if err != nil {
		return nil, fmt.Errorf("failed to create jetstream context: %w", err)
	}

	s := &JetStreamService{nc: nc, js: js}
	if err := s.initStream(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *JetStreamService) initStream() error {
	cfg := &nats.StreamConfig{
		Name:      StreamVoyages,
		Subjects:  []string{voyageSubjectPrefix + ".*"},
		Retention: nats.LimitsPolicy,
		MaxMsgs:   -1,
		MaxBytes:  1024 * 1024 * 1024, // 1GB
		MaxAge:    30 * 24 * time.Hour, // 30天
		Storage:   nats.FileStorage,
		Replicas:  1,
	}

	_, err := s.js.AddStream(cfg)
	if errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		// Stream已存在，更新配置
		_, err = s.js.UpdateStream(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to ensure stream %s: %w", StreamVoyages, err)
	}
	return nil
}

// IsEnabled reports whether events can be published
func (s *JetStreamService) IsEnabled() bool {
	return s != nil && s.js != nil
}

// PublishVoyageEvent 发布航次事件（持久化）
func (s *JetStreamService) PublishVoyageEvent(ctx context.Context, event *model.VoyageEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = s.js.Publish(VoyageSubject(event.OwnerID), payload, nats.Context(ctx))
	return err
}

// SubscribeVoyageEvents 订阅新产生的航次事件，不回放历史
func (s *JetStreamService) SubscribeVoyageEvents(handler func(*model.VoyageEvent)) (*nats.Subscription, error) {
	return s.js.Subscribe(voyageSubjectPrefix+".*", func(msg *nats.Msg) {
		var event model.VoyageEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			return
		}
		handler(&event)
	}, nats.DeliverNew(), nats.AckNone())
}

// GetStreamInfo 获取Stream信息
func (s *JetStreamService) GetStreamInfo() (*nats.StreamInfo, error) {
	return s.js.StreamInfo(StreamVoyages)
}

// Close drains the connection
func (s *JetStreamService) Close() {
	if s.nc != nil {
		s.nc.Drain()
	}
}
