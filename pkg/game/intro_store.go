package game

import (
	"fmt"
	"log"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// SessionTTL "已看过开场" 标记的有效期
// 超过该时长后再次启动会重新播放完整开场
const SessionTTL = 30 * time.Minute

// 存储路径常量
const (
	introObject   = "intro"
	introProperty = "session"
)

// introRecord 持久化的开场标记
type introRecord struct {
	SeenAt time.Time `yaml:"seenAt"`
}

// IntroStore 记录本次会话是否已经看过开场
//
// gdataManager 为 nil 时降级为仅内存标记。
type IntroStore struct {
	gdataManager *gdata.Manager
	clock        func() time.Time
	seenAt       time.Time
}

// NewIntroStore 创建开场标记存储并加载已有记录
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//   - clock: 时间源，nil 时使用 time.Now
func NewIntroStore(gdataManager *gdata.Manager, clock func() time.Time) *IntroStore {
	if clock == nil {
		clock = time.Now
	}
	s := &IntroStore{gdataManager: gdataManager, clock: clock}
	if err := s.load(); err != nil {
		log.Printf("[IntroStore] Warning: %v (treating intro as unseen)", err)
	}
	return s
}

func (s *IntroStore) load() error {
	if s.gdataManager == nil {
		return nil
	}
	if !s.gdataManager.ObjectPropExists(introObject, introProperty) {
		return nil
	}

	data, err := s.gdataManager.LoadObjectProp(introObject, introProperty)
	if err != nil {
		return fmt.Errorf("failed to load intro flag: %w", err)
	}
	var rec introRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("failed to unmarshal intro flag: %w", err)
	}
	s.seenAt = rec.SeenAt
	return nil
}

// HasSeen 标记存在且未过期
func (s *IntroStore) HasSeen() bool {
	if s.seenAt.IsZero() {
		return false
	}
	return s.clock().Sub(s.seenAt) < SessionTTL
}

// MarkSeen 以当前时间写入标记
func (s *IntroStore) MarkSeen() error {
	s.seenAt = s.clock()
	return s.save()
}

// Reset 清除标记，下次启动重新播放开场
func (s *IntroStore) Reset() error {
	s.seenAt = time.Time{}
	return s.save()
}

func (s *IntroStore) save() error {
	if s.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(introRecord{SeenAt: s.seenAt})
	if err != nil {
		return fmt.Errorf("failed to marshal intro flag: %w", err)
	}
	if err := s.gdataManager.SaveObjectProp(introObject, introProperty, data); err != nil {
		return fmt.Errorf("failed to save intro flag: %w", err)
	}
	return nil
}
