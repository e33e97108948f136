package game

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/quasilyte/gdata/v2"
	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

// ErrScoresTampered 最高分记录的校验和不匹配
var ErrScoresTampered = errors.New("high score record checksum mismatch")

// 存储路径常量
const (
	scoresObject   = "scores"
	scoresProperty = "table"
)

// checksumKey blake2b 的密钥，只用于发现手工修改，不是安全边界
var checksumKey = []byte("lastspacefighter/hiscores/v1")

// scoreRecord 持久化格式
type scoreRecord struct {
	Scores   []int  `yaml:"scores"`
	Checksum string `yaml:"checksum"`
}

// scoreChecksum 对分数表计算带密钥的 blake2b-256
func scoreChecksum(scores []int) (string, error) {
	h, err := blake2b.New256(checksumKey)
	if err != nil {
		return "", fmt.Errorf("init checksum: %w", err)
	}
	for _, s := range scores {
		h.Write(strconv.AppendInt(nil, int64(s), 10))
		h.Write([]byte{';'})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// GdataScoreStore 通过 gdata 保存最高分，记录为带校验和的 YAML
type GdataScoreStore struct {
	manager *gdata.Manager
}

// NewGdataScoreStore 创建 gdata 最高分存储
func NewGdataScoreStore(m *gdata.Manager) *GdataScoreStore {
	return &GdataScoreStore{manager: m}
}

// OpenGdataScoreStore 以 appName 打开 gdata 存储目录
func OpenGdataScoreStore(appName string) (*GdataScoreStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open gdata %s: %w", appName, err)
	}
	return NewGdataScoreStore(m), nil
}

// Manager 底层 gdata 管理器（设置管理器共用同一个目录）
func (s *GdataScoreStore) Manager() *gdata.Manager {
	return s.manager
}

// LoadHighScores 读取并校验记录，没有记录时返回 ErrNoHighScores
func (s *GdataScoreStore) LoadHighScores() ([]int, error) {
	if !s.manager.ObjectPropExists(scoresObject, scoresProperty) {
		return nil, ErrNoHighScores
	}
	data, err := s.manager.LoadObjectProp(scoresObject, scoresProperty)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}

	var rec scoreRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scores: %w", err)
	}
	sum, err := scoreChecksum(rec.Scores)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(sum), []byte(rec.Checksum)) != 1 {
		return nil, ErrScoresTampered
	}
	return rec.Scores, nil
}

// SaveHighScores 写入带校验和的记录
func (s *GdataScoreStore) SaveHighScores(scores []int) error {
	sum, err := scoreChecksum(scores)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(scoreRecord{Scores: scores, Checksum: sum})
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}
	if err := s.manager.SaveObjectProp(scoresObject, scoresProperty, data); err != nil {
		return fmt.Errorf("failed to save scores: %w", err)
	}
	return nil
}

// MemoryStore 进程内最高分存储
type MemoryStore struct {
	scores  []int
	matches []int
}

// LoadHighScores 返回保存过的表，从未保存时返回 ErrNoHighScores
func (s *MemoryStore) LoadHighScores() ([]int, error) {
	if s.scores == nil {
		return nil, ErrNoHighScores
	}
	return append([]int(nil), s.scores...), nil
}

// SaveHighScores 保存副本
func (s *MemoryStore) SaveHighScores(scores []int) error {
	s.scores = append([]int(nil), scores...)
	return nil
}

// RecordMatch 记录一局的分数
func (s *MemoryStore) RecordMatch(score int, _ bool) error {
	s.matches = append(s.matches, score)
	return nil
}

// Matches 记录过的所有分数
func (s *MemoryStore) Matches() []int {
	return append([]int(nil), s.matches...)
}
