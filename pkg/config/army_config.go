package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/decker502/lastfighter/pkg/embedded"
	"github.com/decker502/lastfighter/pkg/types"
	"github.com/decker502/lastfighter/pkg/utils"
	"gopkg.in/yaml.v3"
)

// ErrInvalidArmy 军队配置不合法
var ErrInvalidArmy = errors.New("invalid army config")

// ArmyConfig 军队配置：小队定义 + 波次列表
// 每个波次是小队索引的有序列表，小队展开为若干兵种模板
type ArmyConfig struct {
	Troops []TroopGroup `yaml:"troops"`
	Waves  [][]int      `yaml:"waves"`
}

// TroopGroup 一个命名小队，按顺序出场
type TroopGroup struct {
	Name     string          `yaml:"name"`
	Soldiers []TroopTemplate `yaml:"soldiers"`
}

// TroopTemplate 单个敌机的出场模板
type TroopTemplate struct {
	Type        string   `yaml:"type"`        // 敌机类型："green", "worm", "xrotator" ...
	Pos         *Point   `yaml:"pos"`         // 出场位置（sider 不需要）
	Dir         int      `yaml:"dir"`         // 方向 1 或 -1，默认 1
	Destination *Point   `yaml:"destination"` // 目的地（xrotator 需要）
	Delay       *float64 `yaml:"delay"`       // 距上一次出场的间隔（秒），缺省表示等待清屏
}

// HasDelay 模板是否定义了出场间隔
func (t TroopTemplate) HasDelay() bool {
	return t.Delay != nil
}

// DelaySeconds 出场间隔，未定义时为 0
func (t TroopTemplate) DelaySeconds() float64 {
	if t.Delay == nil {
		return 0
	}
	return *t.Delay
}

// Position 出场位置，未定义时为原点
func (t TroopTemplate) Position() utils.Vector {
	if t.Pos == nil {
		return utils.Vector{}
	}
	return t.Pos.Vector()
}

// Point 配置中的坐标，支持数值或符号锚点（L C R T M B W H MW）
//
// YAML 中写作 [L, 0] 或 {x: L, y: 0}
type Point struct {
	X, Y float64
}

// Vector 转换为向量
func (p Point) Vector() utils.Vector {
	return utils.Vec(p.X, p.Y)
}

// UnmarshalYAML 解析序列或映射形式的坐标
func (p *Point) UnmarshalYAML(node *yaml.Node) error {
	var xs, ys string
	switch node.Kind {
	case yaml.SequenceNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: point needs 2 coordinates, got %d", node.Line, len(node.Content))
		}
		xs, ys = node.Content[0].Value, node.Content[1].Value
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			switch node.Content[i].Value {
			case "x":
				xs = node.Content[i+1].Value
			case "y":
				ys = node.Content[i+1].Value
			}
		}
	default:
		return fmt.Errorf("line %d: point must be a sequence or a mapping", node.Line)
	}

	x, err := parseCoord(xs)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	y, err := parseCoord(ys)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	p.X, p.Y = x, y
	return nil
}

// parseCoord 解析单个坐标
func parseCoord(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if v, ok := anchors[strings.ToUpper(s)]; ok {
		return v, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unknown coordinate %q", s)
	}
	return v, nil
}

// LoadArmyConfig 加载军队配置
//
// 以 "data/" 开头的路径从嵌入资源读取，其余从文件系统读取。
func LoadArmyConfig(path string) (*ArmyConfig, error) {
	data, err := ReadDataFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read army config %s: %w", path, err)
	}
	cfg, err := ParseArmyConfig(data)
	if err != nil {
		return nil, fmt.Errorf("army config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseArmyConfig 解析 YAML 数据，应用默认值并校验
func ParseArmyConfig(data []byte) (*ArmyConfig, error) {
	var cfg ArmyConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse army YAML: %w", err)
	}

	applyArmyDefaults(&cfg)

	if err := validateArmyConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WaveTemplates 展开第 wave 个波次的全部模板
func (a *ArmyConfig) WaveTemplates(wave int) []TroopTemplate {
	if wave < 0 || wave >= len(a.Waves) {
		return nil
	}
	var out []TroopTemplate
	for _, idx := range a.Waves[wave] {
		out = append(out, a.Troops[idx].Soldiers...)
	}
	return out
}

// applyArmyDefaults 为缺失的可选字段设置默认值
func applyArmyDefaults(cfg *ArmyConfig) {
	for i := range cfg.Troops {
		for j := range cfg.Troops[i].Soldiers {
			s := &cfg.Troops[i].Soldiers[j]
			if s.Dir == 0 {
				s.Dir = 1
			}
			s.Type = strings.ToLower(strings.TrimSpace(s.Type))
		}
	}
}

// validateArmyConfig 验证军队配置的完整性
//
// 类型必须写明（间歇用 "none"），是否可构造由兵工厂在出场时判断。
func validateArmyConfig(cfg *ArmyConfig) error {
	if len(cfg.Waves) == 0 {
		return fmt.Errorf("%w: at least one wave is required", ErrInvalidArmy)
	}

	for i, troop := range cfg.Troops {
		if len(troop.Soldiers) == 0 {
			return fmt.Errorf("%w: troop %d (%s) has no soldiers", ErrInvalidArmy, i, troop.Name)
		}
		for j, s := range troop.Soldiers {
			if s.Type == "" {
				return fmt.Errorf("%w: troop %d soldier %d: type is required", ErrInvalidArmy, i, j)
			}
			if s.Delay != nil && *s.Delay < 0 {
				return fmt.Errorf("%w: troop %d soldier %d: delay cannot be negative", ErrInvalidArmy, i, j)
			}
			if s.Dir != 1 && s.Dir != -1 {
				return fmt.Errorf("%w: troop %d soldier %d: dir must be 1 or -1, got %d", ErrInvalidArmy, i, j, s.Dir)
			}
			switch types.OpponentTypeFromString(s.Type) {
			case types.OpponentXRotator:
				if s.Pos == nil || s.Destination == nil {
					return fmt.Errorf("%w: troop %d soldier %d: xrotator needs pos and destination", ErrInvalidArmy, i, j)
				}
			case types.OpponentGreen, types.OpponentWorm, types.OpponentStairs,
				types.OpponentBoss, types.OpponentPendulum, types.OpponentBigBoss:
				if s.Pos == nil {
					return fmt.Errorf("%w: troop %d soldier %d: %s needs pos", ErrInvalidArmy, i, j, s.Type)
				}
			}
		}
	}

	for i, wave := range cfg.Waves {
		if len(wave) == 0 {
			return fmt.Errorf("%w: wave %d is empty", ErrInvalidArmy, i)
		}
		for _, idx := range wave {
			if idx < 0 || idx >= len(cfg.Troops) {
				return fmt.Errorf("%w: wave %d references troop %d, only %d troops defined", ErrInvalidArmy, i, idx, len(cfg.Troops))
			}
		}
	}
	return nil
}

// ReadDataFile 读取数据文件，"data/" 前缀走嵌入资源
func ReadDataFile(path string) ([]byte, error) {
	if strings.HasPrefix(path, "data/") && embedded.IsInitialized() {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}
