// Package types 定义共享的基础类型
package types

// OpponentType 定义敌机的种类
type OpponentType int

const (
	// OpponentUnknown 未知类型（配置错误）
	OpponentUnknown OpponentType = iota

	// OpponentNone 占位类型，不生成敌机，只消耗延迟（波次之间的间歇）
	OpponentNone

	// 第一关
	OpponentGreen  // 绿色小兵，正弦漂移并瞄准射击
	OpponentWorm   // 蓝色虫群，绕圈下落
	OpponentStairs // 紫色阶梯
	OpponentBoss   // 第一关 Boss

	// 第二关
	OpponentXRotator // 往返于起点和目的地之间
	OpponentSider    // 沿网格折线移动，螺旋弹幕
	OpponentPendulum // 钟摆
	OpponentTowerGun // 大 Boss 的炮塔，只能由大 Boss 生成
	OpponentBigBoss  // 最终 Boss
)

// opponentTypeStringMap 敌机类型到配置字符串的映射
var opponentTypeStringMap = map[OpponentType]string{
	OpponentNone:     "none",
	OpponentGreen:    "green",
	OpponentWorm:     "worm",
	OpponentStairs:   "stairs",
	OpponentBoss:     "boss",
	OpponentXRotator: "xrotator",
	OpponentSider:    "sider",
	OpponentPendulum: "pendulum",
	OpponentTowerGun: "towergun",
	OpponentBigBoss:  "bigboss",
}

// stringToOpponentTypeMap 配置字符串到敌机类型的反向映射
var stringToOpponentTypeMap map[string]OpponentType

func init() {
	stringToOpponentTypeMap = make(map[string]OpponentType, len(opponentTypeStringMap))
	for ot, s := range opponentTypeStringMap {
		stringToOpponentTypeMap[s] = ot
	}
	// 别名：旧数据使用的类名
	stringToOpponentTypeMap["en1"] = OpponentGreen
	stringToOpponentTypeMap["en2"] = OpponentWorm
	stringToOpponentTypeMap["en3"] = OpponentStairs
}

// String 返回敌机类型的配置字符串表示
func (o OpponentType) String() string {
	if s, ok := opponentTypeStringMap[o]; ok {
		return s
	}
	return "unknown"
}

// OpponentTypeFromString 将配置字符串转换为 OpponentType
// 无法识别时返回 OpponentUnknown
func OpponentTypeFromString(s string) OpponentType {
	if ot, ok := stringToOpponentTypeMap[s]; ok {
		return ot
	}
	return OpponentUnknown
}

// IsBoss 是否为 Boss 类（有血条、独占背景音乐）
func (o OpponentType) IsBoss() bool {
	return o == OpponentBoss || o == OpponentBigBoss
}
