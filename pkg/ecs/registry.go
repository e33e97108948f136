// Package ecs 管理所有活动对象：每帧推进的可更新集合和分层的可绘制集合
package ecs

import "github.com/decker502/lastfighter/pkg/platform"

// EntityID 实体的唯一标识符，只用于日志和调试
type EntityID uint64

// Updatable 每帧推进的对象
type Updatable interface {
	Update(dt, t float64)
}

// Drawable 可绘制的对象
type Drawable interface {
	Draw(r platform.Renderer)
}

// Layer 绘制层
type Layer int

const (
	LayerBack Layer = iota // 背景（星空、粒子）
	LayerMain              // 主层（飞船、敌机、子弹）
	LayerFore              // 前景（闪光、血条）

	layerCount
)

// String 层名
func (l Layer) String() string {
	switch l {
	case LayerBack:
		return "back"
	case LayerMain:
		return "main"
	case LayerFore:
		return "fore"
	}
	return "unknown"
}

// Registry 活动对象注册表
//
// 可更新集合和三个绘制层都保持插入顺序，成员关系用 map 记录。
// 注册的值必须可比较（指针）。
type Registry struct {
	nextID uint64

	updatables []Updatable
	updSet     map[Updatable]struct{}

	layers  [layerCount][]Drawable
	layerOf map[Drawable]Layer
}

// NewRegistry 创建空的注册表
func NewRegistry() *Registry {
	return &Registry{
		nextID:  1, // 0 保留为无效 ID
		updSet:  make(map[Updatable]struct{}),
		layerOf: make(map[Drawable]Layer),
	}
}

// CreateEntity 分配新的实体 ID
func (r *Registry) CreateEntity() EntityID {
	id := EntityID(r.nextID)
	r.nextID++
	return id
}

// RegisterForUpdate 加入可更新集合，重复注册无效果
func (r *Registry) RegisterForUpdate(u Updatable) {
	if _, ok := r.updSet[u]; ok {
		return
	}
	r.updSet[u] = struct{}{}
	r.updatables = append(r.updatables, u)
}

// UnregisterForUpdate 移出可更新集合，不在集合中时无效果
func (r *Registry) UnregisterForUpdate(u Updatable) {
	if _, ok := r.updSet[u]; !ok {
		return
	}
	delete(r.updSet, u)
	r.updatables = removeFirst(r.updatables, u)
}

// IsRegistered 是否在可更新集合中
func (r *Registry) IsRegistered(u Updatable) bool {
	_, ok := r.updSet[u]
	return ok
}

// UpdatableCount 可更新对象数量
func (r *Registry) UpdatableCount() int {
	return len(r.updatables)
}

// AssignLayer 把对象放到指定层，已在其他层时先移出
func (r *Registry) AssignLayer(d Drawable, layer Layer) {
	if layer < 0 || layer >= layerCount {
		return
	}
	if cur, ok := r.layerOf[d]; ok {
		if cur == layer {
			return
		}
		r.layers[cur] = removeFirst(r.layers[cur], d)
	}
	r.layerOf[d] = layer
	r.layers[layer] = append(r.layers[layer], d)
}

// RemoveFromLayer 从所在层移除，不在任何层时无效果
func (r *Registry) RemoveFromLayer(d Drawable) {
	cur, ok := r.layerOf[d]
	if !ok {
		return
	}
	delete(r.layerOf, d)
	r.layers[cur] = removeFirst(r.layers[cur], d)
}

// LayerOf 返回对象所在层
func (r *Registry) LayerOf(d Drawable) (Layer, bool) {
	l, ok := r.layerOf[d]
	return l, ok
}

// LayerLen 某层的对象数量
func (r *Registry) LayerLen(layer Layer) int {
	if layer < 0 || layer >= layerCount {
		return 0
	}
	return len(r.layers[layer])
}

// AdvanceAll 按插入顺序推进所有可更新对象
//
// 遍历的是快照：本轮中被前面对象移除的对象会被跳过，
// 本轮新注册的对象从下一帧开始推进。
func (r *Registry) AdvanceAll(dt, t float64) {
	if len(r.updatables) == 0 {
		return
	}
	snapshot := make([]Updatable, len(r.updatables))
	copy(snapshot, r.updatables)
	for _, u := range snapshot {
		if _, ok := r.updSet[u]; !ok {
			continue
		}
		u.Update(dt, t)
	}
}

// DrawAll 依次绘制背景层（插入顺序）、主层（逆序，后加入的在下面）和前景层（插入顺序）
func (r *Registry) DrawAll(rd platform.Renderer) {
	r.DrawLayer(rd, LayerBack)
	r.DrawLayer(rd, LayerMain)
	r.DrawLayer(rd, LayerFore)
}

// DrawLayer 只绘制一层
func (r *Registry) DrawLayer(rd platform.Renderer, layer Layer) {
	if layer < 0 || layer >= layerCount {
		return
	}
	items := make([]Drawable, len(r.layers[layer]))
	copy(items, r.layers[layer])
	if layer == LayerMain {
		for i := len(items) - 1; i >= 0; i-- {
			items[i].Draw(rd)
		}
		return
	}
	for _, d := range items {
		d.Draw(rd)
	}
}

// Clear 清空所有注册
func (r *Registry) Clear() {
	r.updatables = nil
	r.updSet = make(map[Updatable]struct{})
	for i := range r.layers {
		r.layers[i] = nil
	}
	r.layerOf = make(map[Drawable]Layer)
}

// removeFirst 删除第一个等于 v 的元素，保持其余顺序
func removeFirst[T comparable](s []T, v T) []T {
	for i, x := range s {
		if x == v {
			copy(s[i:], s[i+1:])
			var zero T
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}
