package ecs

import (
	"reflect"
	"testing"

	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/utils"
)

// nopRenderer 丢弃所有绘制调用
type nopRenderer struct{}

func (nopRenderer) Clear(platform.Color) {}
func (nopRenderer) DrawSprite(utils.Vector, platform.ImageRegion, platform.Color) {}
func (nopRenderer) DrawRect(x, y, w, h float64, c platform.Color) {}
func (nopRenderer) DrawCircle(x, y, r float64, c platform.Color) {}
func (nopRenderer) DrawCircleOutline(x, y, r float64, c platform.Color) {}
func (nopRenderer) DrawLine(x1, y1, x2, y2 float64, c platform.Color) {}
func (nopRenderer) DrawPixel(x, y float64, c platform.Color) {}
func (nopRenderer) DrawText(x, y float64, s string, c platform.Color) {}
func (nopRenderer) Remap(from, to platform.Color) {}
func (nopRenderer) ResetRemap() {}

// probe 记录调用顺序的测试对象
type probe struct {
	name   string
	log    *[]string
	onTick func()
}

func (p *probe) Update(dt, t float64) {
	*p.log = append(*p.log, p.name)
	if p.onTick != nil {
		p.onTick()
	}
}

func (p *probe) Draw(r platform.Renderer) {
	*p.log = append(*p.log, p.name)
}

// TestDrawOrder 背景 X、主层 Y（旧）Z（新）、前景 W 的绘制顺序为 X Z Y W
func TestDrawOrder(t *testing.T) {
	var log []string
	r := NewRegistry()
	x := &probe{name: "X", log: &log}
	y := &probe{name: "Y", log: &log}
	z := &probe{name: "Z", log: &log}
	w := &probe{name: "W", log: &log}

	r.AssignLayer(w, LayerFore)
	r.AssignLayer(y, LayerMain)
	r.AssignLayer(x, LayerBack)
	r.AssignLayer(z, LayerMain)

	r.DrawAll(nopRenderer{})

	want := []string{"X", "Z", "Y", "W"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("got %v, want %v", log, want)
	}
}

// TestAssignLayerMoves 重新分配层会先从旧层移除
func TestAssignLayerMoves(t *testing.T) {
	var log []string
	r := NewRegistry()
	p := &probe{name: "P", log: &log}

	r.AssignLayer(p, LayerBack)
	r.AssignLayer(p, LayerFore)

	if r.LayerLen(LayerBack) != 0 || r.LayerLen(LayerFore) != 1 {
		t.Errorf("got back=%d fore=%d, want 0 and 1", r.LayerLen(LayerBack), r.LayerLen(LayerFore))
	}
	if l, ok := r.LayerOf(p); !ok || l != LayerFore {
		t.Errorf("LayerOf: got %v %v, want fore", l, ok)
	}

	r.RemoveFromLayer(p)
	r.RemoveFromLayer(p) // 再次移除无效果
	if _, ok := r.LayerOf(p); ok {
		t.Error("object should not be in any layer")
	}
}

// TestRegisterIdempotent 重复注册和重复注销
func TestRegisterIdempotent(t *testing.T) {
	var log []string
	r := NewRegistry()
	p := &probe{name: "P", log: &log}

	r.RegisterForUpdate(p)
	r.RegisterForUpdate(p)
	if r.UpdatableCount() != 1 {
		t.Errorf("count: got %d, want 1", r.UpdatableCount())
	}

	r.AdvanceAll(0.016, 1)
	if len(log) != 1 {
		t.Errorf("updates: got %d, want 1", len(log))
	}

	r.UnregisterForUpdate(p)
	r.UnregisterForUpdate(p)
	if r.IsRegistered(p) || r.UpdatableCount() != 0 {
		t.Error("object should be unregistered")
	}
}

// TestAdvanceAllMutation 推进过程中的注册和注销
func TestAdvanceAllMutation(t *testing.T) {
	var log []string
	r := NewRegistry()
	b := &probe{name: "B", log: &log}
	late := &probe{name: "late", log: &log}
	a := &probe{name: "A", log: &log, onTick: func() {
		r.UnregisterForUpdate(b)
		r.RegisterForUpdate(late)
	}}
	c := &probe{name: "C", log: &log}

	r.RegisterForUpdate(a)
	r.RegisterForUpdate(b)
	r.RegisterForUpdate(c)

	r.AdvanceAll(0.016, 1)
	if want := []string{"A", "C"}; !reflect.DeepEqual(log, want) {
		t.Fatalf("first frame: got %v, want %v", log, want)
	}

	log = log[:0]
	a.onTick = nil
	r.AdvanceAll(0.016, 2)
	if want := []string{"A", "C", "late"}; !reflect.DeepEqual(log, want) {
		t.Errorf("second frame: got %v, want %v", log, want)
	}
}

// TestClear 清空注册表
func TestClear(t *testing.T) {
	var log []string
	r := NewRegistry()
	p := &probe{name: "P", log: &log}
	r.RegisterForUpdate(p)
	r.AssignLayer(p, LayerMain)

	r.Clear()

	r.AdvanceAll(0.016, 1)
	r.DrawAll(nopRenderer{})
	if len(log) != 0 {
		t.Errorf("got %v, want no calls", log)
	}
}

// TestCreateEntity ID 单调递增且从 1 开始
func TestCreateEntity(t *testing.T) {
	r := NewRegistry()
	if id := r.CreateEntity(); id != 1 {
		t.Errorf("first id: got %d, want 1", id)
	}
	if id := r.CreateEntity(); id != 2 {
		t.Errorf("second id: got %d, want 2", id)
	}
}
