package game

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/decker502/lastfighter/pkg/platform"
	"github.com/decker502/lastfighter/pkg/utils"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// textRenderer 只记录文字的渲染器
type textRenderer struct {
	platform.Renderer
	texts []drawnText
}

type drawnText struct {
	x, y float64
	s    string
	c    platform.Color
}

func (r *textRenderer) DrawText(x, y float64, s string, c platform.Color) {
	r.texts = append(r.texts, drawnText{x, y, s, c})
}

func (r *textRenderer) find(s string) (drawnText, bool) {
	for _, d := range r.texts {
		if strings.TrimSpace(d.s) == s {
			return d, true
		}
	}
	return drawnText{}, false
}

// failingStore 读写都失败的存储
type failingStore struct{}

func (failingStore) LoadHighScores() ([]int, error) { return nil, errors.New("disk on fire") }
func (failingStore) SaveHighScores([]int) error     { return errors.New("disk on fire") }

// openTestGdata 在临时目录打开 gdata
func openTestGdata(t *testing.T) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	m, err := gdata.Open(gdata.Config{AppName: "lastfighter_test"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

func TestHighScoreUpdate(t *testing.T) {
	tests := []struct {
		name    string
		score   int
		want    []int
		wantNew bool
		wantIdx int
	}{
		{"低于最低分", 500, []int{1000, 2000, 3000, 4000, 5000}, false, -1},
		{"等于最低分不算", 1000, []int{1000, 2000, 3000, 4000, 5000}, false, -1},
		{"中间插入", 3500, []int{2000, 3000, 3500, 4000, 5000}, true, 2},
		{"新的最高分", 90000, []int{2000, 3000, 4000, 5000, 90000}, true, 4},
		{"与已有分数相同", 4000, []int{2000, 3000, 4000, 4000, 5000}, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewHighScoreManager(nil, nil)
			if got := m.Update(tt.score); got != tt.wantNew {
				t.Errorf("Update(%d) = %v, want %v", tt.score, got, tt.wantNew)
			}
			if got := m.Scores(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Scores() = %v, want %v", got, tt.want)
			}
			if got := m.NewIndex(); got != tt.wantIdx {
				t.Errorf("NewIndex() = %d, want %d", got, tt.wantIdx)
			}
			if m.LastScore() != tt.score {
				t.Errorf("LastScore() = %d, want %d", m.LastScore(), tt.score)
			}
		})
	}
}

func TestHighScoreRecordPersists(t *testing.T) {
	store := &MemoryStore{}
	m := NewHighScoreManager(store, nil)
	m.Record(7000)

	m.Record(10)

	reloaded := NewHighScoreManager(store, nil)
	want := []int{2000, 3000, 4000, 5000, 7000}
	if got := reloaded.Scores(); !reflect.DeepEqual(got, want) {
		t.Errorf("reloaded Scores() = %v, want %v", got, want)
	}
	if got := store.Matches(); !reflect.DeepEqual(got, []int{7000, 10}) {
		t.Errorf("Matches() = %v, want [7000 10]", got)
	}
}

func TestHighScoreStoreFailure(t *testing.T) {
	m := NewHighScoreManager(failingStore{}, nil)
	if got := m.Scores(); !reflect.DeepEqual(got, DefaultHighScores()) {
		t.Errorf("Scores() = %v, want defaults", got)
	}
	// 保存失败不影响内存中的表
	m.Record(6000)
	if got := m.Scores()[4]; got != 6000 {
		t.Errorf("top score = %d, want 6000", got)
	}
	if err := m.Save(); err == nil {
		t.Error("Save() should report the store error")
	}
}

func TestHighScoreLoadSortsAndValidates(t *testing.T) {
	store := &MemoryStore{}
	_ = store.SaveHighScores([]int{5, 4, 3, 2, 1})
	m := NewHighScoreManager(store, nil)
	if got := m.Scores(); !reflect.DeepEqual(got, []int{1, 2, 3, 4, 5}) {
		t.Errorf("Scores() = %v, want sorted", got)
	}

	_ = store.SaveHighScores([]int{1, 2})
	if err := m.Load(); err == nil {
		t.Error("Load() with 2 entries should fail")
	}
}

func TestHighScoreDrawTable(t *testing.T) {
	m := NewHighScoreManager(nil, nil)
	m.Update(4500)

	r := &textRenderer{}
	m.DrawTable(r, utils.Vec(10, 20), true)

	title, ok := r.find("HIGH-SCORE")
	if !ok || title.x != 10 || title.y != 20 {
		t.Errorf("HIGH-SCORE at %+v, want (10, 20)", title)
	}
	// 最高分排第 1，画在第一行
	first, ok := r.find("5000")
	if !ok || first.y != 26 {
		t.Errorf("5000 at %+v, want y=26", first)
	}
	mark, ok := r.find("< NEW")
	if !ok || mark.c != platform.Red {
		t.Fatalf("< NEW mark missing or wrong colour: %+v", mark)
	}
	score, _ := r.find("4500")
	if mark.y != score.y {
		t.Errorf("< NEW at y=%v, want y=%v", mark.y, score.y)
	}
	last, ok := r.find("LAST SCORE")
	if !ok || last.c != platform.Pink {
		t.Errorf("LAST SCORE colour = %v, want %v", last.c, platform.Pink)
	}
}

func TestGdataScoreStore(t *testing.T) {
	store := NewGdataScoreStore(openTestGdata(t))

	if _, err := store.LoadHighScores(); !errors.Is(err, ErrNoHighScores) {
		t.Fatalf("empty store: got %v, want %v", err, ErrNoHighScores)
	}

	want := []int{1500, 2000, 3000, 4000, 5000}
	if err := store.SaveHighScores(want); err != nil {
		t.Fatalf("SaveHighScores() error: %v", err)
	}
	got, err := store.LoadHighScores()
	if err != nil {
		t.Fatalf("LoadHighScores() error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGdataScoreStoreTampered(t *testing.T) {
	mgr := openTestGdata(t)
	store := NewGdataScoreStore(mgr)
	if err := store.SaveHighScores(DefaultHighScores()); err != nil {
		t.Fatalf("SaveHighScores() error: %v", err)
	}

	data, err := mgr.LoadObjectProp(scoresObject, scoresProperty)
	if err != nil {
		t.Fatalf("LoadObjectProp() error: %v", err)
	}
	var rec scoreRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	rec.Scores[4] = 999999
	data, _ = yaml.Marshal(rec)
	if err := mgr.SaveObjectProp(scoresObject, scoresProperty, data); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	if _, err := store.LoadHighScores(); !errors.Is(err, ErrScoresTampered) {
		t.Errorf("got %v, want %v", err, ErrScoresTampered)
	}

	// 最高分表回退为默认值
	m := NewHighScoreManager(store, nil)
	if got := m.Scores(); !reflect.DeepEqual(got, DefaultHighScores()) {
		t.Errorf("Scores() = %v, want defaults", got)
	}
}

func TestScoreChecksumStable(t *testing.T) {
	a, _ := scoreChecksum([]int{1, 23})
	b, _ := scoreChecksum([]int{12, 3})
	if a == b {
		t.Error("checksum must separate entries")
	}
	c, _ := scoreChecksum([]int{1, 23})
	if a != c {
		t.Errorf("checksum not deterministic: %s != %s", a, c)
	}
}
