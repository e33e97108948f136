package audio

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/decker502/lastfighter/pkg/config"
	"github.com/gopxl/beep"
)

// musicStep 音乐的节拍步长
const musicStep = 125 * time.Millisecond

// Bank 预渲染的音效和音乐
type Bank struct {
	format beep.Format
	sounds map[int]*beep.Buffer
	music  map[int]*beep.Buffer
}

// NewBank 以采样率 sampleRate 渲染全部声音，seed 决定噪声
func NewBank(sampleRate int, seed int64) (*Bank, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	rate := beep.SampleRate(sampleRate)
	rng := rand.New(rand.NewSource(seed))
	b := &Bank{
		format: beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2},
		sounds: make(map[int]*beep.Buffer),
		music:  make(map[int]*beep.Buffer),
	}
	// 按编号顺序渲染，噪声只取决于 seed
	sounds := soundDefs(rate, rng)
	for _, id := range sortedKeys(sounds) {
		b.sounds[id] = b.render(sounds[id])
	}
	music := musicDefs(rate, rng)
	for _, id := range sortedKeys(music) {
		b.music[id] = b.render(music[id])
	}
	return b, nil
}

func (b *Bank) render(s beep.Streamer) *beep.Buffer {
	buf := beep.NewBuffer(b.format)
	buf.Append(s)
	return buf
}

// Format 渲染格式
func (b *Bank) Format() beep.Format {
	return b.format
}

// Sound 音效的新流，不存在时返回 false
func (b *Bank) Sound(id int) (beep.StreamSeeker, bool) {
	buf, ok := b.sounds[id]
	if !ok {
		return nil, false
	}
	return buf.Streamer(0, buf.Len()), true
}

// Music 音乐曲目的新流
func (b *Bank) Music(track int) (beep.StreamSeeker, bool) {
	buf, ok := b.music[track]
	if !ok {
		return nil, false
	}
	return buf.Streamer(0, buf.Len()), true
}

// SoundLen 音效的采样数
func (b *Bank) SoundLen(id int) int {
	if buf, ok := b.sounds[id]; ok {
		return buf.Len()
	}
	return 0
}

// MusicLen 曲目的采样数
func (b *Bank) MusicLen(track int) int {
	if buf, ok := b.music[track]; ok {
		return buf.Len()
	}
	return 0
}

// SoundIDs 全部音效编号（升序）
func (b *Bank) SoundIDs() []int {
	return sortedKeys(b.sounds)
}

func sortedKeys[V any](m map[int]V) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// tone 单个带包络的音
func tone(from, to float64, d time.Duration, wave WaveType, vol float64, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	osc := NewOscillator(from, to, d, wave, rate, rng)
	return newVolume(NewEnvelope(osc, d, 2*time.Millisecond, d*2/3, rate), vol)
}

// noise 噪声爆炸
func noise(d time.Duration, vol float64, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	return tone(0, 0, d, WaveNoise, vol, rate, rng)
}

// soundDefs 音效定义，编号见 config.Sound*
func soundDefs(rate beep.SampleRate, rng *rand.Rand) map[int]beep.Streamer {
	ms := time.Millisecond
	defs := map[int]beep.Streamer{
		config.SoundShipFire:      tone(1200, 600, 60*ms, WaveSquare, 0.25, rate, rng),
		config.SoundExplosion:     noise(300*ms, 0.5, rate, rng),
		config.SoundExplosionHigh: beep.Mix(noise(200*ms, 0.4, rate, rng), tone(900, 200, 200*ms, WaveSquare, 0.2, rate, rng)),
		config.SoundExplosionLow:  beep.Mix(noise(600*ms, 0.6, rate, rng), tone(180, 40, 600*ms, WaveTriangle, 0.5, rate, rng)),
		config.SoundShipHit:       beep.Seq(tone(400, 100, 150*ms, WaveSaw, 0.4, rate, rng), noise(250*ms, 0.5, rate, rng)),
		config.SoundBossHit:       tone(220, 160, 50*ms, WaveSquare, 0.3, rate, rng),
		config.SoundSpawnGreen:    tone(300, 900, 120*ms, WaveTriangle, 0.3, rate, rng),
		config.SoundSpawnWorm:     tone(600, 1200, 80*ms, WaveSine, 0.3, rate, rng),
		config.SoundSpawnHeavy:    tone(120, 360, 300*ms, WaveSaw, 0.35, rate, rng),
		config.SoundBossArrival: beep.Seq(
			tone(110, 110, 400*ms, WaveSaw, 0.4, rate, rng),
			tone(104, 104, 400*ms, WaveSaw, 0.4, rate, rng),
			tone(98, 49, 800*ms, WaveSaw, 0.45, rate, rng),
		),
	}
	// 虫群出场音：C 大调的七个音
	scale := []int{72, 74, 76, 77, 79, 81, 83}
	for i := 0; i < config.WormNotes; i++ {
		f := MidiFreq(scale[i%len(scale)])
		defs[config.SoundWormNote+i] = tone(f, f, 90*ms, WaveSquare, 0.2, rate, rng)
	}
	return defs
}

// musicDefs 四首曲目，编号见 config.Music*
func musicDefs(rate beep.SampleRate, rng *rand.Rand) map[int]beep.Streamer {
	n := func(p, s int) Note { return Note{Pitch: p, Steps: s} }

	gameOver := []Note{n(67, 2), n(66, 2), n(65, 2), n(64, 6), Rest(2), n(60, 8)}
	gameOverBass := []Note{n(43, 4), n(41, 4), n(36, 14)}

	boss := []Note{
		n(57, 1), n(57, 1), n(60, 1), n(57, 1), n(63, 2), n(62, 2),
		n(57, 1), n(57, 1), n(60, 1), n(57, 1), n(56, 2), n(55, 2),
	}
	bossBass := []Note{n(33, 2), n(33, 2), n(33, 2), n(33, 2), n(32, 2), n(32, 2), n(31, 2), n(31, 2)}

	intro := []Note{
		n(64, 2), n(67, 2), n(72, 4), n(71, 2), n(67, 2), n(64, 4),
		n(65, 2), n(69, 2), n(72, 4), n(74, 2), n(71, 2), n(67, 4),
	}
	introBass := []Note{n(48, 8), n(43, 8), n(41, 8), n(43, 8)}

	combat := []Note{
		n(69, 1), n(72, 1), n(76, 1), n(72, 1), n(74, 2), n(72, 1), n(71, 1),
		n(69, 1), n(72, 1), n(76, 1), n(79, 1), n(77, 2), n(76, 2),
		n(74, 1), n(77, 1), n(81, 1), n(77, 1), n(79, 2), n(77, 1), n(76, 1),
		n(74, 1), n(72, 1), n(71, 1), n(72, 1), n(69, 4),
	}
	combatBass := []Note{
		n(45, 2), n(45, 2), n(45, 2), n(45, 2), n(41, 2), n(41, 2), n(43, 2), n(43, 2),
		n(38, 2), n(38, 2), n(38, 2), n(38, 2), n(40, 2), n(40, 2), n(45, 4),
	}

	track := func(lead, bass []Note) beep.Streamer {
		return beep.Mix(
			melody(lead, musicStep, WaveSquare, 0.25, rate, rng),
			melody(bass, musicStep, WaveTriangle, 0.35, rate, rng),
		)
	}
	return map[int]beep.Streamer{
		config.MusicGameOver: track(gameOver, gameOverBass),
		config.MusicBoss:     track(boss, bossBass),
		config.MusicIntro:    track(intro, introBass),
		config.MusicCombat:   track(combat, combatBass),
	}
}

