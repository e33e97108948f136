// Package audio 用 beep 合成游戏的芯片音乐和音效
//
// 所有声音在 Bank 创建时一次性渲染到 beep.Buffer，之后只读；
// 桌面端导出为 PCM 交给 ebiten，终端端通过 beep speaker 直接播放。
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType 振荡器波形
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveSaw
	WaveNoise
)

// oscillator 产生固定时长的原始波形，频率可随时间线性滑动
type oscillator struct {
	freq     float64
	slide    float64 // 每个采样的频率增量
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator 创建振荡器，freq 从 from 线性滑到 to
func NewOscillator(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	n := rate.N(duration)
	slide := 0.0
	if n > 0 {
		slide = (to - from) / float64(n)
	}
	return &oscillator{
		freq:     from,
		slide:    slide,
		duration: n,
		wave:     wave,
		rate:     rate,
		rng:      rng,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.freq += o.slide
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope 线性起音和释音
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope 为 s 加上起音 attack 和释音 release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}
		vol := 1.0
		if e.attackSamples > 0 && e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume 线性音量，0 为静音
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// MidiFreq MIDI 音高对应的频率（69 = A4 = 440Hz）
func MidiFreq(note int) float64 {
	return 440 * math.Pow(2, float64(note-69)/12)
}

// Note 旋律中的一个音，Pitch < 0 为休止
type Note struct {
	Pitch int
	Steps int // 以节拍步长为单位的时长
}

// Rest 休止符
func Rest(steps int) Note {
	return Note{Pitch: -1, Steps: steps}
}

// melody 把音符序列渲染为一个 Streamer
func melody(notes []Note, step time.Duration, wave WaveType, vol float64, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		d := step * time.Duration(n.Steps)
		if n.Pitch < 0 {
			parts = append(parts, beep.Silence(rate.N(d)))
			continue
		}
		f := MidiFreq(n.Pitch)
		osc := NewOscillator(f, f, d, wave, rate, rng)
		parts = append(parts, NewEnvelope(osc, d, 5*time.Millisecond, d/3, rate))
	}
	return newVolume(beep.Seq(parts...), vol)
}
