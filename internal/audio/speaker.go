package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// SpeakerPlayer 通过 beep speaker 直接播放声音库，实现 platform.Audio
//
// 每个声道同时只有一个音效，新音效打断旧音效；音乐单独一路。
// 混音器只在 speaker.Lock 之内修改。
type SpeakerPlayer struct {
	bank     *Bank
	mixer    *beep.Mixer
	channels map[int]*beep.Ctrl
	music    *beep.Ctrl
	muted    bool
	log      *zap.Logger
}

// NewSpeakerPlayer 初始化 speaker 并开始播放混音器
func NewSpeakerPlayer(bank *Bank, log *zap.Logger) (*SpeakerPlayer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	rate := bank.Format().SampleRate
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	p := &SpeakerPlayer{
		bank:     bank,
		mixer:    &beep.Mixer{},
		channels: make(map[int]*beep.Ctrl),
		log:      log.Named("speaker"),
	}
	speaker.Play(p.mixer)
	return p, nil
}

// Play 在声道上播放音效
func (p *SpeakerPlayer) Play(channel, sound int) {
	if p.muted {
		return
	}
	s, ok := p.bank.Sound(sound)
	if !ok {
		p.log.Debug("unknown sound", zap.Int("sound", sound))
		return
	}
	ctrl := &beep.Ctrl{Streamer: s}

	speaker.Lock()
	defer speaker.Unlock()
	if prev, ok := p.channels[channel]; ok {
		prev.Streamer = nil
	}
	p.channels[channel] = ctrl
	p.mixer.Add(ctrl)
}

// PlayMusic 播放曲目，替换当前音乐
func (p *SpeakerPlayer) PlayMusic(track int, loop bool) {
	if p.muted {
		return
	}
	s, ok := p.bank.Music(track)
	if !ok {
		p.log.Debug("unknown music track", zap.Int("track", track))
		return
	}
	var stream beep.Streamer = s
	if loop {
		stream = beep.Loop(-1, s)
	}
	ctrl := &beep.Ctrl{Streamer: stream}

	speaker.Lock()
	defer speaker.Unlock()
	if p.music != nil {
		p.music.Streamer = nil
	}
	p.music = ctrl
	p.mixer.Add(ctrl)
}

// Stop 停止所有声音
func (p *SpeakerPlayer) Stop() {
	speaker.Lock()
	defer speaker.Unlock()
	p.mixer.Clear()
	p.channels = make(map[int]*beep.Ctrl)
	p.music = nil
}

// SetMuted 静音时停止当前声音并忽略之后的播放请求
func (p *SpeakerPlayer) SetMuted(muted bool) {
	p.muted = muted
	if muted {
		p.Stop()
	}
}

// Muted 是否静音
func (p *SpeakerPlayer) Muted() bool {
	return p.muted
}

// Close 停止播放并关闭 speaker
func (p *SpeakerPlayer) Close() {
	p.Stop()
	speaker.Close()
}
