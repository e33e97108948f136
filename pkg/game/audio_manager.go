package game

import (
	"bytes"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"
)

// AudioManager 通过 ebiten 播放合成声音，实现 platform.Audio
//
// 每个声道同时只有一个音效，新音效打断旧音效；同一时间只有一首音乐。
// 音量和开关读取 SettingsManager。
type AudioManager struct {
	context   *audio.Context
	resources *ResourceManager
	settings  *SettingsManager // 可为 nil
	log       *zap.Logger

	channels   map[int]*audio.Player
	music      *audio.Player
	musicTrack int
	musicLoop  bool
}

// NewAudioManager 创建音频管理器，ctx 的采样率须与声音库一致
func NewAudioManager(ctx *audio.Context, rm *ResourceManager, sm *SettingsManager, log *zap.Logger) *AudioManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &AudioManager{
		context:    ctx,
		resources:  rm,
		settings:   sm,
		log:        log.Named("audio"),
		channels:   make(map[int]*audio.Player),
		musicTrack: -1,
	}
}

// Play 在声道上播放音效
func (am *AudioManager) Play(channel, sound int) {
	if !am.soundEnabled() {
		return
	}
	pcm, err := am.resources.SoundPCM(sound)
	if err != nil {
		am.log.Debug("sound unavailable", zap.Int("sound", sound), zap.Error(err))
		return
	}
	if prev, ok := am.channels[channel]; ok {
		am.closePlayer(prev)
	}
	player := am.context.NewPlayerFromBytes(pcm.Bytes())
	player.SetVolume(am.soundVolume())
	player.Play()
	am.channels[channel] = player
}

// PlayMusic 播放曲目，loop 为 true 时循环
func (am *AudioManager) PlayMusic(track int, loop bool) {
	am.musicTrack, am.musicLoop = track, loop
	if !am.musicEnabled() {
		return
	}
	pcm, err := am.resources.MusicPCM(track)
	if err != nil {
		am.log.Warn("music unavailable", zap.Int("track", track), zap.Error(err))
		return
	}
	am.stopMusic()

	data := pcm.Bytes()
	if loop {
		player, err := am.context.NewPlayer(audio.NewInfiniteLoop(bytes.NewReader(data), int64(len(data))))
		if err != nil {
			am.log.Warn("failed to create music player", zap.Int("track", track), zap.Error(err))
			return
		}
		am.music = player
	} else {
		am.music = am.context.NewPlayerFromBytes(data)
	}
	am.music.SetVolume(am.musicVolume())
	am.music.Play()
}

// Stop 停止所有音效和音乐
func (am *AudioManager) Stop() {
	for ch, p := range am.channels {
		am.closePlayer(p)
		delete(am.channels, ch)
	}
	am.stopMusic()
	am.musicTrack = -1
}

// ApplySettings 设置变化后调用：音乐关闭时停止，开启时恢复最近的曲目
func (am *AudioManager) ApplySettings() {
	if !am.musicEnabled() {
		am.stopMusic()
		return
	}
	if am.music != nil {
		am.music.SetVolume(am.musicVolume())
		return
	}
	if am.musicTrack >= 0 {
		am.PlayMusic(am.musicTrack, am.musicLoop)
	}
}

func (am *AudioManager) stopMusic() {
	if am.music != nil {
		am.closePlayer(am.music)
		am.music = nil
	}
}

func (am *AudioManager) closePlayer(p *audio.Player) {
	p.Pause()
	if err := p.Close(); err != nil {
		am.log.Debug("failed to close player", zap.Error(err))
	}
}

func (am *AudioManager) soundEnabled() bool {
	return am.settings == nil || am.settings.GetSettings().SoundEnabled
}

func (am *AudioManager) musicEnabled() bool {
	return am.settings == nil || am.settings.GetSettings().MusicEnabled
}

// soundVolume 音效音量
func (am *AudioManager) soundVolume() float64 {
	if am.settings == nil {
		return 1.0
	}
	return am.settings.GetSettings().SoundVolume
}

// musicVolume 音乐音量
func (am *AudioManager) musicVolume() float64 {
	if am.settings == nil {
		return 1.0
	}
	return am.settings.GetSettings().MusicVolume
}
