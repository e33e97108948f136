package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/gopxl/beep"
)

// PCM 16 位小端立体声 PCM 数据，实现 io.ReadSeeker
//
// ebiten 的 audio.Player 直接读取这种格式。
type PCM struct {
	data   []byte
	offset int64
}

// bytesPerFrame 每个立体声采样帧的字节数
const bytesPerFrame = 4

// EncodePCM 读完 s 并编码为 PCM
func EncodePCM(s beep.Streamer) *PCM {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				sample := int16(math.Max(-1, math.Min(1, v)) * math.MaxInt16)
				out = append(out, byte(sample), byte(sample>>8))
			}
		}
		if !ok {
			break
		}
	}
	return &PCM{data: out}
}

// SoundPCM 音效的 PCM
func (b *Bank) SoundPCM(id int) (*PCM, bool) {
	s, ok := b.Sound(id)
	if !ok {
		return nil, false
	}
	return EncodePCM(s), true
}

// MusicPCM 曲目的 PCM
func (b *Bank) MusicPCM(track int) (*PCM, bool) {
	s, ok := b.Music(track)
	if !ok {
		return nil, false
	}
	return EncodePCM(s), true
}

// Bytes 原始数据
func (p *PCM) Bytes() []byte {
	return p.data
}

// Read 实现 io.Reader
func (p *PCM) Read(buf []byte) (int, error) {
	if p.offset >= int64(len(p.data)) {
		return 0, io.EOF
	}
	n := copy(buf, p.data[p.offset:])
	p.offset += int64(n)
	return n, nil
}

// Seek 实现 io.Seeker
func (p *PCM) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = p.offset + offset
	case io.SeekEnd:
		next = int64(len(p.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("negative position: %d", next)
	}
	p.offset = next
	return next, nil
}

// Length 数据总字节数
func (p *PCM) Length() int64 {
	return int64(len(p.data))
}

// Frames 采样帧数
func (p *PCM) Frames() int {
	return len(p.data) / bytesPerFrame
}
