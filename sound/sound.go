// Package sound 는 주문 입력 화면의 안내음입니다.
package sound

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

const (
	errorTone     = 220.0
	errorDuration = 180 * time.Millisecond
	okLowTone     = 880.0
	okHighTone    = 1320.0
	okNoteLength  = 70 * time.Millisecond
)

// Player 는 speaker 를 한 번만 초기화하고 짧은 소리를 믹서에 얹습니다.
// 꺼져 있거나 초기화에 실패하면 아무 소리도 내지 않습니다.
type Player struct {
	mu          sync.Mutex
	enabled     bool
	initialized bool
	mixer       *beep.Mixer
}

func NewPlayer(enabled bool) *Player {
	return &Player{enabled: enabled, mixer: &beep.Mixer{}}
}

// Initialize 는 오디오 장치를 엽니다.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close 는 재생 중인 소리를 지우고 장치를 닫습니다.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// PlayError 는 낮은 경고음입니다.
func (p *Player) PlayError() {
	p.play(ErrorSound)
}

// PlayOK 는 주문 등록 성공음입니다.
func (p *Player) PlayOK() {
	p.play(OKSound)
}

func (p *Player) play(build func(beep.SampleRate) (beep.Streamer, error)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, err := build(sampleRate)
	if err != nil {
		log.Printf("WARN: failed to build sound: %v", err)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// ErrorSound 는 짧은 저음입니다.
func ErrorSound(sr beep.SampleRate) (beep.Streamer, error) {
	return tone(sr, errorTone, errorDuration, 0.6)
}

// OKSound 는 두 음으로 된 짧은 알림음입니다.
func OKSound(sr beep.SampleRate) (beep.Streamer, error) {
	low, err := tone(sr, okLowTone, okNoteLength, 0.4)
	if err != nil {
		return nil, err
	}
	high, err := tone(sr, okHighTone, okNoteLength, 0.4)
	if err != nil {
		return nil, err
	}
	return beep.Seq(low, high), nil
}

func tone(sr beep.SampleRate, freq float64, d time.Duration, volume float64) (beep.Streamer, error) {
	s, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("sine tone %.0fHz: %w", freq, err)
	}
	return &effects.Volume{
		Streamer: beep.Take(sr.N(d), s),
		Base:     2,
		Volume:   volume - 1,
	}, nil
}
