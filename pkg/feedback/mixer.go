// Package feedback keeps track of the audio and particle cues the rocket
// asks for. It produces no sound itself; front-ends read its state to draw
// or play the cues.
package feedback

import (
	"context"
	"sort"

	"github.com/opd-ai/go-boost/pkg/logging"
	"github.com/opd-ai/go-boost/pkg/vehicle"
)

// Voice is a one-shot clip still sounding.
type Voice struct {
	Clip      vehicle.ClipID
	Remaining float64
}

// Mixer is a headless vehicle.FeedbackSink with a single loop channel.
// It is not safe for concurrent use.
type Mixer struct {
	durations map[vehicle.ClipID]float64
	logger    *logging.Logger
	ctx       context.Context

	loop        vehicle.ClipID
	loopPlaying bool
	voices      []Voice
	emitters    map[vehicle.EmitterID]bool

	loopStarts int
	oneShots   int
}

// NewMixer creates a mixer. durations maps clip IDs to their length in
// seconds; unknown clips have length 0.
func NewMixer(ctx context.Context, durations map[vehicle.ClipID]float64, logger *logging.Logger) *Mixer {
	if logger == nil {
		logger = logging.NewLogger()
	}
	d := make(map[vehicle.ClipID]float64, len(durations))
	for k, v := range durations {
		d[k] = v
	}
	return &Mixer{
		durations: d,
		logger:    logger,
		ctx:       ctx,
		emitters:  make(map[vehicle.EmitterID]bool),
	}
}

// PlayLoop starts clip on the loop channel, replacing whatever was looping.
// Playing the clip that is already looping does nothing.
func (m *Mixer) PlayLoop(clip vehicle.ClipID) {
	if m.loopPlaying && m.loop == clip {
		return
	}
	m.loop = clip
	m.loopPlaying = true
	m.loopStarts++
	m.logger.Debug(m.ctx, "loop started", "clip", string(clip))
}

// StopLoop silences the loop channel.
func (m *Mixer) StopLoop() {
	if !m.loopPlaying {
		return
	}
	m.loopPlaying = false
	m.logger.Debug(m.ctx, "loop stopped", "clip", string(m.loop))
}

// IsLoopPlaying reports whether the loop channel is sounding.
func (m *Mixer) IsLoopPlaying() bool {
	return m.loopPlaying
}

// Loop returns the clip on the loop channel and whether it is playing.
func (m *Mixer) Loop() (vehicle.ClipID, bool) {
	return m.loop, m.loopPlaying
}

// PlayOnce starts a one-shot voice. One-shots do not interrupt the loop.
func (m *Mixer) PlayOnce(clip vehicle.ClipID) {
	m.voices = append(m.voices, Voice{Clip: clip, Remaining: m.durations[clip]})
	m.oneShots++
	m.logger.Debug(m.ctx, "one-shot played", "clip", string(clip), "duration", m.durations[clip])
}

// ClipDuration returns the length of clip in seconds, 0 when unknown.
func (m *Mixer) ClipDuration(clip vehicle.ClipID) float64 {
	return m.durations[clip]
}

// StartParticles marks emitter as running. A running emitter is left alone.
func (m *Mixer) StartParticles(emitter vehicle.EmitterID) {
	if m.emitters[emitter] {
		return
	}
	m.emitters[emitter] = true
	m.logger.Debug(m.ctx, "particles started", "emitter", string(emitter))
}

// StopParticles marks emitter as stopped.
func (m *Mixer) StopParticles(emitter vehicle.EmitterID) {
	if !m.emitters[emitter] {
		return
	}
	m.emitters[emitter] = false
	m.logger.Debug(m.ctx, "particles stopped", "emitter", string(emitter))
}

// IsParticlesPlaying reports whether emitter is running.
func (m *Mixer) IsParticlesPlaying(emitter vehicle.EmitterID) bool {
	return m.emitters[emitter]
}

// ActiveEmitters returns the running emitters in name order.
func (m *Mixer) ActiveEmitters() []vehicle.EmitterID {
	var active []vehicle.EmitterID
	for e, on := range m.emitters {
		if on {
			active = append(active, e)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i] < active[j] })
	return active
}

// Voices returns the one-shots still sounding.
func (m *Mixer) Voices() []Voice {
	return append([]Voice(nil), m.voices...)
}

// Advance ages one-shot voices by dt and drops the finished ones.
func (m *Mixer) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	kept := m.voices[:0]
	for _, v := range m.voices {
		v.Remaining -= dt
		if v.Remaining > 0 {
			kept = append(kept, v)
		}
	}
	m.voices = kept
}

// LoopStarts returns how many times the loop channel was started.
func (m *Mixer) LoopStarts() int {
	return m.loopStarts
}

// OneShots returns how many one-shots were played.
func (m *Mixer) OneShots() int {
	return m.oneShots
}
