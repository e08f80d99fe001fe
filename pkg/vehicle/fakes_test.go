package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-boost/pkg/logging"
	"github.com/opd-ai/go-boost/pkg/scheduler"
)

type fakeBody struct {
	frozen    bool
	forces    []mgl64.Vec3
	rotations []mgl64.Vec3

	// freeze flag observed when AddRotation was called
	frozenDuringRotation []bool
	panicOnRotate        bool
}

func (b *fakeBody) AddLocalForce(f mgl64.Vec3) { b.forces = append(b.forces, f) }

func (b *fakeBody) AddRotation(r mgl64.Vec3) {
	b.frozenDuringRotation = append(b.frozenDuringRotation, b.frozen)
	if b.panicOnRotate {
		panic("rotation failed")
	}
	b.rotations = append(b.rotations, r)
}

func (b *fakeBody) FreezeRotation() bool     { return b.frozen }
func (b *fakeBody) SetFreezeRotation(f bool) { b.frozen = f }

type fakeFeedback struct {
	loopPlaying bool
	loopClip    ClipID
	loopStarts  int
	loopStops   int
	oneShots    []ClipID
	particles   map[EmitterID]bool
	particleOps []string
	durations   map[ClipID]float64
}

func newFakeFeedback() *fakeFeedback {
	return &fakeFeedback{
		particles: make(map[EmitterID]bool),
		durations: map[ClipID]float64{"death": 1.5, "success": 2.0},
	}
}

func (f *fakeFeedback) PlayLoop(clip ClipID) {
	f.loopPlaying = true
	f.loopClip = clip
	f.loopStarts++
}

func (f *fakeFeedback) StopLoop() {
	f.loopPlaying = false
	f.loopStops++
}

func (f *fakeFeedback) IsLoopPlaying() bool              { return f.loopPlaying }
func (f *fakeFeedback) PlayOnce(clip ClipID)             { f.oneShots = append(f.oneShots, clip) }
func (f *fakeFeedback) ClipDuration(clip ClipID) float64 { return f.durations[clip] }

func (f *fakeFeedback) StartParticles(e EmitterID) {
	f.particles[e] = true
	f.particleOps = append(f.particleOps, "start:"+string(e))
}

func (f *fakeFeedback) StopParticles(e EmitterID) {
	f.particles[e] = false
	f.particleOps = append(f.particleOps, "stop:"+string(e))
}

func (f *fakeFeedback) IsParticlesPlaying(e EmitterID) bool { return f.particles[e] }

type fakeLevels struct {
	current int
	total   int
	loads   []int
}

func (l *fakeLevels) LoadLevel(index int) {
	l.loads = append(l.loads, index)
	l.current = index
}

func (l *fakeLevels) CurrentLevelIndex() int { return l.current }
func (l *fakeLevels) TotalLevelCount() int   { return l.total }

type recordingPublisher struct {
	changes    [][2]State
	classified []Outcome
	scheduled  []PendingTransition
	toggles    []bool
}

func (p *recordingPublisher) StateChanged(from, to State) {
	p.changes = append(p.changes, [2]State{from, to})
}

func (p *recordingPublisher) CollisionClassified(tag string, outcome Outcome) {
	p.classified = append(p.classified, outcome)
}

func (p *recordingPublisher) TransitionScheduled(pending PendingTransition) {
	p.scheduled = append(p.scheduled, pending)
}

func (p *recordingPublisher) CollisionsToggled(enabled bool) {
	p.toggles = append(p.toggles, enabled)
}

type harness struct {
	body      *fakeBody
	feedback  *fakeFeedback
	levels    *fakeLevels
	timers    *scheduler.Timers
	publisher *recordingPublisher
	ctrl      *Controller
}

func newHarness(cfg Config) *harness {
	h := &harness{
		body:      &fakeBody{},
		feedback:  newFakeFeedback(),
		levels:    &fakeLevels{current: 0, total: 3},
		timers:    scheduler.NewTimers(),
		publisher: &recordingPublisher{},
	}
	ctrl, err := NewController(cfg, Bindings{
		Body:      h.body,
		Feedback:  h.feedback,
		Levels:    h.levels,
		Scheduler: h.timers,
	}, WithPublisher(h.publisher), WithLogger(logging.Discard()))
	if err != nil {
		panic(err)
	}
	h.ctrl = ctrl
	return h
}
