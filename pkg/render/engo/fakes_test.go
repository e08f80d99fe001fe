package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"
)

type fakeSink struct {
	added   []*common.RenderComponent
	spaces  []*common.SpaceComponent
	removed []uint64
}

func (s *fakeSink) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	s.added = append(s.added, render)
	s.spaces = append(s.spaces, space)
}

func (s *fakeSink) Remove(basic ecs.BasicEntity) {
	s.removed = append(s.removed, basic.ID())
}

func (s *fakeSink) visible() int {
	n := 0
	for _, r := range s.added {
		if !r.Hidden {
			n++
		}
	}
	return n
}

type fakeButtons map[string]bool

func (b fakeButtons) Down(name string) bool { return b[name] }
