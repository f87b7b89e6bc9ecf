// Package scene holds everything on stage: exhibits, their labels and
// spot lights, plus the ambient light and ground. It carries no GPU state.
//
// Producers on any goroutine Post batches; the render thread calls Drain
// once per frame to commit them and upload what is new.
package scene

import (
	"image"
	"sync"

	"github.com/Faultbox/plastic-gallery/internal/engine/lighting"
	"github.com/Faultbox/plastic-gallery/internal/engine/model"
	"github.com/Faultbox/plastic-gallery/pkg/math"
)

// Object is a mesh placed in the world.
type Object struct {
	Name     string
	Mesh     *model.Mesh
	Position math.Vec3
	Scale    float32
	Color    [3]float32
}

// ModelMatrix returns translate * uniform scale.
func (o *Object) ModelMatrix() math.Mat4 {
	return math.Translate(o.Position.X, o.Position.Y, o.Position.Z).
		Mul(math.Scale(o.Scale, o.Scale, o.Scale))
}

// Label is a flat text panel facing +Z.
type Label struct {
	Text  string
	Image *image.RGBA
	// Min is the bottom-left corner of the ink box in world space.
	Min    math.Vec3
	Width  float32
	Height float32
	Color  [3]float32
}

// Batch is a group of items added together, typically one exhibit.
type Batch struct {
	Objects []*Object
	Labels  []*Label
	Lights  []lighting.SpotLight
}

// Empty reports whether the batch adds nothing.
func (b Batch) Empty() bool {
	return len(b.Objects) == 0 && len(b.Labels) == 0 && len(b.Lights) == 0
}

func (b *Batch) merge(other Batch) {
	b.Objects = append(b.Objects, other.Objects...)
	b.Labels = append(b.Labels, other.Labels...)
	b.Lights = append(b.Lights, other.Lights...)
}

// Ground is the infinite-looking floor plane at y = 0.
type Ground struct {
	Color [3]float32
	Size  float32
}

// Scene is the shared stage.
type Scene struct {
	ClearColor   [3]float32
	AmbientColor [3]float32
	Ambient      float32
	Ground       Ground

	// Committed items, owned by the render thread
	objects []*Object
	labels  []*Label
	lights  []lighting.SpotLight

	mu      sync.Mutex
	pending Batch
	posted  int
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		AmbientColor: [3]float32{1, 1, 1},
		Ambient:      0.5,
		Ground: Ground{
			Color: [3]float32{0.663, 0.663, 0.663},
			Size:  50000,
		},
	}
}

// Post queues a batch for the next Drain. Safe for concurrent use.
func (s *Scene) Post(b Batch) {
	if b.Empty() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.merge(b)
	s.posted++
}

// Drain commits everything posted since the last call and returns it.
func (s *Scene) Drain() Batch {
	s.mu.Lock()
	added := s.pending
	s.pending = Batch{}
	s.mu.Unlock()

	s.objects = append(s.objects, added.Objects...)
	s.labels = append(s.labels, added.Labels...)
	s.lights = append(s.lights, added.Lights...)
	return added
}

// Posted returns how many non-empty batches have been posted.
func (s *Scene) Posted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posted
}

// Objects returns the committed objects.
func (s *Scene) Objects() []*Object { return s.objects }

// Labels returns the committed labels.
func (s *Scene) Labels() []*Label { return s.labels }

// Lights returns the committed spot lights.
func (s *Scene) Lights() []lighting.SpotLight { return s.lights }
