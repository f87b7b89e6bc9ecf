package scene

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/plastic-gallery/internal/engine/lighting"
	"github.com/Faultbox/plastic-gallery/internal/engine/model"
	"github.com/Faultbox/plastic-gallery/pkg/math"
)

func TestPostDrain(t *testing.T) {
	s := New()

	assert.True(t, s.Drain().Empty())

	obj := &Object{Name: "a", Mesh: model.Box(1, 1, 1), Scale: 1}
	s.Post(Batch{Objects: []*Object{obj}, Lights: []lighting.SpotLight{{Intensity: 1}}})
	s.Post(Batch{})
	assert.Equal(t, 1, s.Posted(), "empty batches are ignored")
	assert.Empty(t, s.Objects(), "nothing is committed before Drain")

	added := s.Drain()
	require.Len(t, added.Objects, 1)
	assert.Same(t, obj, added.Objects[0])
	assert.Len(t, s.Objects(), 1)
	assert.Len(t, s.Lights(), 1)

	assert.True(t, s.Drain().Empty(), "a drained batch is not returned twice")
	assert.Len(t, s.Objects(), 1)
}

func TestConcurrentPost(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Post(Batch{Labels: []*Label{{Text: "x"}}})
		}()
	}
	wg.Wait()

	s.Drain()
	assert.Len(t, s.Labels(), 20)
	assert.Equal(t, 20, s.Posted())
}

func TestObjectModelMatrix(t *testing.T) {
	obj := &Object{
		Mesh:     model.Box(2, 4, 2),
		Position: math.Vec3{X: 10, Y: 2, Z: 0},
		Scale:    0.5,
	}

	m := obj.ModelMatrix()
	top := m.TransformVec3(obj.Mesh.Bounds.Max)
	bottom := m.TransformVec3(obj.Mesh.Bounds.Min)
	assert.InDelta(t, 10.5, top.X, 1e-5)
	assert.InDelta(t, 3, top.Y, 1e-5)
	assert.InDelta(t, 9.5, bottom.X, 1e-5)
	assert.InDelta(t, 1, bottom.Y, 1e-5)
}
