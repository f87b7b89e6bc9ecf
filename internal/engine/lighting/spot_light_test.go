package lighting

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/plastic-gallery/pkg/math"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func TestModelSpot(t *testing.T) {
	pos := math.Vec3{X: 7, Y: 5, Z: 0}
	s := ModelSpot(pos, 10, 4, 2)

	want := math.Vec3{X: 7, Y: 20, Z: 1}
	if s.Position != want {
		t.Errorf("position = %v, want %v", s.Position, want)
	}
	if s.Target != pos {
		t.Errorf("target = %v, want %v", s.Target, pos)
	}
	if !near(s.Intensity, 500) {
		t.Errorf("intensity = %v, want 500", s.Intensity)
	}
	if !near(s.Distance, 30) {
		t.Errorf("distance = %v, want 30", s.Distance)
	}
	if !near(s.Angle, float32(gomath.Atan(5))) {
		t.Errorf("angle = %v, want atan(5)", s.Angle)
	}
	if s.Penumbra != 0.3 || s.Decay != 2 {
		t.Errorf("penumbra/decay = %v/%v, want 0.3/2", s.Penumbra, s.Decay)
	}
	if s.Color != White {
		t.Errorf("color = %v, want white", s.Color)
	}
}

func TestSpotDirection(t *testing.T) {
	s := SpotLight{Position: math.Vec3{Y: 10}, Target: math.Vec3{}}
	d := s.Direction()
	if !near(d.Y, -1) || !near(d.X, 0) || !near(d.Z, 0) {
		t.Errorf("direction = %v, want straight down", d)
	}
}

func TestSpotLightBuffer(t *testing.T) {
	b := NewSpotLightBuffer()

	for i := 0; i < MaxSpotLights; i++ {
		if !b.AddLight(SpotLight{Intensity: 1}) {
			t.Fatalf("AddLight %d failed before buffer was full", i)
		}
	}
	if b.AddLight(SpotLight{}) {
		t.Error("AddLight should fail on a full buffer")
	}

	b.Clear()
	if b.Count != 0 || len(b.Lights) != 0 {
		t.Errorf("Clear left %d lights", b.Count)
	}

	many := make([]SpotLight, MaxSpotLights+5)
	b.SetLights(many)
	if b.Count != MaxSpotLights {
		t.Errorf("SetLights should truncate to %d, got %d", MaxSpotLights, b.Count)
	}
}

func TestSpotLightBufferFlatten(t *testing.T) {
	b := NewSpotLightBuffer()
	b.AddLight(SpotLight{
		Position:  math.Vec3{X: 1, Y: 2, Z: 3},
		Target:    math.Vec3{X: 1, Y: 0, Z: 3},
		Color:     [3]float32{1, 0.5, 0},
		Intensity: 2,
		Distance:  9,
		Angle:     float32(gomath.Pi / 3),
		Penumbra:  0.5,
		Decay:     2,
	})

	pos := b.GetPositions()
	if len(pos) != MaxSpotLights*3 || pos[0] != 1 || pos[1] != 2 || pos[2] != 3 {
		t.Errorf("unexpected positions %v", pos[:3])
	}

	col := b.GetColors()
	if col[0] != 2 || col[1] != 1 || col[2] != 0 {
		t.Errorf("colors should be premultiplied, got %v", col[:3])
	}

	dir := b.GetDirections()
	if !near(dir[1], -1) {
		t.Errorf("direction y = %v, want -1", dir[1])
	}

	cones := b.GetCones()
	if !near(cones[0], 0.5) {
		t.Errorf("cos outer = %v, want 0.5", cones[0])
	}
	if !near(cones[1], float32(gomath.Cos(gomath.Pi/6))) {
		t.Errorf("cos inner = %v, want cos(pi/6)", cones[1])
	}

	att := b.GetAttenuation()
	if att[0] != 9 || att[1] != 2 {
		t.Errorf("attenuation = %v, want [9 2]", att[:2])
	}
}

func TestSetNearest(t *testing.T) {
	lights := make([]SpotLight, MaxSpotLights+10)
	for i := range lights {
		lights[i].Target = math.Vec3{X: float32(i)}
	}

	b := NewSpotLightBuffer()
	eye := math.Vec3{X: float32(len(lights) - 1)}
	b.SetNearest(lights, eye)

	if b.Count != MaxSpotLights {
		t.Fatalf("count = %d, want %d", b.Count, MaxSpotLights)
	}
	for _, l := range b.Lights {
		if l.Target.X < 10 {
			t.Errorf("far light at x=%v should have been dropped", l.Target.X)
		}
	}
}
