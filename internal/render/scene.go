package render

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"ml-universe/internal/animation"
	"ml-universe/internal/config"
	"ml-universe/internal/topology"
	"ml-universe/internal/universe"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220

	markerSize    = 0.5
	ringRadius    = 0.45
	glyphEmissive = 2
	rad2deg       = 180 / math32.Pi
)

// Scene holds the camera and draws one animation frame of the universe.
// Draw renders between BeginMode3D and EndMode3D.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool
	Background  color.RGBA
	registry    *Registry
	colors      map[string]color.RGBA
}

// NewScene returns a scene with a perspective camera on the +Z axis looking at the origin.
func NewScene(cfg *config.Config) *Scene {
	s := &Scene{
		registry: NewRegistry(),
		colors:   make(map[string]color.RGBA),
	}
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Projection = rl.CameraPerspective
	s.Apply(cfg)
	return s
}

// Apply copies camera, background and grid settings from cfg.
func (s *Scene) Apply(cfg *config.Config) {
	s.Camera.Fovy = cfg.Camera.Fovy
	s.GridVisible = cfg.Debug.GridVisible
	s.Background = s.color(cfg.Window.Background)
}

// SetDistance moves the camera along +Z; the responsive layout picks the distance.
func (s *Scene) SetDistance(d float32) {
	s.Camera.Position = rl.NewVector3(0, 0, d)
}

func (s *Scene) color(hex string) color.RGBA {
	if c, ok := s.colors[hex]; ok {
		return c
	}
	c := parseHex(hex)
	s.colors[hex] = c
	return c
}

// parseHex parses "#rrggbb" or "#rrggbbaa". Malformed values draw white.
func parseHex(hex string) color.RGBA {
	h := strings.TrimPrefix(hex, "#")
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return rl.White
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return rl.White
	}
	return rl.GetColor(uint(v))
}

// Draw renders the universe for frame f. Nothing but the background is drawn before
// loading completes.
func (s *Scene) Draw(u *universe.Universe, f animation.Frame) {
	pos := s.Camera.Position
	s.registry.SetView([3]float32{pos.X, pos.Y, pos.Z}, [3]float32{0.5, 1, 0.5})

	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawEditorGrid()
	}
	if f.Visible {
		rl.PushMatrix()
		rl.Rotatef(f.Spin*rad2deg, 0, 1, 0)
		rl.Scalef(f.Scale, f.Scale, f.Scale)
		s.drawParticles(u, f.Particles)
		mounted := u.Diagrams()
		for _, df := range f.Diagrams {
			if df.Index < len(mounted) {
				s.drawDiagram(mounted[df.Index], df)
			}
		}
		rl.PopMatrix()

		for _, mf := range f.Markers {
			s.drawMarker(mf)
		}
	}
	rl.EndMode3D()
}

func (s *Scene) drawParticles(u *universe.Universe, pf animation.ParticleFrame) {
	spec, _ := u.Particles()
	if spec == nil {
		return
	}
	tint := rl.ColorAlpha(s.color(spec.Color), pf.Opacity)
	rl.PushMatrix()
	rl.Rotatef(pf.RotX*rad2deg, 1, 0, 0)
	rl.Rotatef(pf.RotY*rad2deg, 0, 1, 0)
	for _, n := range spec.Nodes {
		s.registry.Draw(spec.Shape, vec(n), spec.NodeSize*2, tint, 1)
	}
	rl.PopMatrix()
}

func (s *Scene) drawDiagram(m universe.Mounted, df animation.DiagramFrame) {
	spec := m.Spec
	base := s.color(spec.Color)

	rl.PushMatrix()
	rl.Translatef(df.Position.X, df.Position.Y, df.Position.Z)
	rl.Rotatef(df.Yaw*rad2deg, 0, 1, 0)
	rl.Scalef(df.Scale, df.Scale, df.Scale)

	edge := rl.ColorAlpha(base, df.EdgeOpacity)
	seg := m.Geometry.Segments
	for i := 0; i+5 < len(seg); i += 6 {
		rl.DrawLine3D(rl.NewVector3(seg[i], seg[i+1], seg[i+2]), rl.NewVector3(seg[i+3], seg[i+4], seg[i+5]), edge)
	}
	guide := rl.ColorAlpha(rl.White, df.GuideOpacity)
	g := m.Geometry.Guides
	for i := 0; i+5 < len(g); i += 6 {
		rl.DrawLine3D(rl.NewVector3(g[i], g[i+1], g[i+2]), rl.NewVector3(g[i+3], g[i+4], g[i+5]), guide)
	}

	if len(spec.Groups) == 0 {
		for _, n := range spec.Nodes {
			s.registry.Draw(spec.Shape, vec(n), spec.NodeSize, base, df.NodeEmissive)
		}
	}
	for gi, grp := range spec.Groups {
		size, opacity := spec.NodeSize, float32(1)
		if gi < len(df.Groups) {
			opacity = df.Groups[gi].Opacity
			if spec.Archetype == topology.Clustering {
				size = df.Groups[gi].PointSize
			}
		}
		tint := rl.ColorAlpha(s.color(grp.Color), opacity)
		for _, n := range spec.Nodes[grp.Start : grp.Start+grp.Count] {
			s.registry.Draw(spec.Shape, vec(n), size, tint, df.NodeEmissive)
		}
	}
	rl.PopMatrix()
}

func (s *Scene) drawMarker(mf animation.MarkerFrame) {
	tint := s.color(mf.Color)
	p := vec(mf.Position)
	s.registry.Draw(topology.ShapeSphere, p, markerSize*mf.Scale, tint, mf.Emissive)
	ring := tint
	if !mf.Hovered && !mf.Active {
		ring = rl.ColorAlpha(tint, 0.5)
	}
	rl.DrawCircle3D(p, ringRadius*mf.Scale, rl.NewVector3(0, 1, 0), mf.Yaw*rad2deg, ring)
	rl.DrawCircle3D(p, ringRadius*mf.Scale, rl.NewVector3(1, 0, 0), 90+mf.Yaw*rad2deg, ring)
	s.drawGlyph(mf)
}

// drawGlyph draws the marker's icon in white, turning and scaling with the marker.
func (s *Scene) drawGlyph(mf animation.MarkerFrame) {
	parts := topology.Glyph(mf.Icon)
	if len(parts) == 0 {
		return
	}
	rl.PushMatrix()
	rl.Translatef(mf.Position.X, mf.Position.Y, mf.Position.Z)
	rl.Rotatef(mf.Yaw*rad2deg, 0, 1, 0)
	rl.Scalef(mf.Scale, mf.Scale, mf.Scale)
	for _, part := range parts {
		size := vec(part.Size)
		rl.PushMatrix()
		rl.Translatef(part.Offset.X, part.Offset.Y, part.Offset.Z)
		rl.Rotatef(part.Roll*rad2deg, 0, 0, 1)
		if part.Wire {
			rl.DrawCubeWiresV(rl.Vector3{}, size, rl.White)
		} else {
			s.registry.DrawScaled(part.Shape, rl.Vector3{}, size, rl.White, glyphEmissive)
		}
		rl.PopMatrix()
	}
	rl.PopMatrix()
}

// pick returns the index of the nearest marker under the screen point, or -1.
func (s *Scene) pick(point rl.Vector2, f animation.Frame) int {
	if !f.Visible {
		return -1
	}
	ray := rl.GetScreenToWorldRay(point, s.Camera)
	best, dist := -1, float32(math32.Inf(1))
	for i, mf := range f.Markers {
		hit := rl.GetRayCollisionSphere(ray, vec(mf.Position), markerSize*mf.Scale*0.6)
		if hit.Hit && hit.Distance < dist {
			best, dist = i, hit.Distance
		}
	}
	return best
}

func vec(v topology.Vec3) rl.Vector3 { return rl.NewVector3(v.X, v.Y, v.Z) }

// drawEditorGrid draws a grid on the XZ plane with major/minor lines and axis lines.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}
	rl.DrawLine3D(rl.NewVector3(-gridExtent, 0, 0), rl.NewVector3(gridExtent, 0, 0), axisX)
	rl.DrawLine3D(rl.NewVector3(0, -gridExtent, 0), rl.NewVector3(0, gridExtent, 0), axisY)
	rl.DrawLine3D(rl.NewVector3(0, 0, -gridExtent), rl.NewVector3(0, 0, gridExtent), axisZ)
}

// Unload releases GPU resources. Call before the window closes.
func (s *Scene) Unload() { s.registry.Unload() }
