package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"ml-universe/internal/animation"
	"ml-universe/internal/audio"
	"ml-universe/internal/nav"
	"ml-universe/internal/universe"
)

// input turns raylib polling into Controller events. Hover enter/leave is derived by
// comparing the marker under the pointer with the previous frame's.
type input struct {
	u       *universe.Universe
	scene   *Scene
	amb     *audio.Ambient
	hovered nav.Section
}

// poll hit-tests against last frame's marker positions, the ones on screen.
func (in *input) poll(elapsed float32, last animation.Frame) {
	ctrl := in.u.Controller()
	hit := nav.SectionNone
	if i := in.scene.pick(rl.GetMousePosition(), last); i >= 0 {
		hit = last.Markers[i].Section
	}
	if hit != in.hovered {
		if in.hovered != nav.SectionNone {
			ctrl.HoverLeave(in.hovered)
		}
		if hit != nav.SectionNone {
			ctrl.HoverEnter(hit)
			rl.SetMouseCursor(rl.MouseCursorPointingHand)
		} else {
			rl.SetMouseCursor(rl.MouseCursorDefault)
		}
		in.hovered = hit
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		ctrl.Click(hit, elapsed)
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		switch key {
		case rl.KeyEscape:
			ctrl.KeyEscape()
		case rl.KeyM:
			ctrl.KeyPress()
			in.amb.Toggle()
		default:
			ctrl.KeyPress()
		}
	}
}
