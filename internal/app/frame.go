package app

import (
	"fmt"
	"path/filepath"

	"github.com/gekko3d/meshview/internal/core"
	"github.com/gekko3d/meshview/internal/render"
	"github.com/gekko3d/meshview/internal/ui"
)

const lightRange = 10

// Render describes this frame's UI, then hands the scene and UI to the
// renderer. Errors are surface errors from render; see render.ActionFor.
func (a *App) Render() error {
	list := a.describeUI()
	a.uiInput.Pressed = false
	a.uiInput.Released = false

	f := render.Frame{
		Target:    a.target,
		Light:     core.NewLightUniform(a.light.Position, a.light.Color),
		Instances: a.raw,
		Plan:      a.framePlan(),
		UI:        list,
		Clear:     clearColor,
	}
	f.Camera.Update(a.camera)
	return a.renderer.Render(&f)
}

func (a *App) framePlan() []render.DrawCall {
	hovered, ok := a.selection.Hovered()
	return render.BuildFramePlan(
		render.SceneInfoFor(a.model, len(a.instances)),
		a.selection.SelectedIndices(), hovered, ok)
}

// describeUI runs the widgets over local copies of the light and selection
// and merges the edits back once the description is complete.
func (a *App) describeUI() *ui.DrawList {
	light := a.light
	var toggled []int
	clearSel := false
	save := false

	c := a.ui
	l := a.layout
	c.Begin(a.uiInput)

	c.MenuBar(l.MenuBar)
	if c.MenuButton("File") {
		a.fileMenuOpen = !a.fileMenuOpen
	}
	if c.MenuButton("Clear Selection") {
		clearSel = true
	}
	menu := ui.XYWH(l.MenuBar.Min.X(), l.MenuBar.Max.Y(), 140, 3*c.Style.RowHeight+2*c.Style.Padding+6)
	if a.fileMenuOpen {
		c.Overlay(menu)
	}

	c.BeginPanel("Hierarchy", l.Hierarchy)
	if a.model != nil {
		c.Label(fmt.Sprintf("%s (%d)", filepath.Base(a.cfg.Scene.Model), len(a.instances)))
	}
	for i := range a.instances {
		if c.ListItem(fmt.Sprintf("Instance %d", i), a.selection.IsSelected(i)) {
			toggled = append(toggled, i)
		}
	}
	c.EndPanel()

	c.BeginPanel("Inspector", l.Inspector)
	c.Label("Light Settings")
	c.SliderFloat("Position X", &light.Position[0], -lightRange, lightRange)
	c.SliderFloat("Position Y", &light.Position[1], -lightRange, lightRange)
	c.SliderFloat("Position Z", &light.Position[2], -lightRange, lightRange)
	c.ColorEdit("Color", &light.Color)
	c.Separator()
	c.Label(fmt.Sprintf("Selected: %d", a.selection.Len()))
	if h, ok := a.selection.Hovered(); ok {
		c.Label(fmt.Sprintf("Hovered: instance %d", h))
	} else {
		c.Label("Hovered: none")
	}
	if a.model != nil {
		c.Label(fmt.Sprintf("Triangles: %d", a.model.TriangleCount()))
	}
	c.EndPanel()

	if a.fileMenuOpen {
		c.BeginPanel("File", menu)
		if c.ListItem("Quit", false) {
			a.quit = true
			a.fileMenuOpen = false
		}
		if c.ListItem("Save Settings", false) {
			save = true
			a.fileMenuOpen = false
		}
		c.EndPanel()
	}

	c.Viewport(l.Viewport)
	if r, ok := a.selection.DragRect(); ok {
		c.DragRect(ui.Rect{Min: r.Min.Add(l.Viewport.Min), Max: r.Max.Add(l.Viewport.Min)})
	}

	list := c.End()

	a.light = light
	if save {
		a.saveSettings()
	}
	if clearSel {
		a.selection.Clear()
	}
	for _, i := range toggled {
		a.selection.Toggle(i)
	}
	return list
}

// saveSettings writes the config, with the light as currently edited, back
// to the file it was loaded from.
func (a *App) saveSettings() {
	a.cfg.Light.Position = a.light.Position
	a.cfg.Light.Color = a.light.Color
	if err := a.cfg.Save(); err != nil {
		a.log.Warnf("save settings: %v", err)
		return
	}
	a.log.Infof("saved settings to %s", a.cfg.SavePath())
}
