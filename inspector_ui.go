package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/isotiled/ecs"
	"github.com/milk9111/isotiled/ecs/component"
	"github.com/milk9111/isotiled/ecs/system"
	"golang.org/x/image/font/basicfont"
)

// Inspector is a small overlay listing world state. It is refreshed only while
// visible.
type Inspector struct {
	ui *ebitenui.UI

	entities  *widget.Text
	activeMap *widget.Text
	cursor    *widget.Text
	hovered   *widget.Text
	hovers    *widget.Text
	labels    *widget.Text
}

// inspectorStats is what the inspector shows, read from the world resources.
type inspectorStats struct {
	Entities int
	Map      string
	Cursor   string
	Hovered  string
	Hovers   int
	Labels   string
}

// readInspectorStats reads the world resources. Label and hover totals come
// from the event log, which sees every labels_spawned and tile_hovered event.
func readInspectorStats(w *ecs.World, events *system.EventLogSystem) inspectorStats {
	stats := inspectorStats{Map: "-", Cursor: "-", Hovered: "none", Labels: "pending"}
	if n := events.Labels(); n > 0 {
		stats.Labels = fmt.Sprintf("%d", n)
	}
	stats.Hovers = events.Hovers()
	if w == nil {
		return stats
	}
	stats.Entities = w.Len()

	res, ok := w.First(component.ActiveMapComponent.Kind())
	if !ok {
		return stats
	}
	if m, ok := ecs.Get(w, res, component.ActiveMapComponent.Kind()); ok {
		stats.Map = fmt.Sprintf("%s (%s)", m.Title, m.Path)
	}
	if c, ok := ecs.Get(w, res, component.CursorPosComponent.Kind()); ok {
		stats.Cursor = fmt.Sprintf("%.1f, %.1f", c.X, c.Y)
	}
	if h, ok := ecs.Get(w, res, component.HoveredTileComponent.Kind()); ok && h.Valid {
		stats.Hovered = h.Pos.String()
		if tm, ok := ecs.Get(w, ecs.Entity(h.Tilemap), component.TilemapComponent.Kind()); ok && tm.Name != "" {
			stats.Hovered = fmt.Sprintf("%s on %s", stats.Hovered, tm.Name)
		}
	}
	return stats
}

func NewInspector(g *Game) *Inspector {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 180})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	line := func(label string) *widget.Text {
		return widget.NewText(widget.TextOpts.Text(label, &face, white))
	}
	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(160, 22)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	in := &Inspector{
		entities:  line(""),
		activeMap: line(""),
		cursor:    line(""),
		hovered:   line(""),
		hovers:    line(""),
		labels:    line(""),
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(280, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(line("Inspector (F1)"))
	panel.AddChild(in.entities)
	panel.AddChild(in.activeMap)
	panel.AddChild(in.cursor)
	panel.AddChild(in.hovered)
	panel.AddChild(in.hovers)
	panel.AddChild(in.labels)
	panel.AddChild(button("Next map", g.nextMap))
	panel.AddChild(button("Toggle debug", func() { g.setDebug(!g.debug) }))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	in.ui = &ebitenui.UI{Container: root}
	return in
}

func (in *Inspector) Refresh(w *ecs.World, events *system.EventLogSystem) {
	stats := readInspectorStats(w, events)
	in.entities.Label = fmt.Sprintf("entities: %d", stats.Entities)
	in.activeMap.Label = "map: " + stats.Map
	in.cursor.Label = "cursor: " + stats.Cursor
	in.hovered.Label = "hovered: " + stats.Hovered
	in.hovers.Label = fmt.Sprintf("hover changes: %d", stats.Hovers)
	in.labels.Label = "labels: " + stats.Labels
}
