package main

import (
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/Ali-Parandeh/tanks/common"
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
	"github.com/charmbracelet/log"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// NewPauseUI builds a centered pause menu with Resume, Copy results and Quit
// buttons. Buttons use plain colour nine-slices so no theme has to load.
func NewPauseUI(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, white),
		widget.TextOpts.WidgetOpts(centered),
	)

	status := widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff}),
		widget.TextOpts.WidgetOpts(centered),
	)

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.TextPadding(&widget.Insets{Top: 6, Bottom: 6, Left: 16, Right: 16}),
			widget.ButtonOpts.WidgetOpts(centered),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	resumeBtn := button("Resume", func() {
		g.paused = false
		g.audio.SetMuted(false)
		status.Label = ""
	})
	copyBtn := button("Copy results", func() {
		if err := copyResults(g); err != nil {
			log.Warn("copy results", "err", err)
			status.Label = "Clipboard unavailable"
			return
		}
		status.Label = "Results copied"
	})
	quitBtn := button("Quit", func() {
		g.quit = true
	})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/4, common.BaseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(resumeBtn)
	panel.AddChild(copyBtn)
	panel.AddChild(quitBtn)
	panel.AddChild(status)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}

func copyResults(g *Game) error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		return clipboardErr
	}
	clipboard.Write(clipboard.FmtText, []byte(resultsSummary(g)))
	return nil
}

// resultsSummary is the current match standing followed by recent history.
func resultsSummary(g *Game) string {
	var b strings.Builder

	if e, ok := g.world.First(component.RoundComponent.Kind()); ok {
		if round, ok := ecs.Get(g.world, e, component.RoundComponent.Kind()); ok {
			fmt.Fprintf(&b, "Match %s, round %d\n", round.MatchID, round.Number)
		}
	}
	ecs.ForEach(g.world, component.TankComponent.Kind(), func(_ ecs.Entity, tank *component.Tank) {
		fmt.Fprintf(&b, "  %s: %d wins\n", tank.Name, tank.Wins)
	})

	if g.store == nil {
		return b.String()
	}
	matches, err := g.store.RecentMatches(5)
	if err != nil {
		log.Warn("load recent matches", "err", err)
		return b.String()
	}
	if len(matches) > 0 {
		b.WriteString("\nRecent matches\n")
	}
	for _, m := range matches {
		fmt.Fprintf(&b, "  %s  %s won in %d rounds\n", m.PlayedAt.Format("2006-01-02 15:04"), m.WinnerName, m.Rounds)
	}
	return b.String()
}
