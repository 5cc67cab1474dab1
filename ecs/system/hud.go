package system

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const (
	hudPadding     = 12.0
	hudLineSpacing = 16.0
	hudBannerScale = 3.0
)

// HUD draws the round banner and everybody's win count.
type HUD struct {
	face ebtext.Face
}

func NewHUD() *HUD {
	return &HUD{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (h *HUD) Draw(w *ecs.World, screen *ebiten.Image) {
	if h == nil || w == nil || screen == nil {
		return
	}

	y := hudPadding
	for _, tank := range tanksByPlayer(w) {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(hudPadding, y)
		if tank.Color != nil {
			op.ColorScale.ScaleWithColor(tank.Color)
		}
		ebtext.Draw(screen, fmt.Sprintf("%s  %d", strings.ToUpper(tank.Name), tank.Wins), h.face, op)
		y += hudLineSpacing
	}

	e, ok := w.First(component.RoundComponent.Kind())
	if !ok {
		return
	}
	round, _ := ecs.Get(w, e, component.RoundComponent.Kind())
	if round.Message == "" {
		return
	}

	b := screen.Bounds()
	_, th := ebtext.Measure(round.Message, h.face, hudLineSpacing)
	op := &ebtext.DrawOptions{}
	op.LineSpacing = hudLineSpacing
	op.PrimaryAlign = ebtext.AlignCenter
	op.GeoM.Scale(hudBannerScale, hudBannerScale)
	op.GeoM.Translate(float64(b.Dx())/2, (float64(b.Dy())-th*hudBannerScale)/2)

	shadow := *op
	shadow.GeoM.Translate(2, 2)
	shadow.ColorScale.ScaleWithColor(color.Black)
	ebtext.Draw(screen, round.Message, h.face, &shadow)
	ebtext.Draw(screen, round.Message, h.face, op)
}
