package meltris

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/meltris/internal/core"
	"github.com/vovakirdan/meltris/internal/games/meltris/engine"
)

// Layout: each grid cell is two characters wide. The well sits between
// the hold/stats panel on the left and the next queue on the right.
const (
	cellW      = 2
	wellW      = engine.Width*cellW + 2
	wellH      = engine.VisibleHeight + 2
	panelW     = 12
	layoutW    = panelW + 1 + wellW + 1 + panelW
	lockBarLen = 8
)

// Visual characters for rendering
const (
	BlockChar  = '█'
	MiddleChar = '▓'
	WaterChar  = '░'
	GhostChar  = '·'
	EmptyChar  = ' '
)

var pieceColors = map[engine.PieceType]core.Color{
	engine.PieceI: core.ColorBrightCyan,
	engine.PieceO: core.ColorBrightYellow,
	engine.PieceS: core.ColorBrightGreen,
	engine.PieceZ: core.ColorBrightRed,
	engine.PieceJ: core.ColorBrightBlue,
	engine.PieceL: core.ColorOrange,
	engine.PieceT: core.ColorBrightMagenta,
}

// PieceColor returns the display color of a piece type.
func PieceColor(p engine.PieceType) core.Color {
	if c, ok := pieceColors[p]; ok {
		return c
	}
	return core.ColorDefault
}

// cellGlyph returns the character and color a grid cell is drawn with.
func cellGlyph(c engine.CellView) (rune, core.Color, bool) {
	switch c.Kind {
	case engine.CellFilled:
		return BlockChar, PieceColor(c.Piece), true
	case engine.CellDecaying:
		switch c.Stage {
		case engine.StageIce:
			return BlockChar, PieceColor(c.Piece), true
		case engine.StageMiddle:
			return MiddleChar, core.ColorIce, true
		default:
			return WaterChar, core.ColorWater, true
		}
	}
	return EmptyChar, core.ColorDefault, false
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.machine.Snapshot()

	if dst.Width() < layoutW || dst.Height() < wellH {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", layoutW, wellH))
		return
	}

	ox := (dst.Width() - layoutW) / 2
	oy := (dst.Height() - wellH) / 2
	wellX := ox + panelW + 1

	g.renderWell(dst, &snap, wellX, oy)
	g.renderLeftPanel(dst, &snap, ox, oy)
	renderNext(dst, &snap, wellX+wellW+1, oy)

	switch snap.Phase {
	case engine.PhasePreparation:
		renderOverlay(dst, "Loading", "")
	case engine.PhaseStart:
		renderOverlay(dst, g.Title(), "Press Enter to start")
	case engine.PhaseGameOver:
		if r := snap.Result; r != nil {
			renderOverlay(dst, "Game Over", fmt.Sprintf("Score %d  Lines %d", r.Score, r.Lines), "Enter or R to restart")
		}
	default:
		if snap.Paused {
			renderOverlay(dst, "Paused", "Press P to continue")
		}
	}
}

func (g *Game) renderWell(dst *core.Screen, snap *engine.Snapshot, x0, y0 int) {
	dst.DrawBoxColored(core.NewRect(x0, y0, wellW, wellH), core.ColorGray)
	ix, iy := x0+1, y0+1

	for y := range engine.VisibleHeight {
		for x := range engine.Width {
			r, c, ok := cellGlyph(snap.Rows[y][x])
			if !ok {
				continue
			}
			drawCell(dst, ix+x*cellW, iy+y, r, c)
		}
	}

	if !snap.HasPiece {
		return
	}
	p := snap.Piece

	// Ghost first so the piece covers it where they overlap.
	if snap.GhostY != p.Y {
		p.Shape.Cells(func(row, col int) {
			gy := snap.GhostY + row - engine.HiddenHeight
			if gy >= 0 {
				drawCell(dst, ix+(p.X+col)*cellW, iy+gy, GhostChar, core.ColorGray)
			}
		})
	}
	p.Shape.Cells(func(row, col int) {
		py := p.Y + row - engine.HiddenHeight
		if py >= 0 {
			drawCell(dst, ix+(p.X+col)*cellW, iy+py, BlockChar, PieceColor(p.Type))
		}
	})
}

func drawCell(dst *core.Screen, x, y int, r rune, c core.Color) {
	for i := range cellW {
		dst.SetColored(x+i, y, r, c)
	}
}

func (g *Game) renderLeftPanel(dst *core.Screen, snap *engine.Snapshot, x0, y0 int) {
	dst.DrawTextColored(x0, y0, "HOLD", core.ColorGray)
	if snap.HasHold {
		color := PieceColor(snap.Hold)
		if !snap.HoldActive {
			color = core.ColorGray
		}
		drawPreview(dst, snap.Hold, x0, y0+1, color)
	}

	p := snap.Progress
	lines := []string{
		fmt.Sprintf("Score %d", p.Score),
		fmt.Sprintf("Lines %d", p.Lines),
		fmt.Sprintf("Level %d", p.Level),
	}
	if p.Combo > 0 {
		lines = append(lines, fmt.Sprintf("Combo %d", p.Combo))
	}
	if g.mode == ModeUltra {
		lines = append(lines, "Left  "+formatClock(p.TimeLeft))
	} else {
		lines = append(lines, "Time  "+formatClock(snap.Elapsed))
	}
	for i, line := range lines {
		dst.DrawText(x0, y0+6+i, line)
	}

	if snap.LockActive {
		filled := int(snap.LockProgress * lockBarLen)
		bar := strings.Repeat("=", filled) + strings.Repeat("-", lockBarLen-filled)
		dst.DrawTextColored(x0, y0+wellH-2, "["+bar+"]", core.ColorYellow)
	}
}

func renderNext(dst *core.Screen, snap *engine.Snapshot, x0, y0 int) {
	dst.DrawTextColored(x0, y0, "NEXT", core.ColorGray)
	for i, p := range snap.Next {
		drawPreview(dst, p, x0, y0+1+i*3, PieceColor(p))
	}
}

// drawPreview draws the occupied rows of a canonical piece shape.
func drawPreview(dst *core.Screen, p engine.PieceType, x0, y0 int, c core.Color) {
	shape, err := engine.CanonicalShape(p)
	if err != nil {
		return
	}
	row := 0
	for _, cells := range shape {
		empty := true
		for col, filled := range cells {
			if filled {
				drawCell(dst, x0+col*cellW, y0+row, BlockChar, c)
				empty = false
			}
		}
		if !empty {
			row++
		}
	}
}

// renderOverlay draws a centered box with one line per message.
func renderOverlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}
	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, l := range lines {
		x := box.X + (boxW-len([]rune(l)))/2
		dst.DrawText(x, box.Y+1+i, l)
	}
}

func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
