package matatu

import (
	"math"

	"github.com/vovakirdan/matatu/internal/config"
	"github.com/vovakirdan/matatu/internal/core"
)

// Visual characters for rendering
const (
	VergeChar    = '░'
	FlowerChar   = '✿'
	CenterChar   = '║'
	MarkerChar   = '¦'
	StripeChar   = '▒'
	ObstacleChar = '▓'
	BusChar      = '█'
	LightChar    = '●'
)

// Sprite sizes in world units.
const (
	obstacleW   = 50
	obstacleH   = 100
	busW        = 50
	busH        = 125
	stripeH     = 50
	stripeW     = 20
	stripeEvery = 40
)

// projector maps world units onto screen cells.
type projector struct {
	sx, sy float64
}

func newProjector(dst *core.Screen, cfg *config.MatatuConfig) projector {
	return projector{
		sx: float64(dst.Width()) / cfg.World.Width,
		sy: float64(dst.Height()) / cfg.World.Height,
	}
}

func (p projector) x(v float64) int { return int(math.Floor(v * p.sx)) }
func (p projector) y(v float64) int { return int(math.Floor(v * p.sy)) }

// rect projects a world-space box; anything visible gets at least one cell.
func (p projector) rect(x, y, w, h float64) core.Rect {
	return core.NewRect(p.x(x), p.y(y), core.Max(1, int(math.Round(w*p.sx))), core.Max(1, int(math.Round(h*p.sy))))
}

// renderRoad draws the road, scrolling markings, crossings, obstacles and the bus.
func renderRoad(dst *core.Screen, snap Snapshot, cfg *config.MatatuConfig) {
	dst.Clear()
	p := newProjector(dst, cfg)
	width, height := cfg.World.Width, cfg.World.Height
	margin := cfg.World.RoadMargin

	// Verges
	dst.DrawRect(core.NewRect(0, 0, p.x(margin), dst.Height()), VergeChar, core.ColorBrown)
	dst.DrawRect(core.NewRect(p.x(width-margin), 0, dst.Width(), dst.Height()), VergeChar, core.ColorBrown)

	// Markings scroll with the world
	wrap := func(i float64) float64 { return math.Mod(i+snap.Scroll, height) }
	for i := 0.0; i < height; i += 100 {
		y := p.y(wrap(i) + 30)
		dst.SetColored(p.x(margin/2), y, FlowerChar, core.ColorRed)
		dst.SetColored(p.x(width-margin/2), y, FlowerChar, core.ColorRed)
	}
	for i := 0.0; i < height; i += 50 {
		r := p.rect(0, wrap(i), 0, 30)
		for _, lx := range laneMarkers(snap.Lanes) {
			dst.DrawVLine(p.x(lx), r.Y, r.H, MarkerChar, core.ColorWhite)
		}
	}
	for i := 0.0; i < height; i += 40 {
		r := p.rect(0, wrap(i), 0, 20)
		dst.DrawVLine(p.x(width/2), r.Y, r.H, CenterChar, core.ColorYellow)
	}

	// Crossings sit under the vehicles
	for _, z := range snap.Crossings {
		for i := 0.0; i < width-2*margin; i += stripeEvery {
			dst.DrawRect(p.rect(margin+i, z.Y, stripeW, stripeH), StripeChar, core.ColorWhite)
		}
	}

	for _, o := range snap.Obstacles {
		r := p.rect(o.X, o.Y, obstacleW, obstacleH)
		dst.DrawRect(r, ObstacleChar, core.ColorGreen)
		dst.SetColored(r.X+r.W/2, r.Y, LightChar, core.ColorRed)
	}

	bus := p.rect(snap.AgentX, snap.AgentY, busW, busH)
	dst.DrawRect(bus, BusChar, core.ColorBlue)
	dst.SetColored(bus.X+bus.W/2, bus.Y, LightChar, core.ColorBrightRed)
}

// laneMarkers returns the dashed divider positions between lanes,
// skipping the middle one where the center line goes.
func laneMarkers(lanes []float64) []float64 {
	if len(lanes) < 2 {
		return nil
	}
	mid := (len(lanes) - 1) / 2
	markers := make([]float64, 0, len(lanes)-1)
	for i := 0; i+1 < len(lanes); i++ {
		if len(lanes)%2 == 0 && i == mid {
			continue
		}
		markers = append(markers, (lanes[i]+lanes[i+1])/2)
	}
	return markers
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorBrightRed)

	dst.DrawTextCentered(boxY+1, title, core.ColorBrightRed)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorWhite)
}
