package ui

// Sink receives routed pointer gestures. *instrument.Instrument
// implements it.
type Sink interface {
	RibbonDown(id int, t float64)
	RibbonMove(id int, t float64)
	RibbonUp(id int)
	HeadDown(id int, y float64)
	HeadMove(id int, y float64)
	HeadUp(id int)
	ConfigMode() bool
	StemPos() (x, y float64)
	StemDown(id int, x, y float64) bool
	StemMove(id int, x, y float64)
	StemUp(id int)
}

// Region is the part of the screen a pointer was captured by.
type Region int

const (
	RegionNone Region = iota
	RegionRibbon
	RegionHead
	RegionStem
)

type capture struct {
	region Region
	x, y   float64
}

// Router captures each pointer by the region it went down in and sends
// its later moves there, wherever the pointer travels. It is not safe for
// concurrent use.
type Router struct {
	sink     Sink
	captured map[int]capture
}

// NewRouter returns a router feeding s.
func NewRouter(s Sink) *Router {
	return &Router{sink: s, captured: make(map[int]capture)}
}

// Ribbon returns the ribbon rectangle including the stem offset.
func (r *Router) Ribbon(l Layout) Rect {
	dx, dy := r.sink.StemPos()
	return l.Ribbon().Offset(dx, dy)
}

// Down starts pointer id at (x, y) and returns the region that took it.
func (r *Router) Down(l Layout, id int, x, y float64) Region {
	if _, ok := r.captured[id]; ok {
		return RegionNone
	}
	rib := r.Ribbon(l)
	hit := rib.Inset(ribbonSlop).Contains(x, y)
	reg := RegionNone
	switch {
	case hit && r.sink.ConfigMode():
		if r.sink.StemDown(id, x, y) {
			reg = RegionStem
		}
	case hit:
		r.sink.RibbonDown(id, RibbonT(rib, y))
		reg = RegionRibbon
	case l.Head().Contains(x, y):
		r.sink.HeadDown(id, y)
		reg = RegionHead
	}
	if reg != RegionNone {
		r.captured[id] = capture{region: reg, x: x, y: y}
	}
	return reg
}

// Move forwards a pointer move to the capturing region. Unchanged
// positions are dropped.
func (r *Router) Move(l Layout, id int, x, y float64) {
	c, ok := r.captured[id]
	if !ok || (c.x == x && c.y == y) {
		return
	}
	c.x, c.y = x, y
	r.captured[id] = c
	switch c.region {
	case RegionRibbon:
		r.sink.RibbonMove(id, RibbonT(r.Ribbon(l), y))
	case RegionHead:
		r.sink.HeadMove(id, y)
	case RegionStem:
		r.sink.StemMove(id, x, y)
	}
}

// Up releases pointer id.
func (r *Router) Up(id int) {
	c, ok := r.captured[id]
	if !ok {
		return
	}
	delete(r.captured, id)
	switch c.region {
	case RegionRibbon:
		r.sink.RibbonUp(id)
	case RegionHead:
		r.sink.HeadUp(id)
	case RegionStem:
		r.sink.StemUp(id)
	}
}

// Captured returns the region holding id.
func (r *Router) Captured(id int) Region {
	return r.captured[id].region
}

// ReleaseAll ends every captured pointer, e.g. when the window loses focus.
func (r *Router) ReleaseAll() {
	for id := range r.captured {
		r.Up(id)
	}
}
