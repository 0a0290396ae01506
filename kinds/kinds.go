package kinds

const (
	length   = 64
	idLength = 8
	depthMax = length / idLength
	idMask   = (1 << idLength) - 1
)

// Bases returns the base IDs at each level beyond the first.
func Bases(t uint64) [depthMax]uint64 {
	var bases [depthMax]uint64
	for i := 1; i < depthMax; i++ {
		bases[i-1] = (t >> (idLength * i)) & idMask
	}
	return bases
}

func Kind(id uint64, bases ...uint64) uint64 {
	id = id & idMask
	ids := make(map[uint64]struct{})

	for _, base := range bases {
		for j := 0; j < depthMax; j++ {
			baseId := (base >> (idLength * j)) & idMask
			if baseId == 0 {
				break
			}
			if _, ok := ids[baseId]; !ok {
				ids[baseId] = struct{}{}
				id |= baseId << (idLength * len(ids))
			}
		}
	}
	return id
}

// IsKind reports whether kind is, or derives from, any of the bases.
func IsKind(kind uint64, bases ...uint64) bool {
	for _, base := range bases {
		baseId := base & idMask
		if kind == baseId {
			return true
		}
		for i := 0; i < depthMax; i++ {
			currentId := (kind >> (idLength * i)) & idMask
			if currentId == baseId {
				return true
			}
		}
	}
	return false
}

var (
	Null = Kind(0)
	Step = Kind(1)

	Machine = Kind(2, Step)
	Fire    = Kind(3, Machine)
	Settle  = Kind(4, Machine)
	Abort   = Kind(5, Machine)
	Destroy = Kind(6, Machine)

	Slideshow = Kind(7, Step)
	Start     = Kind(8, Slideshow)
	Advance   = Kind(9, Slideshow)
	Pause     = Kind(10, Slideshow)
	Play      = Kind(11, Slideshow)
	Stale     = Kind(12, Slideshow)
	Teardown  = Kind(13, Slideshow)
)

var names = map[uint64]string{
	Null:      "null",
	Step:      "step",
	Machine:   "machine",
	Fire:      "fire",
	Settle:    "settle",
	Abort:     "abort",
	Destroy:   "destroy",
	Slideshow: "slideshow",
	Start:     "start",
	Advance:   "advance",
	Pause:     "pause",
	Play:      "play",
	Stale:     "stale",
	Teardown:  "teardown",
}

func Name(kind uint64) string {
	if name, ok := names[kind]; ok {
		return name
	}
	return "unknown"
}
