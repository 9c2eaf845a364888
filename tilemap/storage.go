package tilemap

// Storage maps tile positions to entity handles. Zero marks an empty cell.
type Storage struct {
	size  Size
	tiles []uint64
}

func NewStorage(size Size) *Storage {
	return &Storage{size: size, tiles: make([]uint64, size.Count())}
}

func (s *Storage) Size() Size {
	if s == nil {
		return Size{}
	}
	return s.size
}

func (s *Storage) index(p TilePos) int {
	return p.Y*s.size.X + p.X
}

// Get returns the entity at p.
func (s *Storage) Get(p TilePos) (uint64, bool) {
	if s == nil || !s.size.Contains(p) {
		return 0, false
	}
	e := s.tiles[s.index(p)]
	return e, e != 0
}

// Set stores e at p, replacing whatever was there.
func (s *Storage) Set(p TilePos, e uint64) error {
	if s == nil || !s.size.Contains(p) {
		return ErrOutOfBounds
	}
	s.tiles[s.index(p)] = e
	return nil
}

// Remove clears p and returns the entity that was stored there.
func (s *Storage) Remove(p TilePos) (uint64, bool) {
	e, ok := s.Get(p)
	if ok {
		s.tiles[s.index(p)] = 0
	}
	return e, ok
}

// Len returns the number of occupied cells.
func (s *Storage) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, e := range s.tiles {
		if e != 0 {
			n++
		}
	}
	return n
}

// Iter calls fn for every occupied cell in row-major order.
func (s *Storage) Iter(fn func(TilePos, uint64)) {
	if s == nil || s.size.X <= 0 {
		return
	}
	for i, e := range s.tiles {
		if e == 0 {
			continue
		}
		fn(TilePos{X: i % s.size.X, Y: i / s.size.X}, e)
	}
}
