package ecs

// sparseSet stores one component kind keyed by entity id. Values are kept
// densely packed so iteration never touches empty slots.
type sparseSet struct {
	dense  []Entity
	values []any
	sparse []int // id-1 -> dense index, -1 when absent
}

func newSparseSet() *sparseSet {
	return &sparseSet{}
}

func (s *sparseSet) index(e Entity) int {
	id := int(e.id())
	if s == nil || id <= 0 || id > len(s.sparse) {
		return -1
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx] != e {
		return -1
	}
	return idx
}

func (s *sparseSet) has(e Entity) bool {
	return s.index(e) >= 0
}

func (s *sparseSet) get(e Entity) (any, bool) {
	idx := s.index(e)
	if idx < 0 {
		return nil, false
	}
	return s.values[idx], true
}

func (s *sparseSet) set(e Entity, v any) {
	id := int(e.id())
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, -1)
	}
	// A stale generation in the same slot is overwritten in place.
	if idx := s.sparse[id-1]; idx >= 0 && idx < len(s.dense) && s.dense[idx].id() == e.id() {
		s.dense[idx] = e
		s.values[idx] = v
		return
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense) - 1
}

func (s *sparseSet) remove(e Entity) bool {
	idx := s.index(e)
	if idx < 0 {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()-1] = idx

	s.dense = s.dense[:last]
	s.values[last] = nil
	s.values = s.values[:last]
	s.sparse[e.id()-1] = -1
	return true
}

func (s *sparseSet) len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}
