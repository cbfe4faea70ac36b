// Package memory implementa los puertos de persistencia sobre un almacén en
// proceso. Sirve para tests y para correr el servicio sin PostgreSQL
// (STORAGE_DRIVER=memory). La exclusión por figura que en PostgreSQL da el
// SELECT FOR UPDATE aquí la da un mutex por figure_id.
package memory

import (
	"sync"

	"github.com/jhoicas/figures-ledger/internal/domain/entity"
)

// Store estado compartido del adaptador: catálogo, log de movimientos y
// mutexes por figura.
type Store struct {
	mu        sync.RWMutex
	figures   map[string]*entity.Figure
	movements map[string][]*entity.Movement // por figura, en orden de inserción
	seq       int64

	figMuMu sync.Mutex
	figMu   map[string]*sync.Mutex
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		figures:   make(map[string]*entity.Figure),
		movements: make(map[string][]*entity.Movement),
		figMu:     make(map[string]*sync.Mutex),
	}
}

// figureLock devuelve el mutex de la figura, creándolo si es la primera vez.
// El mutex sobrevive al borrado de la figura; un lock huérfano es inofensivo.
func (s *Store) figureLock(id string) *sync.Mutex {
	s.figMuMu.Lock()
	defer s.figMuMu.Unlock()
	m, ok := s.figMu[id]
	if !ok {
		m = &sync.Mutex{}
		s.figMu[id] = m
	}
	return m
}

func copyFigure(f *entity.Figure) *entity.Figure {
	cp := *f
	return &cp
}

func copyMovement(m *entity.Movement) *entity.Movement {
	cp := *m
	return &cp
}
