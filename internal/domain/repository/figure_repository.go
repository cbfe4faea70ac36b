package repository

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/figures-ledger/internal/domain/entity"
)

// FigureFilter filtro de igualdad exacta sobre los atributos facetables.
// Campo vacío = sin restricción; los campos presentes se combinan con AND.
type FigureFilter struct {
	Manufacturer string
	Brand        string
	Character    string
	ModelName    string
	IP           string
}

// IsZero indica si el filtro no restringe nada.
func (f FigureFilter) IsZero() bool {
	return f == FigureFilter{}
}

// Matches evalúa el filtro contra una figura (igualdad exacta, AND).
func (f FigureFilter) Matches(fig *entity.Figure) bool {
	if f.Manufacturer != "" && fig.Manufacturer != f.Manufacturer {
		return false
	}
	if f.Brand != "" && fig.Brand != f.Brand {
		return false
	}
	if f.Character != "" && fig.Character != f.Character {
		return false
	}
	if f.ModelName != "" && fig.ModelName != f.ModelName {
		return false
	}
	if f.IP != "" && fig.IP != f.IP {
		return false
	}
	return true
}

// FigureRepository puerto de persistencia del catálogo de figuras.
type FigureRepository interface {
	Create(fig *entity.Figure) error
	// GetByID devuelve (nil, nil) si la figura no existe.
	GetByID(id string) (*entity.Figure, error)
	// GetForUpdate bloquea la figura para el resto de la transacción en curso
	// (exclusión por figura del ciclo chequeo-y-append). Devuelve (nil, nil)
	// si no existe.
	GetForUpdate(id string) (*entity.Figure, error)
	// GetByIdentity busca una figura con atributos descriptivos y costo
	// idénticos (detección de duplicados al crear). Devuelve (nil, nil) si no hay.
	GetByIdentity(manufacturer, brand, character, modelName string, costPrice decimal.Decimal) (*entity.Figure, error)
	Update(fig *entity.Figure) error
	// Delete elimina la figura y, por cascada, todo su historial de movimientos.
	Delete(id string) error
	List(filter FigureFilter) ([]*entity.Figure, error)
	// DistinctValues valores no vacíos, ordenados, de un atributo facetable.
	DistinctValues(attr string) ([]string, error)
}
