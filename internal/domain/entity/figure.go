package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Figure representa una figura coleccionable del catálogo.
// Quantity y TotalSales NO viven aquí: son proyecciones derivadas del log de
// movimientos y se calculan bajo demanda (ver domain/ledger).
type Figure struct {
	ID           string
	Manufacturer string
	Brand        string
	Character    string
	ModelName    string
	IP           string          // franquicia / propiedad intelectual (opcional)
	CostPrice    decimal.Decimal // costo de adquisición por unidad
	ImageURL     string          // referencia opaca al almacenamiento de imágenes
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Atributos facetables para filtros exactos.
const (
	FacetManufacturer = "manufacturer"
	FacetBrand        = "brand"
	FacetCharacter    = "character"
	FacetModelName    = "model_name"
	FacetIP           = "ip"
)

// Facets lista los cinco atributos filtrables en orden estable.
func Facets() []string {
	return []string{FacetManufacturer, FacetBrand, FacetCharacter, FacetModelName, FacetIP}
}

// IsFacet indica si attr es uno de los atributos filtrables.
func IsFacet(attr string) bool {
	switch attr {
	case FacetManufacturer, FacetBrand, FacetCharacter, FacetModelName, FacetIP:
		return true
	}
	return false
}

// Validate verifica los campos obligatorios y el costo no negativo.
func (f *Figure) Validate() bool {
	if strings.TrimSpace(f.Manufacturer) == "" ||
		strings.TrimSpace(f.Brand) == "" ||
		strings.TrimSpace(f.Character) == "" ||
		strings.TrimSpace(f.ModelName) == "" {
		return false
	}
	return !f.CostPrice.IsNegative()
}

// FacetValue devuelve el valor del atributo facetable indicado ("" si no aplica).
func (f *Figure) FacetValue(attr string) string {
	switch attr {
	case FacetManufacturer:
		return f.Manufacturer
	case FacetBrand:
		return f.Brand
	case FacetCharacter:
		return f.Character
	case FacetModelName:
		return f.ModelName
	case FacetIP:
		return f.IP
	}
	return ""
}
