package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/figures-ledger/internal/application/dto"
	appledger "github.com/jhoicas/figures-ledger/internal/application/ledger"
	"github.com/jhoicas/figures-ledger/internal/domain"
	"github.com/jhoicas/figures-ledger/internal/domain/entity"
	"github.com/jhoicas/figures-ledger/internal/domain/repository"
)

// FigureUseCase altas, ediciones y bajas del catálogo. El alta siembra el
// movimiento IN inicial en la misma transacción; la edición nunca escribe
// cantidad ni ventas directamente (los ajustes de stock pasan por el ledger).
type FigureUseCase struct {
	txRunner   appledger.TxRunner
	figureRepo repository.FigureRepository
	aggregator *appledger.AggregatorUseCase
	recorder   *appledger.RecordMovementUseCase
}

// NewFigureUseCase construye el caso de uso.
func NewFigureUseCase(
	txRunner appledger.TxRunner,
	figureRepo repository.FigureRepository,
	aggregator *appledger.AggregatorUseCase,
	recorder *appledger.RecordMovementUseCase,
) *FigureUseCase {
	return &FigureUseCase{
		txRunner:   txRunner,
		figureRepo: figureRepo,
		aggregator: aggregator,
		recorder:   recorder,
	}
}

// Create crea la figura y su movimiento IN semilla como unidad atómica.
// Si ya existe una figura idéntica (mismos atributos descriptivos y costo),
// no duplica el registro: suma el stock inicial como entrada sobre la existente.
func (uc *FigureUseCase) Create(ctx context.Context, in dto.CreateFigureRequest) (*dto.FigureResponse, error) {
	fig := &entity.Figure{
		Manufacturer: strings.TrimSpace(in.Manufacturer),
		Brand:        strings.TrimSpace(in.Brand),
		Character:    strings.TrimSpace(in.Character),
		ModelName:    strings.TrimSpace(in.ModelName),
		IP:           strings.TrimSpace(in.IP),
		CostPrice:    in.CostPrice,
		ImageURL:     in.ImageURL,
	}
	if !fig.Validate() || in.InitialQuantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.figureRepo.GetByIdentity(
		fig.Manufacturer, fig.Brand, fig.Character, fig.ModelName, fig.CostPrice,
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// Figura idéntica ya registrada: entrada de stock sobre la existente
		agg, err := uc.recorder.Record(ctx, dto.RecordMovementRequest{
			FigureID: existing.ID,
			Kind:     entity.MovementTypeIN,
			Quantity: in.InitialQuantity,
		})
		if err != nil {
			return nil, err
		}
		return toFigureResponse(existing, agg.Quantity, agg.TotalSales), nil
	}

	now := time.Now()
	fig.ID = uuid.New().String()
	fig.CreatedAt = now
	fig.UpdatedAt = now

	// Alta + movimiento semilla en la misma transacción: una figura sin su
	// movimiento de creación no es observable con stock por el agregador
	err = uc.txRunner.Run(ctx, func(
		figRepo repository.FigureRepository,
		movRepo repository.MovementRepository,
	) error {
		if err := figRepo.Create(fig); err != nil {
			return err
		}
		seed := &entity.Movement{
			ID:        uuid.New().String(),
			FigureID:  fig.ID,
			Kind:      entity.MovementTypeIN,
			Quantity:  in.InitialQuantity,
			SalePrice: decimal.Zero,
			MovedAt:   now,
		}
		return movRepo.Create(seed)
	})
	if err != nil {
		return nil, err
	}
	return toFigureResponse(fig, in.InitialQuantity, decimal.Zero), nil
}

// Get devuelve la figura con su agregado. ErrNotFound si no existe.
func (uc *FigureUseCase) Get(ctx context.Context, id string) (*dto.FigureResponse, error) {
	fig, err := uc.figureRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if fig == nil {
		return nil, domain.ErrNotFound
	}
	agg, err := uc.aggregator.Aggregate(ctx, id)
	if err != nil {
		return nil, err
	}
	return toFigureResponse(fig, agg.Quantity, agg.TotalSales), nil
}

// Edit actualiza atributos descriptivos, costo e imagen. Quantity, si viene,
// es un objetivo de stock: la diferencia se registra como movimiento
// compensatorio (IN si sube, OUT a precio cero si baja) por la vía normal de
// admisión, así el log sigue siendo la única fuente del agregado.
func (uc *FigureUseCase) Edit(ctx context.Context, id string, in dto.UpdateFigureRequest) (*dto.FigureResponse, error) {
	fig, err := uc.figureRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if fig == nil {
		return nil, domain.ErrNotFound
	}

	if in.Manufacturer != nil {
		fig.Manufacturer = strings.TrimSpace(*in.Manufacturer)
	}
	if in.Brand != nil {
		fig.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.Character != nil {
		fig.Character = strings.TrimSpace(*in.Character)
	}
	if in.ModelName != nil {
		fig.ModelName = strings.TrimSpace(*in.ModelName)
	}
	if in.IP != nil {
		fig.IP = strings.TrimSpace(*in.IP)
	}
	if in.CostPrice != nil {
		fig.CostPrice = *in.CostPrice
	}
	if in.ImageURL != nil {
		fig.ImageURL = *in.ImageURL
	}
	if !fig.Validate() {
		return nil, domain.ErrInvalidInput
	}
	fig.UpdatedAt = time.Now()
	if err := uc.figureRepo.Update(fig); err != nil {
		return nil, err
	}

	agg, err := uc.aggregator.Aggregate(ctx, id)
	if err != nil {
		return nil, err
	}
	quantity, totalSales := agg.Quantity, agg.TotalSales

	if in.Quantity != nil && *in.Quantity != agg.Quantity {
		delta := *in.Quantity - agg.Quantity
		req := dto.RecordMovementRequest{FigureID: id}
		if delta > 0 {
			req.Kind = entity.MovementTypeIN
			req.Quantity = delta
		} else {
			// Ajuste a la baja: salida a precio cero, no es una venta
			zero := decimal.Zero
			req.Kind = entity.MovementTypeOUT
			req.Quantity = -delta
			req.SalePrice = &zero
		}
		adjusted, err := uc.recorder.Record(ctx, req)
		if err != nil {
			return nil, err
		}
		quantity, totalSales = adjusted.Quantity, adjusted.TotalSales
	}

	return toFigureResponse(fig, quantity, totalSales), nil
}

// Delete elimina la figura y todo su historial de movimientos (cascada).
// ErrNotFound si no existe: borrar dos veces es un error la segunda.
func (uc *FigureUseCase) Delete(ctx context.Context, id string) error {
	fig, err := uc.figureRepo.GetByID(id)
	if err != nil {
		return err
	}
	if fig == nil {
		return domain.ErrNotFound
	}
	return uc.figureRepo.Delete(id)
}

func toFigureResponse(fig *entity.Figure, quantity int64, totalSales decimal.Decimal) *dto.FigureResponse {
	return &dto.FigureResponse{
		ID:           fig.ID,
		Manufacturer: fig.Manufacturer,
		Brand:        fig.Brand,
		Character:    fig.Character,
		ModelName:    fig.ModelName,
		IP:           fig.IP,
		CostPrice:    fig.CostPrice,
		ImageURL:     fig.ImageURL,
		Quantity:     quantity,
		TotalSales:   totalSales,
		CreatedAt:    fig.CreatedAt,
		UpdatedAt:    fig.UpdatedAt,
	}
}
