package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/figures-ledger/internal/application/dto"
	"github.com/jhoicas/figures-ledger/internal/domain"
	"github.com/jhoicas/figures-ledger/internal/domain/entity"
	"github.com/jhoicas/figures-ledger/internal/domain/ledger"
	"github.com/jhoicas/figures-ledger/internal/domain/repository"
)

// RecordMovementUseCase registra movimientos de stock (IN/OUT) de forma
// transaccional, con bloqueo por figura y chequeo de admisión previo al append.
// Única autoridad de escritura sobre el log: nadie más agrega movimientos.
type RecordMovementUseCase struct {
	txRunner TxRunner
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(txRunner TxRunner) *RecordMovementUseCase {
	return &RecordMovementUseCase{txRunner: txRunner}
}

// Record valida la entrada, bloquea la figura, pliega su historial, ejecuta el
// chequeo de admisión y — solo si pasa — agrega el movimiento. Devuelve el
// agregado resultante. No reintenta: ErrInsufficientStock y ErrInvalidInput
// son terminales para la llamada y se propagan al caller tal cual.
func (uc *RecordMovementUseCase) Record(ctx context.Context, in dto.RecordMovementRequest) (*dto.AggregateResponse, error) {
	// Validaciones baratas antes de abrir la transacción
	if in.FigureID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	switch in.Kind {
	case entity.MovementTypeIN:
	case entity.MovementTypeOUT:
		if in.SalePrice == nil || in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	var out *dto.AggregateResponse
	err := uc.txRunner.Run(ctx, func(
		figRepo repository.FigureRepository,
		movRepo repository.MovementRepository,
	) error {
		// Bloquea la figura: serializa chequeo-y-append por figure_id
		fig, err := figRepo.GetForUpdate(in.FigureID)
		if err != nil {
			return err
		}
		if fig == nil {
			return domain.ErrNotFound
		}

		movs, err := movRepo.ListByFigure(in.FigureID)
		if err != nil {
			return err
		}
		agg, err := ledger.Fold(movs)
		if err != nil {
			return err
		}
		if err := ledger.Admit(agg, in.Kind, in.Quantity, in.SalePrice); err != nil {
			return err
		}

		salePrice := decimal.Zero
		if in.Kind == entity.MovementTypeOUT {
			salePrice = *in.SalePrice
		}
		mov := &entity.Movement{
			ID:        uuid.New().String(),
			FigureID:  in.FigureID,
			Kind:      in.Kind,
			Quantity:  in.Quantity,
			SalePrice: salePrice,
			MovedAt:   time.Now(),
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		agg = ledger.Apply(agg, mov)
		out = &dto.AggregateResponse{
			FigureID:   in.FigureID,
			Quantity:   agg.Quantity,
			TotalSales: agg.TotalSales,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
