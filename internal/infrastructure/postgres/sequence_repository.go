package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo correlativos por empresa y tipo de documento.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Debe recibir la tx del documento.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next reserva el siguiente valor. El upsert toma el lock de la fila (company_id, doc_type) hasta el commit,
// así dos ventas concurrentes de la misma empresa nunca leen el mismo valor y un rollback no deja huecos.
func (r *SequenceRepo) Next(ctx context.Context, companyID, docType string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO document_sequences (company_id, doc_type, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, doc_type)
		DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value`, companyID, docType).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", docType, err)
	}
	return n, nil
}
