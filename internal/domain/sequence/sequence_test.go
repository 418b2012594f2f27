package sequence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Ventas-api/internal/domain/sequence"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "V-000001", sequence.Format(sequence.DocSale, 1))
	assert.Equal(t, "V-000123", sequence.Format(sequence.DocSale, 123))
	assert.Equal(t, "C-000042", sequence.Format(sequence.DocPurchase, 42))
	assert.Equal(t, "V-1234567", sequence.Format(sequence.DocSale, 1234567))
}

func TestPrefix_TipoDesconocido(t *testing.T) {
	assert.Equal(t, "V-", sequence.Prefix(sequence.DocSale))
	assert.Equal(t, "C-", sequence.Prefix(sequence.DocPurchase))
	assert.Empty(t, sequence.Prefix("OTRO"))
}
