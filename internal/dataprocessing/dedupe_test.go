package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junlife-hub/house-analysis/pkg/contracts/domain"
)

func TestDeduplicate(t *testing.T) {
	a := tx("20250110", "태강아파트", 49.6, 5.6)
	a.Floor = "12"
	b := a // same transaction arriving from both sources
	c := tx("20250110", "태강아파트", 49.6, 5.6)
	c.Floor = "7" // different floor: a distinct sale the same day

	out := Deduplicate([]domain.TransactionRecord{a, b, c})

	require.Len(t, out, 2)
	assert.Equal(t, "12", out[0].Floor, "first occurrence wins, order preserved")
	assert.Equal(t, "7", out[1].Floor)
}

func TestDeduplicate_Empty(t *testing.T) {
	assert.Empty(t, Deduplicate(nil))
	assert.Empty(t, Deduplicate([]domain.TransactionRecord{}))
}

func TestDeduplicate_NullPriceDistinctFromZero(t *testing.T) {
	priced := tx("20250110", "태강아파트", 49.6, 0)
	unpriced := priced
	unpriced.HasPrice = false

	out := Deduplicate([]domain.TransactionRecord{priced, unpriced})
	require.Len(t, out, 2, "a null price is not the same as a zero price")
}
