package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/intelguy8000/odontologia/internal/domain/inventory"
)

// TestStatus verifica la regla completa de clasificación:
// critical ⟺ stock==0 ∨ stock < 0.5×mínimo; low ⟺ no critical ∧ stock < mínimo.
func TestStatus(t *testing.T) {
	cases := []struct {
		name     string
		current  int
		min      int
		expected inventory.StockStatus
	}{
		{"stock cero siempre es critical", 0, 10, inventory.StockCritical},
		{"stock cero con mínimo cero es critical", 0, 0, inventory.StockCritical},
		{"por debajo de la mitad del mínimo", 4, 10, inventory.StockCritical},
		{"justo en la mitad del mínimo es low, no critical", 5, 10, inventory.StockLow},
		{"por debajo del mínimo", 9, 10, inventory.StockLow},
		{"justo en el mínimo es ok", 10, 10, inventory.StockOK},
		{"por encima del mínimo", 45, 10, inventory.StockOK},
		{"mínimo impar: 3 de 7 es critical", 3, 7, inventory.StockCritical},
		{"mínimo impar: 4 de 7 es low (4 > 3.5)", 4, 7, inventory.StockLow},
		{"mínimo cero con stock positivo es ok", 1, 0, inventory.StockOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, inventory.Status(tc.current, tc.min))
		})
	}
}

func TestDeficit(t *testing.T) {
	assert.Equal(t, 6, inventory.Deficit(4, 10))
	assert.Equal(t, 0, inventory.Deficit(10, 10))
	assert.Equal(t, 0, inventory.Deficit(15, 10))
}
