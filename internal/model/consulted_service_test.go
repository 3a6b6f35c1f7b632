package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestComputeDebt(t *testing.T) {
	tests := []struct {
		name       string
		finalPrice int64
		quantity   int
		amountPaid int64
		want       int64
	}{
		{"nothing paid", 500_000, 2, 0, 1_000_000},
		{"partially paid", 500_000, 2, 300_000, 700_000},
		{"fully paid", 500_000, 2, 1_000_000, 0},
		{"free service", 0, 3, 0, 0},
		{"single unit", 1_200_000, 1, 200_000, 1_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeDebt(tt.finalPrice, tt.quantity, tt.amountPaid))
		})
	}
}

func TestTotalPrice(t *testing.T) {
	cs := &ConsultedService{FinalPrice: 750_000, Quantity: 4}
	assert.Equal(t, int64(3_000_000), cs.TotalPrice())
}

func TestOwnerIDs(t *testing.T) {
	saleID := uuid.New()
	doctorID := uuid.New()

	cs := &ConsultedService{}
	assert.Empty(t, cs.OwnerIDs())

	cs.SaleID = &saleID
	assert.Equal(t, []uuid.UUID{saleID}, cs.OwnerIDs())

	cs.DoctorID = &doctorID
	assert.Equal(t, []uuid.UUID{saleID, doctorID}, cs.OwnerIDs())
}
