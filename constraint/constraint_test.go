package constraint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/tradeopt/cvx"
)

func bookVectors(n int) (cvx.Vector, cvx.Vector) {
	z := cvx.NewVariable(n, "z")
	w := make([]float64, n)
	for i := range w {
		w[i] = 1.0 / float64(n)
	}
	return cvx.AddVec(cvx.ConstVector(w), z.AsVector()), z.AsVector()
}

func TestModels_ProduceValidConstraints(t *testing.T) {
	models := []Model{
		NewMaxWeight(0.05),
		NewMinWeight(-0.05),
		NewMaxLeverage(2.0),
		NewMaxTurnover(0.5),
		NewLongOnly(),
		NewDollarNeutral(),
	}
	wplus, z := bookVectors(4)

	for _, m := range models {
		c, err := m.WeightExpr(time.Time{}, wplus, z, 1e6)
		require.NoError(t, err, m.Name())
		assert.NoError(t, c.Validate(), m.Name())
	}
}

func TestDefaults(t *testing.T) {
	models := Defaults()
	require.Len(t, models, 3)
	assert.Equal(t, "max_weight", models[0].Name())
	assert.Equal(t, "min_weight", models[1].Name())
	assert.Equal(t, "max_leverage", models[2].Name())
}
