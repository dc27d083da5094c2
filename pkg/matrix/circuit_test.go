package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Conductance ladder G = [[2,-1],[-1,2]], rhs = [1,0]; solution [2/3, 1/3].
func stampLadder(m *CircuitMatrix) {
	m.AddElement(1, 1, 2)
	m.AddElement(1, 2, -1)
	m.AddElement(2, 1, -1)
	m.AddElement(2, 2, 2)
	m.AddRHS(1, 1)
}

func TestSolveLadder(t *testing.T) {
	m, err := NewMatrix(2)
	require.NoError(t, err)
	defer m.Destroy()

	stampLadder(m)
	m.SetupElements()
	require.NoError(t, m.Solve())

	solution := m.Solution()
	assert.InDelta(t, 2.0/3.0, solution[1], 1e-12)
	assert.InDelta(t, 1.0/3.0, solution[2], 1e-12)
}

// Factoring reorders the matrix internally; subsequent time steps must still
// be able to clear and restamp with the external row/column indices.
func TestSolveAfterRefactorCycles(t *testing.T) {
	m, err := NewMatrix(2)
	require.NoError(t, err)
	defer m.Destroy()

	stampLadder(m)
	m.SetupElements()

	for cycle := 0; cycle < 5; cycle++ {
		m.Clear()
		stampLadder(m)
		require.NoError(t, m.Solve(), "cycle %d", cycle)

		solution := m.Solution()
		assert.InDelta(t, 2.0/3.0, solution[1], 1e-12, "cycle %d", cycle)
		assert.InDelta(t, 1.0/3.0, solution[2], 1e-12, "cycle %d", cycle)
	}
}

func TestAddElementIgnoresGroundAndOutOfRange(t *testing.T) {
	m, err := NewMatrix(2)
	require.NoError(t, err)
	defer m.Destroy()

	m.AddElement(0, 1, 5)
	m.AddElement(1, 0, 5)
	m.AddElement(3, 3, 5)
	m.AddRHS(0, 5)
	m.AddRHS(3, 5)

	assert.Zero(t, m.RHS()[1])
	assert.Zero(t, m.RHS()[2])
}
