package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() Params {
	return Params{
		Resistance:  0.15,
		Inductance:  100e-6,
		Capacitance: 10e-3,
		BankVoltage: 48,
	}
}

func TestParamsValidate(t *testing.T) {
	require.NoError(t, validParams().Validate())

	cases := []struct {
		name    string
		mutate  func(*Params)
		wantMsg string
	}{
		{"zero inductance", func(p *Params) { p.Inductance = 0 }, "inductance"},
		{"negative inductance", func(p *Params) { p.Inductance = -1e-6 }, "inductance"},
		{"zero capacitance", func(p *Params) { p.Capacitance = 0 }, "capacitance"},
		{"zero resistance", func(p *Params) { p.Resistance = 0 }, "resistance"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validParams()
			tc.mutate(&p)

			err := p.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestNewDischargeRejectsInvalidParams(t *testing.T) {
	p := validParams()
	p.Capacitance = -1

	_, err := NewDischarge("bad", p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacitance")
}

func TestInitialSolution(t *testing.T) {
	ckt, err := NewDischarge("ok", validParams())
	require.NoError(t, err)
	defer ckt.Destroy()

	initial := ckt.InitialSolution()
	assert.Equal(t, 48.0, initial[KeyBankVoltage])
	assert.Equal(t, 48.0, initial[KeyCoilVoltage])
	assert.Zero(t, initial[KeyCoilCurrent])

	assert.Zero(t, ckt.CoilCurrent())
	assert.Equal(t, 48.0, ckt.BankVoltage())
}

func TestGetSolutionKeys(t *testing.T) {
	ckt, err := NewDischarge("ok", validParams())
	require.NoError(t, err)
	defer ckt.Destroy()

	solution := ckt.GetSolution()
	assert.Contains(t, solution, KeyBankVoltage)
	assert.Contains(t, solution, KeyCoilVoltage)
	assert.Contains(t, solution, KeyCoilCurrent)
}
