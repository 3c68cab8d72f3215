package num

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "zero", input: "0", want: "0"},
		{name: "positive", input: "42", want: "42"},
		{name: "negative", input: "-7", want: "-7"},
		{name: "leading zeros", input: "007", want: "7"},
		{name: "explicit plus", input: "+3", want: "3"},
		{name: "max", input: "170141183460469231731687303715884105727", want: "170141183460469231731687303715884105727"},
		{name: "min", input: "-170141183460469231731687303715884105728", want: "-170141183460469231731687303715884105728"},
		{name: "above max", input: "170141183460469231731687303715884105728", wantErr: ErrPosOverflow},
		{name: "below min", input: "-170141183460469231731687303715884105729", wantErr: ErrNegOverflow},
		{name: "embedded minus", input: "1-2", wantErr: ErrInvalidDigit},
		{name: "trailing letters", input: "12abc", wantErr: ErrInvalidDigit},
		{name: "lone minus", input: "-", wantErr: ErrInvalidDigit},
		{name: "empty", input: "", wantErr: ErrEmpty},
		{name: "underscore", input: "1_000", wantErr: ErrInvalidDigit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	values := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(-1),
		big.NewInt(1 << 62),
		new(big.Int).Mul(big.NewInt(1<<62), big.NewInt(1<<40)),
		Max(),
		Min(),
	}

	for _, v := range values {
		got, err := Parse(v.String())
		require.NoError(t, err, v.String())
		assert.Zero(t, v.Cmp(got), "round trip of %s gave %s", v, got)
	}
}

func TestFits(t *testing.T) {
	assert.True(t, Fits(Max()))
	assert.True(t, Fits(Min()))
	assert.False(t, Fits(new(big.Int).Add(Max(), big.NewInt(1))))
	assert.False(t, Fits(new(big.Int).Sub(Min(), big.NewInt(1))))
}

func TestMaxMinReturnCopies(t *testing.T) {
	m := Max()
	m.SetInt64(0)
	assert.NotZero(t, Max().Sign())
}
