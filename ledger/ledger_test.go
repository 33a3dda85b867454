package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prismfinance/engine/ledger"
)

func TestNewRejectsNonPositiveShape(t *testing.T) {
	_, err := ledger.New(0, 4)
	require.ErrorIs(t, err, ledger.ErrInvalidShape)

	_, err = ledger.New(3, 0)
	require.ErrorIs(t, err, ledger.ErrInvalidShape)
}

func TestSetAndAtRoundTrip(t *testing.T) {
	l, err := ledger.New(2, 3)
	require.NoError(t, err)

	require.NoError(t, l.Set(1, 2, 42))
	v, err := l.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 42.0, v)

	valid, err := l.IsValid(1, 2)
	require.NoError(t, err)
	require.False(t, valid, "Set alone does not mark the cell valid")
}

func TestOutOfRangeAccessFails(t *testing.T) {
	l, err := ledger.New(2, 3)
	require.NoError(t, err)

	_, err = l.At(2, 0)
	require.ErrorIs(t, err, ledger.ErrIndexOutOfRange)

	_, err = l.At(0, 3)
	require.ErrorIs(t, err, ledger.ErrIndexOutOfRange)

	require.ErrorIs(t, l.Set(-1, 0, 1), ledger.ErrIndexOutOfRange)
}

func TestWriteConstantBroadcastsScalar(t *testing.T) {
	l, err := ledger.New(1, 4)
	require.NoError(t, err)

	require.NoError(t, l.WriteConstant(0, []float64{7}))
	col, err := l.Column(0)
	require.NoError(t, err)
	require.Equal(t, []float64{7, 7, 7, 7}, col)

	valid, err := l.ColumnValid(0)
	require.NoError(t, err)
	require.True(t, valid)
}

func TestWriteConstantAcceptsFullVector(t *testing.T) {
	l, err := ledger.New(1, 3)
	require.NoError(t, err)

	require.NoError(t, l.WriteConstant(0, []float64{1, 2, 3}))
	col, err := l.Column(0)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, col)
}

func TestWriteConstantRejectsMismatchedLength(t *testing.T) {
	l, err := ledger.New(1, 3)
	require.NoError(t, err)

	err = l.WriteConstant(0, []float64{1, 2})
	require.Error(t, err)
}

func TestColumnValidRequiresEveryCell(t *testing.T) {
	l, err := ledger.New(1, 2)
	require.NoError(t, err)

	require.NoError(t, l.SetValid(0, 0, true))
	valid, err := l.ColumnValid(0)
	require.NoError(t, err)
	require.False(t, valid)

	require.NoError(t, l.SetValid(0, 1, true))
	valid, err = l.ColumnValid(0)
	require.NoError(t, err)
	require.True(t, valid)
}

func TestCloneIsIndependent(t *testing.T) {
	l, err := ledger.New(1, 2)
	require.NoError(t, err)
	require.NoError(t, l.WriteConstant(0, []float64{5}))

	clone := l.Clone()
	require.NoError(t, clone.Set(0, 0, 99))

	original, err := l.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 5.0, original)

	cloned, err := clone.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 99.0, cloned)
}
