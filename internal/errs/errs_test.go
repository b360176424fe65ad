package errs

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestErrLengthMismatch(t *testing.T) {
	err := errors.Wrap(ErrLengthMismatch{Push: 2, Target: 1}, "checking")
	require.True(t, errors.Is(err, ErrLengthMismatch{}))
	require.False(t, errors.Is(err, ErrUnexpectedResult{}))
	require.Equal(t, "checking: push order has 2 elements but target order has 1", err.Error())
}

func TestErrUnexpectedResult(t *testing.T) {
	err := ErrUnexpectedResult{Case: "swap", Want: true, Got: false}
	require.True(t, errors.Is(err, ErrUnexpectedResult{}))
	require.Equal(t, `case "swap": got false, want true`, err.Error())
}
