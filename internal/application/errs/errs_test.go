package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Builder-Lawyers/tutorials-backend/internal/application/errs"
	"github.com/stretchr/testify/require"
)

func TestIsNotFoundThroughWrapping(t *testing.T) {
	err := fmt.Errorf("err getting tutorial, %w", errs.NotFound("tutorial"))
	require.True(t, errs.IsNotFound(err))
	require.EqualError(t, errs.NotFound("website"), "website not found")
	require.False(t, errs.IsNotFound(errors.New("boom")))
}

func TestNotFoundUnwrapsCause(t *testing.T) {
	cause := errors.New("no rows")
	err := errs.NotFoundError{Resource: "user", Err: cause}
	require.ErrorIs(t, err, cause)
	require.EqualError(t, err, "user not found: no rows")
}
