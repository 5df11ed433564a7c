package service

import (
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitmate/internal/storage"
)

// storeError converts a storage error into a Connect error. Unknown errors are
// logged and reported as internal without leaking details.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, storage.ErrInUse):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, storage.ErrInvalidReference):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, fmt.Errorf("%s failed", op))
	}
}

func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}
