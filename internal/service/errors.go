package service

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/eventbudget/internal/auth"
	"github.com/mmynk/eventbudget/internal/middleware"
	"github.com/mmynk/eventbudget/internal/models"
	"github.com/mmynk/eventbudget/internal/storage"
)

var errNotCreator = errors.New("only the event creator can access this event")

func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

// toConnectError maps storage and auth errors onto Connect codes. Errors that
// already carry a code pass through unchanged.
func toConnectError(err error) error {
	var connectErr *connect.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &connectErr):
		return err
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, auth.ErrUsernameExists), errors.Is(err, auth.ErrEmailExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrMissingUsername),
		errors.Is(err, auth.ErrMissingEmail):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// currentUserID returns the authenticated caller set by middleware.RequireAuth.
func currentUserID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// ownedEvent loads an event and checks that the caller created it.
func ownedEvent(ctx context.Context, store storage.Store, eventID string) (*models.Event, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if eventID == "" {
		return nil, invalidArgument("event_id required")
	}

	event, err := store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if event.CreatorID != userID {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotCreator)
	}
	return event, nil
}
