// Package service implements the portal's domain core: identity validation,
// the student registry, the complaint ledger and attachment validation. All
// services are storage-agnostic and operate through the store interfaces.
package service

import (
	"context"
	"errors"

	"github.com/dmiher/complaint-portal/internal/store"
	appErrors "github.com/dmiher/complaint-portal/pkg/errors"
)

// wrapStoreErr maps unexpected storage failures into the API taxonomy.
// Not-found and duplicate sentinels are handled at the call sites.
func wrapStoreErr(err error, message string) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return appErrors.Wrap(err, appErrors.ErrTimeout.Code, appErrors.ErrTimeout.Status, appErrors.ErrTimeout.Message)
	case errors.Is(err, context.Canceled):
		return appErrors.Wrap(err, appErrors.ErrTimeout.Code, appErrors.ErrTimeout.Status, "request canceled")
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrDuplicate):
		return err
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
	}
}
