package api

import (
	"errors"
	"net/http"

	"toy-rental-storefront/internal/domain/user"
	"toy-rental-storefront/internal/handler/httperr"
	"toy-rental-storefront/internal/handler/middleware"
	"toy-rental-storefront/internal/pkg/errs"
	"toy-rental-storefront/internal/usecase"

	"github.com/gin-gonic/gin"
)

// respondError maps the storefront error taxonomy onto HTTP. detailOf renders
// the reconciled state a SyncError carries; it may be nil.
func respondError(c *gin.Context, err error, detailOf func(any) any) {
	var (
		validation *errs.ValidationError
		notFound   *errs.NotFoundError
	)

	switch {
	// SyncError wraps its cause and must match before the cause's own kind.
	case errs.IsSync(err):
		sync, _ := errs.AsSync(err)
		var detail any
		if detailOf != nil && sync.Reconciled != nil {
			detail = detailOf(sync.Reconciled)
		}
		var opts []httperr.Option
		if errs.Retryable(err) {
			opts = append(opts, httperr.Retryable())
		}
		httperr.AbortWithError(c, http.StatusConflict, err, "Update failed; showing the latest state", detail, opts...)
	case errors.As(err, &validation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, validation.Reason, nil,
			httperr.WithField(validation.Field))
	case errors.As(err, &notFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, notFound.Error(), gin.H{"entity": notFound.Entity, "id": notFound.ID})
	case errs.Retryable(err):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Service temporarily unavailable", nil,
			httperr.Retryable())
	case errs.Is(err, errs.ErrUnauthenticated),
		errs.Is(err, usecase.ErrSessionExpired),
		errs.Is(err, usecase.ErrInvalidCredentials):
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Authentication required", nil)
	case errs.Is(err, errs.ErrConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Request conflicts with current state", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func badRequest(c *gin.Context, err error, msg string) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, msg, nil)
}

// requireSession is a guard for handlers mounted behind RequireAuth.
func requireSession(c *gin.Context) (*user.Session, bool) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrUnauthenticated, "Authentication required", nil)
		return nil, false
	}
	return sess, true
}
