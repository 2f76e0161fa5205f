package httperr

import (
	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message   string `json:"message"`
		Field     string `json:"field,omitempty"`
		Retryable bool   `json:"retryable,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

type Option func(*Response)

// WithField points the client at the form field to annotate.
func WithField(field string) Option {
	return func(r *Response) {
		r.Error.Field = field
	}
}

// Retryable tells the client the same request may succeed later.
func Retryable() Option {
	return func(r *Response) {
		r.Error.Retryable = true
	}
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any, opts ...Option) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail
	for _, opt := range opts {
		opt(&resp)
	}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
