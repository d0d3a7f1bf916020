package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const RequestIDHeader = "X-Request-ID"

type ErrorResponse struct {
	Error   string `json:"error" description:"Error message"`
	Code    int    `json:"code" description:"HTTP status code"`
	Details string `json:"details,omitempty" description:"Additional error details"`
}

// HandleError writes err as an ErrorResponse with the given status.
func HandleError(resp *restful.Response, err error, status int) {
	body := ErrorResponse{
		Error: http.StatusText(status),
		Code:  status,
	}
	if err != nil {
		body.Details = err.Error()
	}
	if writeErr := resp.WriteHeaderAndEntity(status, body); writeErr != nil {
		log.Error().Err(writeErr).Int("status", status).Msg("Failed to write error response")
	}
}

// RequestID makes sure every request carries an X-Request-ID, echoing the
// caller's value or generating one.
func RequestID(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	id := req.HeaderParameter(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
		req.Request.Header.Set(RequestIDHeader, id)
	}
	resp.AddHeader(RequestIDHeader, id)
	chain.ProcessFilter(req, resp)
}

func Logger(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	start := time.Now()
	chain.ProcessFilter(req, resp)

	log.Info().
		Str("method", req.Request.Method).
		Str("path", req.Request.URL.Path).
		Str("request_id", req.HeaderParameter(RequestIDHeader)).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("HTTP request")
}

func RecoverPanic(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("path", req.Request.URL.Path).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("Recovered from panic")
			HandleError(resp, fmt.Errorf("internal error"), http.StatusInternalServerError)
		}
	}()
	chain.ProcessFilter(req, resp)
}
