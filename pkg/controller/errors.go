package controller

import (
	"context"
	"errors"
	"net/http"
	"targets/pkg/logger"
	"targets/pkg/serrors"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// StatusOf maps a semantic error kind to an HTTP status code.
func StatusOf(k serrors.Kind) int {
	switch k {
	case serrors.ErrInvalidRange, serrors.ErrInvalidTarget, serrors.ErrBadRequest:
		return http.StatusBadRequest
	case serrors.ErrUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as {"error":{"code":...,"message":...}} with the
// status matching its kind. Internal errors are logged and their details
// are not sent to the client.
func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	kind := serrors.KindOf(err)
	status := StatusOf(kind)

	msg := err.Error()
	var se *serrors.Error
	if errors.As(err, &se) {
		msg = se.Error()
	}
	if status == http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))
		msg = "internal error"
	}

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("error")
	e.ObjStart()
	e.FieldStart("code")
	e.Str(kind.Error())
	e.FieldStart("message")
	e.Str(msg)
	e.ObjEnd()
	e.ObjEnd()

	WriteJSON(w, status, e.Bytes())
}

// WriteJSON writes body with the given status and a JSON content type.
func WriteJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
