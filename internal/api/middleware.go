package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

// requestLogger writes one line per request, after the response is sent.
func requestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			log.WithFields(logrus.Fields{
				"reqid":  middleware.GetReqID(r.Context()),
				"method": r.Method,
				"uri":    r.RequestURI,
				"status": ww.Status(),
				"bytes":  ww.BytesWritten(),
				"dur":    time.Since(start).String(),
				"ip":     r.RemoteAddr,
			}).Info("request")
		})
	}
}

func authenticate(auth AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
				return
			}

			claims, err := auth.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized", "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireOwner lets the request through only when the authenticated user owns
// the box named by the boxId URL parameter.
func requireOwner(boxes BoxService, h *handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := boxes.Authorize(r.Context(), userID(r), chi.URLParam(r, "boxId")); err != nil {
				h.writeError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func userID(r *http.Request) uuid.UUID {
	id, _ := r.Context().Value(userIDKey).(uuid.UUID)
	return id
}
