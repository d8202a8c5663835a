package middleware

import (
	"context"
	"net/http"
	"strings"

	"pawbook/pkg/auth"
	"pawbook/pkg/logger"
	"pawbook/pkg/model"
)

const actorKey contextKey = "actor"

// Authentication validates the Bearer token and places the resulting Actor
// into the request context. Handlers read it back with ActorFromContext and
// pass it explicitly into every service call.
func Authentication(secret string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				rejectUnauthenticated(w, log, r, "missing bearer token")
				return
			}

			actor, err := auth.Parse(secret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				rejectUnauthenticated(w, log, r, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), actorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ActorFromContext(ctx context.Context) (model.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(model.Actor)
	return actor, ok
}

// ContextWithActor returns a context carrying the actor. Used by tests and
// callers that sit outside the HTTP middleware chain.
func ContextWithActor(ctx context.Context, actor model.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

func rejectUnauthenticated(w http.ResponseWriter, log *logger.Logger, r *http.Request, reason string) {
	log.Warn("Request rejected: unauthenticated",
		"request_id", RequestID(r.Context()),
		"path", r.URL.Path,
		"reason", reason,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Authentication required"}`))
}
