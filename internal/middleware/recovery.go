package middleware

import (
	"net/http"
	"runtime/debug"

	"blog/internal/logger"

	"go.uber.org/zap"
)

// Recoverer ловит панику обработчика. onPanic рисует ответ (HTML 500 или JSON);
// если nil — отдаётся простой текст.
func Recoverer(onPanic http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.WithCtx(r.Context()).Error("panic recovered",
						zap.Any("panic", rec),
						zap.ByteString("stack", debug.Stack()),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					if onPanic != nil {
						onPanic(w, r)
						return
					}
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte("internal server error"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
