package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
)

var compressor = chimw.Compress(5, "application/json", "text/plain")

// WithGzip сжимает JSON/текстовые ответы для клиентов с Accept-Encoding: gzip
// и распаковывает тела запросов с Content-Encoding: gzip.
func WithGzip(next http.Handler) http.Handler {
	return compressor(gunzipRequest(next))
}

type gzipBody struct {
	*gzip.Reader
	src io.Closer
}

func (b gzipBody) Close() error {
	_ = b.Reader.Close()
	return b.src.Close()
}

func gunzipRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(strings.ToLower(r.Header.Get("Content-Encoding")), "gzip") || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}
		zr, err := gzip.NewReader(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid gzip body")
			return
		}
		r.Body = gzipBody{Reader: zr, src: r.Body}
		r.Header.Del("Content-Encoding")
		r.ContentLength = -1
		next.ServeHTTP(w, r)
	})
}
