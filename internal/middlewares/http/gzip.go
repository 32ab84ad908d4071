package http

import (
	"bytes"
	"compress/gzip"
	"net/http"
	"strconv"
	"strings"
)

// compressibleTypes lists the response content types GzipMiddleware compresses.
var compressibleTypes = []string{"application/json", "application/yaml", "text/plain", "text/html"}

// GzipMiddleware is an HTTP middleware that compresses responses for clients
// sending "Accept-Encoding: gzip".
//
// The response body is buffered and compressed only when its Content-Type
// is one of compressibleTypes; other responses are sent unchanged.
func GzipMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gzw := newGzipBufferResponseWriter(w)
		next.ServeHTTP(gzw, r)
		_ = gzw.Flush()
	})
}

// compress compresses the input data using gzip and returns the compressed bytes.
func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	if _, err := gzw.Write(data); err != nil {
		_ = gzw.Close()
		return nil, err
	}
	if err := gzw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// gzipBufferResponseWriter is an http.ResponseWriter that buffers the response body
// for optional gzip compression before sending it to the client.
type gzipBufferResponseWriter struct {
	http.ResponseWriter
	buf        bytes.Buffer
	statusCode int
}

func newGzipBufferResponseWriter(w http.ResponseWriter) *gzipBufferResponseWriter {
	return &gzipBufferResponseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// WriteHeader buffers the HTTP status code to send later.
func (w *gzipBufferResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
}

// Write buffers the response body bytes.
func (w *gzipBufferResponseWriter) Write(b []byte) (int, error) {
	return w.buf.Write(b)
}

// Flush compresses the buffered body if needed and writes headers and body to the underlying ResponseWriter.
func (w *gzipBufferResponseWriter) Flush() error {
	body := w.buf.Bytes()

	if shouldCompress(w.Header().Get("Content-Type")) && len(body) > 0 {
		compressed, err := compress(body)
		if err != nil {
			return err
		}
		body = compressed
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Add("Vary", "Accept-Encoding")
	}

	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.ResponseWriter.WriteHeader(w.statusCode)
	_, err := w.ResponseWriter.Write(body)
	return err
}

func shouldCompress(contentType string) bool {
	contentType = strings.ToLower(contentType)
	for _, t := range compressibleTypes {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	return false
}
