package handlers

import (
	"compress/gzip"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

func (con *Controller) PanicRecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				con.sugar.Errorf("Error recovering from panic: %v", err)
				http.Error(res, "Internal server error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(res, req)
	})
}

// RequestIDMiddleware keeps an incoming X-Request-Id or assigns a new one and
// echoes it on the response.
func (con *Controller) RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
			req.Header.Set(RequestIDHeader, id)
		}
		res.Header().Set(RequestIDHeader, id)

		next.ServeHTTP(res, req)
	})
}

func (con *Controller) LoggingMiddleware(next http.Handler) http.Handler {
	logFn := func(res http.ResponseWriter, req *http.Request) {
		start := time.Now()

		responseData := &responseData{
			status: http.StatusOK,
			size:   0,
		}
		lw := loggingResponseWriter{
			ResponseWriter: res,
			responseData:   responseData,
		}
		next.ServeHTTP(&lw, req)

		con.sugar.Infoln(
			"request_id", req.Header.Get(RequestIDHeader),
			"uri", req.RequestURI,
			"method", req.Method,
			"status", responseData.status,
			"size", responseData.size,
			"duration", time.Since(start),
		)
	}

	return http.HandlerFunc(logFn)
}

func (con *Controller) GzipDecodeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Content-Encoding") == "gzip" {
			gz, err := gzip.NewReader(req.Body)
			if err != nil {
				http.Error(res, "Bad Request: Unable to decode gzip body", http.StatusBadRequest)
				return
			}
			defer gz.Close()
			req.Body = gz
			req.Header.Del("Content-Encoding")
			req.ContentLength = -1
		}
		next.ServeHTTP(res, req)
	})
}

// GzipEncodeMiddleware compresses page responses. Only GET is compressed;
// the POST handler answers with redirects.
func (con *Controller) GzipEncodeMiddleware(next http.Handler) http.Handler {
	compressFn := func(res http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet || !strings.Contains(req.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(res, req)
			return
		}

		gz, err := gzip.NewWriterLevel(res, gzip.BestSpeed)
		if err != nil {
			http.Error(res, "Error creating gzip.Writer", http.StatusInternalServerError)
			return
		}

		defer gz.Close()

		res.Header().Set("Content-Encoding", "gzip")
		res.Header().Add("Vary", "Accept-Encoding")
		res.Header().Del("Content-Length")

		next.ServeHTTP(gzipWriter{ResponseWriter: res, Writer: gz}, req)
	}
	return http.HandlerFunc(compressFn)
}
