package handlers

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"orderform/cmd/orderform/order"
)

type (
	responseData struct {
		status int
		size   int
	}

	// loggingResponseWriter records what the handler sent for the access log.
	loggingResponseWriter struct {
		http.ResponseWriter
		responseData *responseData
		wroteHeader  bool
	}
)

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	r.wroteHeader = true
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	if r.wroteHeader {
		return
	}
	r.wroteHeader = true
	r.responseData.status = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *loggingResponseWriter) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

type gzipWriter struct {
	http.ResponseWriter
	Writer io.Writer
}

func (w gzipWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

// WriteHeader drops any Content-Length set by the handler, which would count
// uncompressed bytes.
func (w gzipWriter) WriteHeader(statusCode int) {
	w.ResponseWriter.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w gzipWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func submissionFromForm(form url.Values) order.Submission {
	return order.Submission{
		CustomerName: form.Get(order.FieldCustomerName),
		Amount:       form.Get(order.FieldAmount),
	}
}

// oldInput echoes the raw submission back to the form.
func oldInput(s order.Submission) map[string]string {
	return map[string]string{
		order.FieldCustomerName: s.CustomerName,
		order.FieldAmount:       s.Amount,
	}
}

// backURL is the path of a same-host Referer, or the order form.
func backURL(req *http.Request) string {
	ref := req.Referer()
	if ref == "" {
		return OrderFormPath
	}

	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != req.Host) {
		return OrderFormPath
	}
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") || u.Path == OrdersPath {
		return OrderFormPath
	}

	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
