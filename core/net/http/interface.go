package http

import "net/http"

// Clienter is what the API components need from a transport
type Clienter interface {
	Request(method, url string, body any, opts ...func(*RequestOption)) (*http.Response, error)
}
