package httpapi

import "net/http"

// Authenticator resolves the caller's identity-provider subject from a
// request. An empty string means the request is anonymous. Session
// verification itself happens upstream (the web app's auth layer); this
// service only consumes the resolved subject.
type Authenticator interface {
	CurrentUserID(r *http.Request) string
}

const defaultSubjectHeader = "X-Auth-Subject"

// HeaderAuthenticator reads the subject from a trusted proxy header.
type HeaderAuthenticator struct {
	header string
}

func NewHeaderAuthenticator() *HeaderAuthenticator {
	return &HeaderAuthenticator{header: defaultSubjectHeader}
}

func (a *HeaderAuthenticator) CurrentUserID(r *http.Request) string {
	return r.Header.Get(a.header)
}
