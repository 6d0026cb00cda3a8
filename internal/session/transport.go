package session

import "net/http"

// Transport attaches credentials to every request and reports 401 responses
// to the Authenticator. Responses are returned unchanged.
type Transport struct {
	Base http.RoundTripper
	Auth Authenticator
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	t.Auth.AttachCredentials(r)
	resp, err := t.base().RoundTrip(r)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		t.Auth.HandleUnauthorized()
	}
	return resp, nil
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}
