package token

import (
	"mime"
	"net/http"
)

const (
	contentTypeForm = "application/x-www-form-urlencoded"
	contentTypeJSON = "application/json"
)

// jsonResponseTransport labels every token response that is not form encoded
// as JSON. Some providers reply with text/plain or no Content-Type at all,
// which x/oauth2 would otherwise read as a query string.
type jsonResponseTransport struct {
	base http.RoundTripper
}

func (t jsonResponseTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return resp, err
	}
	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType != contentTypeForm && mediaType != contentTypeJSON {
		resp.Header.Set("Content-Type", contentTypeJSON)
	}
	return resp, nil
}

// withJSONResponses returns a copy of httpClient whose transport applies
// jsonResponseTransport. The caller's client is left untouched.
func withJSONResponses(httpClient *http.Client) *http.Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c := *httpClient
	c.Transport = jsonResponseTransport{base: base}
	return &c
}
