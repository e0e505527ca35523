package httpclient

import "net/http"

// AuthConfig places a credential in a request header. Credentials are
// never put in the URL.
type AuthConfig struct {
	Header string
	Key    string
}

// APIKeyAuthHeader sends key in the named header, e.g. "xi-api-key".
func APIKeyAuthHeader(key, headerName string) *AuthConfig {
	return &AuthConfig{Header: headerName, Key: key}
}

func (a *AuthConfig) apply(req *http.Request) {
	if a == nil || a.Header == "" {
		return
	}
	req.Header.Set(a.Header, a.Key)
}
