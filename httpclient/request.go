package httpclient

// Request describes one outbound HTTP request.
type Request struct {
	Method string
	// Path is appended to the client's BaseURL, or used as is when it is a
	// full URL.
	Path string
	// Body accepts *MultipartBody, []byte or io.Reader.
	Body any
	Auth *AuthConfig
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}
