// Package httpclient provides the HTTP client used to reach the
// transcription service: header-based authentication, multipart uploads,
// a bounded timeout and typed error classification.
//
// Each Do call sends exactly one request. There is no retry layer; a
// failed call returns a classified *Error and the caller decides what to do.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.elevenlabs.io",
//	    Timeout: 30 * time.Second,
//	})
//
//	body := &httpclient.MultipartBody{}
//	body.AddField("model_id", "scribe_v1")
//	body.Files = []httpclient.FileField{{FieldName: "file", FileName: "a.flac", ContentType: "audio/flac", Data: flac}}
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "/v1/speech-to-text",
//	    Body:   body,
//	    Auth:   httpclient.APIKeyAuthHeader(key, "xi-api-key"),
//	})
package httpclient
