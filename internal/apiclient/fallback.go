package apiclient

// Fallback serves canned JSON for a request when the backend is
// unreachable or answers with an HTML page (a dev server without the API
// proxy). The bytes go through the same decoder as real responses.
type Fallback interface {
	Lookup(method, path string, body []byte) ([]byte, bool)
}

// FallbackFunc adapts a function to Fallback.
type FallbackFunc func(method, path string, body []byte) ([]byte, bool)

func (f FallbackFunc) Lookup(method, path string, body []byte) ([]byte, bool) {
	return f(method, path, body)
}
