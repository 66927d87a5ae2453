package spotify

// Endpoint describes a single API endpoint: its HTTP method and its path
// relative to the API base URL.
//
// Endpoints with query parameters, a request body, or a non-default host
// additionally implement Parameterized, BodyProvider, or BaseOverrider.
type Endpoint interface {
	Method() string
	Path() string
}

// Parameterized is implemented by endpoints that carry query parameters.
type Parameterized interface {
	Parameters() QueryParams
}

// BodyProvider is implemented by endpoints that send a request body. It
// returns the content type and the encoded body.
type BodyProvider interface {
	Body() (string, []byte, error)
}

// BaseOverrider is implemented by endpoints that live on a host other
// than the API base, such as the accounts service.
type BaseOverrider interface {
	BaseURL() string
}

// Pageable marks endpoints whose responses are offset-paginated. Only
// pageable endpoints can be used with Paged and PageIterator.
type Pageable interface {
	Endpoint
	Pageable()
}
