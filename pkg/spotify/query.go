package spotify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"reflect"
)

// buildRequest turns an endpoint descriptor into a resolved request:
// base URL (honoring a per-endpoint override), query parameters, and
// body with its content type.
func buildRequest(client Client, endpoint Endpoint) (*Request, error) {
	var (
		u   *url.URL
		err error
	)

	if override, ok := endpoint.(BaseOverrider); ok {
		u, err = url.Parse(override.BaseURL())
		if err == nil {
			u = u.JoinPath(endpoint.Path())
		}
	} else {
		u, err = client.Endpoint(endpoint.Path())
	}

	if err != nil {
		return nil, err
	}

	if p, ok := endpoint.(Parameterized); ok {
		params := p.Parameters()
		params.AppendToURL(u)
	}

	req := &Request{
		Method: endpoint.Method(),
		URL:    u,
	}

	if bp, ok := endpoint.(BodyProvider); ok {
		contentType, body, err := bp.Body()
		if err != nil {
			return nil, err
		}

		req.ContentType = contentType
		req.Body = body
	}

	return req, nil
}

// CheckResponse classifies a response by status code. A 301 always fails
// with the Location header, followed or not. Other non-2xx responses are
// mapped onto the error taxonomy by body shape: structured, legacy
// string, unrecognized JSON, or non-JSON.
func CheckResponse(resp *Response) error {
	if resp.StatusCode == http.StatusMovedPermanently {
		return &MovedPermanentlyError{Location: resp.Headers.Get("Location")}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if !json.Valid(resp.Body) {
		return &ServerError{Status: resp.StatusCode, Body: resp.Body}
	}

	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}

	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return &UnknownAPIError{Status: resp.StatusCode, Body: resp.Body}
	}

	if len(envelope.Error) > 0 {
		var structured APIError
		if err := json.Unmarshal(envelope.Error, &structured); err == nil && structured.Message != "" {
			if structured.Status == 0 {
				structured.Status = resp.StatusCode
			}

			return &structured
		}

		var legacy string
		if err := json.Unmarshal(envelope.Error, &legacy); err == nil {
			return &LegacyAPIError{Status: resp.StatusCode, Message: legacy}
		}
	}

	if envelope.Message != "" {
		return &LegacyAPIError{Status: resp.StatusCode, Message: envelope.Message}
	}

	return &UnknownAPIError{Status: resp.StatusCode, Body: resp.Body}
}

// do runs the shared pipeline for a single endpoint and returns the
// classified response.
func do(ctx context.Context, client Client, endpoint Endpoint) (*Response, error) {
	req, err := buildRequest(client, endpoint)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := CheckResponse(resp); err != nil {
		return nil, err
	}

	return resp, nil
}

// Query executes the endpoint and decodes the response body into T.
func Query[T any](ctx context.Context, client Client, endpoint Endpoint) (T, error) {
	var result T

	resp, err := do(ctx, client, endpoint)
	if err != nil {
		return result, err
	}

	if err := decode(resp.Body, &result); err != nil {
		return result, err
	}

	return result, nil
}

// Ignore executes the endpoint and discards the response body. Errors
// are still classified and returned.
func Ignore(ctx context.Context, client Client, endpoint Endpoint) error {
	_, err := do(ctx, client, endpoint)

	return err
}

// Raw executes the endpoint and returns the response body verbatim.
func Raw(ctx context.Context, client Client, endpoint Endpoint) ([]byte, error) {
	resp, err := do(ctx, client, endpoint)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

func decode(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return &DataTypeError{
			TypeName: reflect.TypeOf(v).Elem().String(),
			Err:      err,
		}
	}

	return nil
}
