package apiclient

import (
	"bytes"
	"context"
	"net/http"
)

// pageEnvelope covers list answers wrapped in an object (Spring pages
// use content, others items or data).
type pageEnvelope[T any] struct {
	Content []T `json:"content"`
	Items   []T `json:"items"`
	Data    []T `json:"data"`
}

// getList fetches a collection that may come back as a bare array or a
// wrapped page.
func getList[T any](ctx context.Context, c *Client, cl call) ([]T, error) {
	raw, err := c.send(ctx, cl, nil, true)
	if err != nil {
		return nil, err
	}
	return decodeList[T](cl, raw)
}

func decodeList[T any](cl call, raw []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	out := []T{}
	if len(trimmed) == 0 {
		return out, nil
	}
	if trimmed[0] == '[' {
		if err := decodeInto(cl, trimmed, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	var env pageEnvelope[T]
	if err := decodeInto(cl, trimmed, &env); err != nil {
		return nil, err
	}
	switch {
	case env.Content != nil:
		return env.Content, nil
	case env.Items != nil:
		return env.Items, nil
	case env.Data != nil:
		return env.Data, nil
	}
	return out, nil
}

// getOne is a GET decoded into a single value.
func getOne[T any](ctx context.Context, c *Client, cl call) (T, error) {
	var out T
	cl.method = http.MethodGet
	err := c.do(ctx, cl, &out)
	return out, err
}
