package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	domainErrors "github.com/polkiloo/marketpanel/internal/domain/errors"
	"github.com/polkiloo/marketpanel/internal/domain/model"
)

// Client combines the pipeline and the classifier with JSON encoding.
// Every error it returns is an *Error.
type Client struct {
	pipeline   *Pipeline
	classifier *Classifier
}

func NewClient(pipeline *Pipeline, classifier *Classifier) *Client {
	return &Client{pipeline: pipeline, classifier: classifier}
}

// Do sends in as the JSON body and decodes the entity into out.
// A "data" wrapper around the entity is unwrapped. nil in or out are skipped.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	resp, err := c.send(ctx, method, path, query, in)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := decodeEntity(resp.Body, out); err != nil {
		return c.classifier.Classify(ctx, fmt.Errorf("%w: %w", domainErrors.ErrInvalidResponse, err))
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, in any) (*Response, error) {
	var body []byte
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return nil, Reject(KindUnknown, MsgUnexpected, fmt.Errorf("encode request: %w", err))
		}
		body = encoded
	}

	resp, err := c.pipeline.Send(ctx, Request{Method: method, Path: path, Query: query, Body: body})
	if err != nil {
		return nil, c.classifier.Classify(ctx, err)
	}
	return resp, nil
}

func decodeEntity(body []byte, out any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}
	if body[0] == '{' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
			return json.Unmarshal(envelope.Data, out)
		}
	}
	return json.Unmarshal(body, out)
}

type listEnvelope struct {
	Success    *bool                 `json:"success"`
	Data       json.RawMessage       `json:"data"`
	Pagination *model.PaginationInfo `json:"pagination"`
}

// List fetches one page of a collection and checks the list envelope:
// success must not be false and data must be an array.
func List[T any](ctx context.Context, c *Client, path string, params model.PageParams, extra url.Values) (model.Page[T], error) {
	params = params.Normalize()
	query := params.Query()
	for k, vs := range extra {
		for _, v := range vs {
			if v != "" {
				query.Add(k, v)
			}
		}
	}

	resp, err := c.send(ctx, "GET", path, query, nil)
	if err != nil {
		return model.Page[T]{}, err
	}

	items, total, err := decodeList[T](resp.Body)
	if err != nil {
		return model.Page[T]{}, c.classifier.Classify(ctx, fmt.Errorf("%w: %s: %w", domainErrors.ErrInvalidResponse, path, err))
	}

	return model.Page[T]{
		Data:   items,
		Cursor: model.Cursor{Page: params.Page, Limit: params.Limit, Total: total},
	}, nil
}

func decodeList[T any](body []byte) ([]T, int, error) {
	var env listEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, 0, err
	}
	if env.Success != nil && !*env.Success {
		return nil, 0, fmt.Errorf("success is false")
	}
	raw := bytes.TrimSpace(env.Data)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, 0, fmt.Errorf("data is not an array")
	}

	items := []T{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, 0, err
	}

	total := len(items)
	if env.Pagination != nil {
		total = env.Pagination.Total
	}
	return items, total, nil
}
