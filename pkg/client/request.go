package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("not found")

func (c *Client) request(ctx context.Context, method string, path string, query url.Values, result io.Writer) error {
	url := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		url.RawQuery = query.Encode()
	}

	slog.DebugContext(ctx, "new client request",
		slog.String("method", method),
		slog.String("path", url.Path),
		slog.String("host", url.Host),
	)

	req, err := http.NewRequestWithContext(ctx, method, url.String(), nil)
	if err != nil {
		return errors.WithStack(err)
	}

	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}

	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return errors.WithStack(ErrNotFound)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusBadRequest {
		return errors.Errorf("unexpected response code %d (%s)", res.StatusCode, res.Status)
	}

	if _, err := io.Copy(result, res.Body); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (c *Client) jsonRequest(ctx context.Context, method string, path string, query url.Values, result any) error {
	var buff bytes.Buffer

	if err := c.request(ctx, method, path, query, &buff); err != nil {
		return errors.WithStack(err)
	}

	if err := json.Unmarshal(buff.Bytes(), result); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
