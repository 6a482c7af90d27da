package prover

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

// call performs a single JSON-RPC round trip against the configured endpoint.
// The per-call timeout from the configuration bounds the whole round trip.
func (c *Client) call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, NewError(ErrTransport, "marshal request").WithCause(err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, NewError(ErrTransport, "prepare request").WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	c.log.Debug().
		Str("method", method).
		Int("num_params", len(params)).
		Msg("sending proof API request")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, Errorf(ErrTransport, "post %s", method).WithCause(err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		c.log.Error().
			Int("status_code", res.StatusCode).
			Str("method", method).
			Str("response", string(msg)).
			Msg("proof API returned error status")
		return nil, Errorf(ErrTransport, "proof API returned %s: %s", res.Status, string(msg))
	}

	var envelope rpcResponse
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, NewError(ErrTransport, "malformed response body").WithCause(err)
	}

	if len(envelope.Error) > 0 && !bytes.Equal(envelope.Error, []byte("null")) {
		// Surface the serialized error value verbatim.
		return nil, Errorf(ErrRemote, "proof API error: %s", envelope.Error)
	}

	return envelope.Result, nil
}
