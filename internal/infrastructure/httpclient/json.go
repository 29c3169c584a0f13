// Package httpclient holds the shared fasthttp JSON call helpers used by the
// outbound API clients.
package httpclient

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"

	"portfolio_aggregator/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// GetJSON performs a GET request and decodes the JSON body into out. The
// context deadline wins over the fallback timeout. Transport failures,
// non-200 statuses, and undecodable bodies all come back as NetworkError.
func GetJSON(ctx context.Context, client *fasthttp.Client, url string, headers map[string]string, timeout time.Duration, out any) error {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return do(ctx, client, req, url, timeout, out)
}

// PostJSON performs a POST request with a JSON body and decodes the JSON
// response into out. Failure semantics match GetJSON.
func PostJSON(ctx context.Context, client *fasthttp.Client, url string, body any, timeout time.Duration, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request body for %s: %w", url, err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(payload)

	return do(ctx, client, req, url, timeout, out)
}

func do(ctx context.Context, client *fasthttp.Client, req *fasthttp.Request, url string, timeout time.Duration, out any) error {
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := client.DoDeadline(req, resp, deadline); err != nil {
			return entity.NewNetworkError(url, err)
		}
	} else {
		if err := client.DoTimeout(req, resp, timeout); err != nil {
			return entity.NewNetworkError(url, err)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return entity.NewNetworkError(url, fmt.Errorf("unexpected status %d: %s", resp.StatusCode(), resp.Body()))
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return entity.NewNetworkError(url, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
