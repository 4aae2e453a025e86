package notifier

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/amishk599/jobfeed/internal/model"
)

// postJSON POSTs body to url and turns any non-2xx response into a
// *model.HTTPError carrying the first bytes of the response body.
func postJSON(ctx context.Context, client *http.Client, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	httpErr := &model.HTTPError{
		StatusCode: resp.StatusCode,
		RetryAfter: model.ParseRetryAfter(resp.Header.Get("Retry-After")),
	}
	if len(snippet) > 0 {
		httpErr.Err = fmt.Errorf("%s", bytes.TrimSpace(snippet))
	}
	return httpErr
}
