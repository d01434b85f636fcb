package requests

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"painel/src/utils"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
)

// ExternalAPIService performs GET requests against public upstream APIs,
// retrying transport failures and 5xx answers with a constant backoff.
type ExternalAPIService struct {
	client   *http.Client
	attempts uint64
	backoff  time.Duration
	headers  map[string]string
}

type Option func(*ExternalAPIService)

func WithTimeout(timeout time.Duration) Option {
	return func(s *ExternalAPIService) {
		if timeout > 0 {
			s.client.Timeout = timeout
		}
	}
}

// WithRetry sets the total number of attempts and the wait between them.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(s *ExternalAPIService) {
		if attempts > 0 {
			s.attempts = uint64(attempts)
		}
		if backoff > 0 {
			s.backoff = backoff
		}
	}
}

func WithHeader(key, value string) Option {
	return func(s *ExternalAPIService) {
		s.headers[key] = value
	}
}

func NewExternalAPIService(opts ...Option) *ExternalAPIService {
	s := &ExternalAPIService{
		client:   &http.Client{Timeout: 10 * time.Second},
		attempts: 3,
		backoff:  2 * time.Second,
		headers: map[string]string{
			"User-Agent": utils.BrowserUserAgent,
			"Accept":     "application/json",
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the body of a successful response. Non-2xx answers that are not
// retried come back as *utils.HTTPError with the upstream status code.
func (s *ExternalAPIService) Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}
	logger := utils.LoggerFromContext(ctx)

	var body []byte
	backoff := retry.WithMaxRetries(s.attempts-1, retry.NewConstant(s.backoff))
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		b, err := s.do(ctx, endpoint)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"endpoint": endpoint,
				"attempt":  attempt,
			}).WithError(err).Warn("upstream request failed")
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (s *ExternalAPIService) do(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	for key, value := range s.headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, retry.RetryableError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, retry.RetryableError(err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, retry.RetryableError(utils.NewHTTPError(resp.StatusCode, fmt.Sprintf("upstream %s answered %s", req.URL.Host, resp.Status)))
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, utils.NewHTTPError(resp.StatusCode, fmt.Sprintf("upstream %s answered %s", req.URL.Host, resp.Status))
	}
	return body, nil
}
