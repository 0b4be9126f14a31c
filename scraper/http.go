package scraper

import (
	"context"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"

	"hotel-deals/utils"
)

// HTTPFetcher performs plain HTTP GETs with browser-like headers.
type HTTPFetcher struct {
	client         *resty.Client
	acceptLanguage string
	logger         *utils.Logger
}

// NewHTTPFetcher builds a resty client with the cloudflare bypass transport.
// Resty's own retry is left at zero: every fetch is a single attempt.
func NewHTTPFetcher(timeout time.Duration, acceptLanguage string, logger *utils.Logger) *HTTPFetcher {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(0)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	return &HTTPFetcher{
		client:         client,
		acceptLanguage: acceptLanguage,
		logger:         logger,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.logger.Debug("[fetch] GET %s", url)

	res, err := f.client.R().
		SetContext(ctx).
		SetHeaders(BrowserHeaders(f.acceptLanguage)).
		Get(url)
	if err != nil {
		return nil, utils.NetworkError("GET %s: %w", url, err)
	}
	if !res.IsSuccess() {
		return nil, utils.NetworkError("GET %s: unexpected status %s", url, res.Status())
	}

	f.logger.Debug("[fetch] %s returned %d bytes in %v", url, len(res.Body()), res.Time())
	return res.Body(), nil
}
