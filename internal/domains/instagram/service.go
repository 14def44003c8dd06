package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"school-site-backend/internal/config"
	"school-site-backend/pkg/cache"

	"github.com/rs/zerolog/log"
)

// ErrNotConfigured means no Instagram access token is present. The
// handler maps it to a 500 so a misconfigured deployment is loud
// rather than silently empty.
var ErrNotConfigured = errors.New("instagram integration is not configured")

// UpstreamError carries the Graph API failure detail for the 502 path.
type UpstreamError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("instagram upstream returned %d: %s", e.StatusCode, e.Detail)
}

// feedFields is the field set requested from the Graph API.
const feedFields = "id,caption,media_type,media_url,permalink,thumbnail_url,timestamp"

const cacheKey = "instagram:feed"

// slot is the cached verbatim Graph API payload.
type slot struct {
	Data     json.RawMessage `json:"data"`
	CachedAt time.Time       `json:"cachedAt"`
}

// Feed is one proxied response.
type Feed struct {
	Payload   json.RawMessage
	CachedAt  time.Time
	FromCache bool
}

// Service proxies the Instagram Graph API feed with a single cached
// slot, so page loads never fan out to Instagram more than once per
// TTL window.
type Service struct {
	cfg        config.InstagramConfig
	httpClient *http.Client
	cache      cache.Cache
	now        func() time.Time
}

func NewService(cfg config.InstagramConfig, c cache.Cache) *Service {
	return &Service{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      c,
		now:        time.Now,
	}
}

// Feed returns the latest media payload, serving the cached slot when
// it is still inside the TTL. The payload is passed through verbatim;
// this service never reshapes what Instagram returned.
func (s *Service) Feed(ctx context.Context) (*Feed, error) {
	if s.cfg.AccessToken == "" {
		return nil, ErrNotConfigured
	}

	var cached slot
	hit, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		log.Warn().Err(err).Msg("instagram cache read failed, fetching upstream")
	}
	if hit {
		return &Feed{Payload: cached.Data, CachedAt: cached.CachedAt, FromCache: true}, nil
	}

	payload, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	fresh := slot{Data: payload, CachedAt: s.now().UTC()}
	if err := s.cache.Set(ctx, cacheKey, fresh, s.cfg.CacheTTL); err != nil {
		log.Warn().Err(err).Msg("instagram cache write failed")
	}

	return &Feed{Payload: fresh.Data, CachedAt: fresh.CachedAt}, nil
}

func (s *Service) fetch(ctx context.Context) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("fields", feedFields)
	q.Set("limit", strconv.Itoa(s.cfg.FeedLimit))
	q.Set("access_token", s.cfg.AccessToken)

	reqURL := s.cfg.APIURL + "/me/media?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{StatusCode: 0, Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Detail: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Detail: string(body)}
	}

	return json.RawMessage(body), nil
}
