package gotrue

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/esports-hub/internal/domain/store"
	"github.com/riskibarqy/esports-hub/internal/domain/user"
	basecache "github.com/riskibarqy/esports-hub/internal/platform/cache"
	"github.com/riskibarqy/esports-hub/internal/platform/logging"
	"github.com/riskibarqy/esports-hub/internal/platform/resilience"
	"github.com/riskibarqy/esports-hub/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const maxResponseBytes = 1 << 20

var errIdentityTransient = crerr.New("identity provider transient failure")

type Config struct {
	BaseURL        string
	AnonKey        string
	Timeout        time.Duration
	PrincipalTTL   time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to a GoTrue-compatible auth server under <BaseURL>/auth/v1.
type Client struct {
	httpClient *http.Client
	baseURL    string
	anonKey    string
	breaker    *resilience.CircuitBreaker
	principals *basecache.Store
	logger     *logging.Logger
}

func NewClient(httpClient *http.Client, cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	ttl := cfg.PrincipalTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	client := &Client{
		httpClient: httpClient,
		baseURL:    buildURL(cfg.BaseURL, "/auth/v1"),
		anonKey:    strings.TrimSpace(cfg.AnonKey),
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		principals: basecache.NewStore(ttl, 10_000),
		logger:     logger,
	}
	client.breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("identity circuit breaker state changed", "from", from, "to", to)
	})
	return client
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (user.Session, error) {
	var decoded sessionResponse
	err := c.call(ctx, request{
		method:     http.MethodPost,
		path:       "/token",
		query:      url.Values{"grant_type": {"password"}},
		body:       credentialsRequest{Email: email, Password: password},
		rejectKind: usecase.ErrUnauthorized,
	}, &decoded)
	if err != nil {
		return user.Session{}, err
	}
	return decoded.toSession()
}

// SignUp returns ConfirmationRequired when the server answers with a bare user
// instead of a session.
func (c *Client) SignUp(ctx context.Context, email, password, redirectTo string) (user.SignUpResult, error) {
	var decoded sessionResponse
	err := c.call(ctx, request{
		method:     http.MethodPost,
		path:       "/signup",
		query:      redirectQuery(redirectTo),
		body:       credentialsRequest{Email: email, Password: password},
		rejectKind: usecase.ErrInvalidInput,
	}, &decoded)
	if err != nil {
		return user.SignUpResult{}, err
	}

	if decoded.AccessToken != "" {
		return user.SignUpResult{User: decoded.User.toPrincipal()}, nil
	}
	bare := decoded.userResponse
	if bare.ID == "" {
		bare = decoded.User
	}
	if bare.ID == "" {
		return user.SignUpResult{}, crerr.New("invalid signup response: user id is empty")
	}
	return user.SignUpResult{User: bare.toPrincipal(), ConfirmationRequired: true}, nil
}

func (c *Client) SendMagicLink(ctx context.Context, email, redirectTo string) error {
	return c.call(ctx, request{
		method:     http.MethodPost,
		path:       "/otp",
		query:      redirectQuery(redirectTo),
		body:       otpRequest{Email: email, CreateUser: true},
		rejectKind: usecase.ErrInvalidInput,
	}, nil)
}

func (c *Client) AuthorizeURL(provider, redirectTo string) string {
	query := redirectQuery(redirectTo)
	if query == nil {
		query = url.Values{}
	}
	query.Set("provider", provider)
	return c.baseURL + "/authorize?" + query.Encode()
}

func (c *Client) ExchangeCode(ctx context.Context, authCode, codeVerifier string) (user.Session, error) {
	var decoded sessionResponse
	err := c.call(ctx, request{
		method:     http.MethodPost,
		path:       "/token",
		query:      url.Values{"grant_type": {"pkce"}},
		body:       pkceRequest{AuthCode: authCode, CodeVerifier: codeVerifier},
		rejectKind: usecase.ErrUnauthorized,
	}, &decoded)
	if err != nil {
		return user.Session{}, err
	}
	return decoded.toSession()
}

// VerifyAccessToken resolves a token through /user. Successful lookups are
// cached by token hash for the configured TTL.
func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	return basecache.Load(ctx, c.principals, "principal:"+hashToken(token), func(ctx context.Context) (user.Principal, error) {
		var decoded userResponse
		err := c.call(ctx, request{
			method:     http.MethodGet,
			path:       "/user",
			bearer:     token,
			rejectKind: usecase.ErrUnauthorized,
		}, &decoded)
		if err != nil {
			return user.Principal{}, err
		}
		if strings.TrimSpace(decoded.ID) == "" {
			return user.Principal{}, crerr.New("invalid user response: id is empty")
		}
		return decoded.toPrincipal(), nil
	})
}

type request struct {
	method     string
	path       string
	query      url.Values
	body       any
	bearer     string
	rejectKind error
}

func (c *Client) call(ctx context.Context, req request, out any) error {
	err := c.breaker.Execute(func() error {
		return c.roundTrip(ctx, req, out)
	}, isCircuitFailure)
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "identity circuit breaker rejected request", "path", req.path, "state", c.breaker.State())
		return fmt.Errorf("%w: identity provider is temporarily unavailable: %w", usecase.ErrDependencyUnavailable, err)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, req request, out any) error {
	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		encoded, err := sonic.Marshal(req.body)
		if err != nil {
			return crerr.Wrap(err, "marshal identity request")
		}
		body = strings.NewReader(string(encoded))
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return crerr.Wrap(err, "create identity request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.anonKey != "" {
		httpReq.Header.Set("apikey", c.anonKey)
	}
	if req.bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.bearer)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %w: request %s: %v", usecase.ErrDependencyUnavailable, errIdentityTransient, req.path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxResponseBytes)); err != nil {
		return crerr.Wrapf(err, "read identity response %s", req.path)
	}

	if resp.StatusCode/100 != 2 {
		return c.statusError(ctx, req, resp.StatusCode, buf.String())
	}
	if out == nil || buf.Len() == 0 {
		return nil
	}
	if err := sonic.UnmarshalString(buf.String(), out); err != nil {
		return crerr.Wrapf(err, "unmarshal identity response %s", req.path)
	}
	return nil
}

func (c *Client) statusError(ctx context.Context, req request, statusCode int, raw string) error {
	message := providerMessage(raw)
	if isRetryableStatus(statusCode) {
		c.logger.WarnContext(ctx, "identity provider unavailable", "path", req.path, "status_code", statusCode)
		return fmt.Errorf("%w: %w: %s status=%d", usecase.ErrDependencyUnavailable, errIdentityTransient, req.path, statusCode)
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}

	kind := req.rejectKind
	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		kind = usecase.ErrUnauthorized
	}
	return &store.BackendError{Kind: kind, Code: fmt.Sprintf("%d", statusCode), Message: message}
}
