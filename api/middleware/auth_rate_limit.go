package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MichIoan/DP-API-2024-sub000/api/responses"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/config"
	pkgerrors "github.com/MichIoan/DP-API-2024-sub000/pkg/errors"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/logger"
)

// Credential bodies are tiny; anything past this is not inspected for an email.
const maxAuthBodyBytes = 64 << 10

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// AuthRateLimitPolicy throttles one credential endpoint by client address
// and by the hashed email in the request body.
type AuthRateLimitPolicy struct {
	endpoint   string
	window     time.Duration
	ipLimit    int64
	emailLimit int64
}

// LoginRateLimitPolicy derives the login policy from configuration.
func LoginRateLimitPolicy(cfg config.AuthRateLimitConfig) AuthRateLimitPolicy {
	return NewAuthRateLimitPolicy("login", cfg.LoginWindow, cfg.LoginIPLimit, cfg.LoginEmailLimit)
}

// RegisterRateLimitPolicy derives the registration policy from configuration.
func RegisterRateLimitPolicy(cfg config.AuthRateLimitConfig) AuthRateLimitPolicy {
	return NewAuthRateLimitPolicy("register", cfg.RegisterWindow, cfg.RegisterIPLimit, cfg.RegisterEmailLimit)
}

// NewAuthRateLimitPolicy builds a policy. A zero limit disables that scope.
func NewAuthRateLimitPolicy(endpoint string, window time.Duration, ipLimit, emailLimit int) AuthRateLimitPolicy {
	endpoint = strings.ToLower(strings.TrimSpace(endpoint))
	if endpoint == "" {
		endpoint = "auth"
	}
	return AuthRateLimitPolicy{
		endpoint:   endpoint,
		window:     window,
		ipLimit:    int64(ipLimit),
		emailLimit: int64(emailLimit),
	}
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.emailLimit > 0)
}

// rateCheck is one counter consulted for a request.
type rateCheck struct {
	scope string
	key   string
	limit int64
	field string
	value string
}

func (p AuthRateLimitPolicy) checks(ip, emailHash string) []rateCheck {
	var out []rateCheck
	if p.ipLimit > 0 && ip != "" {
		out = append(out, rateCheck{
			scope: "ip",
			key:   fmt.Sprintf("%s:ip:%s", p.endpoint, ip),
			limit: p.ipLimit,
			field: "ip",
			value: ip,
		})
	}
	if p.emailLimit > 0 && emailHash != "" {
		out = append(out, rateCheck{
			scope: "email",
			key:   fmt.Sprintf("%s:email:%s", p.endpoint, emailHash),
			limit: p.emailLimit,
			field: "email_hash",
			value: emailHash,
		})
	}
	return out
}

// AuthRateLimit rejects credential requests over the policy's per-IP or
// per-email budget with 429 and a Retry-After of one window. A store failure
// yields 503 rather than letting the request through.
func AuthRateLimit(policy AuthRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var emailHash string
			if policy.emailLimit > 0 {
				body, err := io.ReadAll(io.LimitReader(r.Body, maxAuthBodyBytes))
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable request body"))
					return
				}
				r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), r.Body))
				if email := normalizeEmail(extractEmail(body)); email != "" {
					emailHash = hashValue(email)
				}
			}

			for _, check := range policy.checks(clientIP(r), emailHash) {
				allowed, count, err := store.FixedWindowAllow(ctx, check.key, check.limit, policy.window)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiter unavailable"))
					return
				}
				if !allowed {
					rejectRateLimited(ctx, logg, w, policy, check, count)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rejectRateLimited(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, policy AuthRateLimitPolicy, check rateCheck, count int64) {
	if logg != nil {
		logg.Warn(logg.WithFields(ctx, map[string]any{
			"endpoint":       policy.endpoint,
			"scope":          check.scope,
			check.field:      check.value,
			"attempts":       count,
			"limit":          check.limit,
			"window_seconds": int(policy.window.Seconds()),
		}), "auth rate limit exceeded")
	}
	w.Header().Set("Retry-After", strconv.Itoa(int(policy.window.Round(time.Second).Seconds())))
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, try again later"))
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// socket peer.
func clientIP(r *http.Request) string {
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func extractEmail(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return body.Email
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
