package clientip

import (
	"context"
	"net"
	"net/http"
	"net/textproto"
	"strings"
)

// Common proxy headers, in the order they are usually trusted.
const (
	HeaderCFConnectingIP = "CF-Connecting-IP"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderRealIP         = "X-Real-IP"
)

// Resolver determines the network origin of a request. Headers are consulted
// only when listed as trusted; otherwise the TCP peer address is used, so a
// client cannot pick its own throttle key.
type Resolver struct {
	trusted []string
}

// NewResolver trusts the given headers in priority order. Blank names are skipped.
func NewResolver(trustedHeaders ...string) *Resolver {
	r := &Resolver{}
	for _, h := range trustedHeaders {
		if h = strings.TrimSpace(h); h != "" {
			r.trusted = append(r.trusted, textproto.CanonicalMIMEHeaderKey(h))
		}
	}
	return r
}

// IP returns the normalised client address, or "" when none is valid.
func (res *Resolver) IP(r *http.Request) string {
	for _, h := range res.trusted {
		value := r.Header.Get(h)
		if value == "" {
			continue
		}
		if h == HeaderForwardedFor {
			// The left-most valid entry is the original client.
			for ip := range strings.SplitSeq(value, ",") {
				if parsed := parseIP(ip); parsed != "" {
					return parsed
				}
			}
			continue
		}
		if parsed := parseIP(value); parsed != "" {
			return parsed
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// Middleware stores the resolved address in the request context.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), res.IP(r))))
	})
}

type contextKey struct{}

func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
