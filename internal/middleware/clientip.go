package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

const clientIPContextKey contextKey = "client_ip"

// ClientIPResolver decides which address a request comes from. Forwarding
// headers are only believed when the direct peer is a trusted proxy.
type ClientIPResolver struct {
	trusted []netip.Prefix
}

// NewClientIPResolver accepts bare addresses and CIDR ranges. Entries that do
// not parse are skipped; config validation rejects them before this point.
func NewClientIPResolver(trustedProxies []string) *ClientIPResolver {
	resolver := &ClientIPResolver{}
	for _, entry := range trustedProxies {
		prefix, err := ParseProxyEntry(entry)
		if err != nil {
			slog.Warn("ignoring trusted proxy entry", "entry", entry, "error", err)
			continue
		}
		resolver.trusted = append(resolver.trusted, prefix)
	}
	return resolver
}

// ParseProxyEntry turns "10.0.0.1" or "10.0.0.0/8" into a prefix.
func ParseProxyEntry(entry string) (netip.Prefix, error) {
	entry = strings.TrimSpace(entry)
	if strings.Contains(entry, "/") {
		prefix, err := netip.ParsePrefix(entry)
		if err != nil {
			return netip.Prefix{}, err
		}
		return prefix.Masked(), nil
	}

	addr, err := netip.ParseAddr(entry)
	if err != nil {
		return netip.Prefix{}, err
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

func (c *ClientIPResolver) isTrusted(raw string) bool {
	addr, err := netip.ParseAddr(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	for _, prefix := range c.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// Resolve returns the peer address, or when the peer is a trusted proxy, the
// right-most X-Forwarded-For hop that is not itself trusted.
func (c *ClientIPResolver) Resolve(r *http.Request) string {
	peer := peerIP(r)
	if c == nil || len(c.trusted) == 0 || !c.isTrusted(peer) {
		return peer
	}

	forwarded := r.Header.Values("X-Forwarded-For")
	if len(forwarded) == 0 {
		return peer
	}

	hops := strings.Split(strings.Join(forwarded, ","), ",")
	client := peer
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if _, err := netip.ParseAddr(hop); err != nil {
			break
		}
		client = hop
		if !c.isTrusted(hop) {
			break
		}
	}

	return client
}

// Handler stores the resolved address for the rate limiter, the request log
// and the audit trail.
func (c *ClientIPResolver) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), clientIPContextKey, c.Resolve(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIP is the address resolved by ClientIPResolver.Handler, falling back
// to the direct peer when the resolver did not run.
func ClientIP(r *http.Request) string {
	if ip, ok := r.Context().Value(clientIPContextKey).(string); ok && ip != "" {
		return ip
	}
	return peerIP(r)
}

func peerIP(r *http.Request) string {
	remote := strings.TrimSpace(r.RemoteAddr)
	if remote == "" {
		return "unknown"
	}

	host, _, err := net.SplitHostPort(remote)
	if err != nil || host == "" {
		return remote
	}
	return host
}
