package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/m04kA/PetCare-BookingService/internal/api/handlers"
)

const (
	msgTooManyRequests = "слишком много запросов, попробуйте позже"

	headerForwardedFor = "X-Forwarded-For"
	defaultIdleTTL     = 10 * time.Minute
)

// IPRateLimiter хранит отдельный limiter на каждый IP
// Limiter, к которому не обращались idleTTL, удаляется из кеша.
// X-Forwarded-For учитывается только для запросов от доверенных прокси
type IPRateLimiter struct {
	limiters *cache.Cache
	mu       sync.Mutex
	r        rate.Limit
	b        int
	trusted  []*net.IPNet
}

// NewIPRateLimiter создает limiter: r запросов в секунду, всплеск до b
// trustedProxies - IP или CIDR прокси, которым можно верить в X-Forwarded-For.
// idleTTL <= 0 означает значение по умолчанию
func NewIPRateLimiter(r rate.Limit, b int, idleTTL time.Duration, trustedProxies []string) (*IPRateLimiter, error) {
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}

	trusted, err := ParseTrustedProxies(trustedProxies)
	if err != nil {
		return nil, err
	}

	return &IPRateLimiter{
		limiters: cache.New(idleTTL, idleTTL),
		r:        r,
		b:        b,
		trusted:  trusted,
	}, nil
}

// ParseTrustedProxies разбирает список IP и CIDR; одиночный IP становится сетью из одного адреса
func ParseTrustedProxies(proxies []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(proxies))
	for _, raw := range proxies {
		raw = strings.TrimSpace(raw)
		if strings.Contains(raw, "/") {
			_, ipNet, err := net.ParseCIDR(raw)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", raw, err)
			}
			nets = append(nets, ipNet)
			continue
		}

		ip := net.ParseIP(raw)
		if ip == nil {
			return nil, fmt.Errorf("trusted proxy %q: not an IP or CIDR", raw)
		}
		bits := 8 * net.IPv4len
		if ip.To4() == nil {
			bits = 8 * net.IPv6len
		}
		nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
	}
	return nets, nil
}

// GetLimiter возвращает limiter для IP, создавая его при первом обращении
// Каждое обращение продлевает жизнь limiter'а в кеше
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	limiter, ok := i.limiters.Get(ip)
	if !ok {
		limiter = rate.NewLimiter(i.r, i.b)
	}
	i.limiters.SetDefault(ip, limiter)
	return limiter.(*rate.Limiter)
}

// Size количество IP, для которых сейчас хранится limiter
func (i *IPRateLimiter) Size() int {
	return i.limiters.ItemCount()
}

// RateLimit ограничивает частоту запросов с одного IP
func RateLimit(limiter *IPRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.GetLimiter(limiter.ClientIP(r)).Allow() {
				handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP определяет адрес клиента
// Без доверенных прокси это всегда RemoteAddr. Если запрос пришел от доверенного прокси,
// X-Forwarded-For читается справа налево до первого адреса не из доверенных сетей
func (i *IPRateLimiter) ClientIP(r *http.Request) string {
	remote := remoteHost(r)
	if !i.isTrusted(remote) {
		return remote
	}

	forwarded := r.Header.Values(headerForwardedFor)
	if len(forwarded) == 0 {
		return remote
	}
	hops := strings.Split(strings.Join(forwarded, ","), ",")

	client := remote
	for idx := len(hops) - 1; idx >= 0; idx-- {
		hop := strings.TrimSpace(hops[idx])
		if net.ParseIP(hop) == nil {
			break
		}
		client = hop
		if !i.isTrusted(hop) {
			break
		}
	}
	return client
}

func (i *IPRateLimiter) isTrusted(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, n := range i.trusted {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
