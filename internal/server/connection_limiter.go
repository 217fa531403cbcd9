package server

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// LimitReason describes why a WebSocket connection was rejected.
type LimitReason string

const (
	LimitReasonGlobal LimitReason = "global_limit"
	LimitReasonPerIP  LimitReason = "per_ip_limit"
	LimitReasonRate   LimitReason = "rate_limit"
)

const limiterCleanupInterval = 5 * time.Minute

// ConnectionLimits guards the /ws endpoint: a global concurrent-connection
// cap, a per-IP concurrent cap, and a per-IP token bucket on new dials.
type ConnectionLimits struct {
	globalCurrent atomic.Int64
	globalMax     int64

	mu        sync.Mutex
	perIP     map[string]int
	perIPMax  int
	buckets   map[string]*ipBucket
	rate      rate.Limit
	burst     int
	cleanupAt time.Time
}

type ipBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewConnectionLimits(globalMax int64, perIPMax int, connectionsPerSecond float64, burst int) *ConnectionLimits {
	return &ConnectionLimits{
		globalMax: globalMax,
		perIP:     make(map[string]int),
		perIPMax:  perIPMax,
		buckets:   make(map[string]*ipBucket),
		rate:      rate.Limit(connectionsPerSecond),
		burst:     burst,
		cleanupAt: time.Now().Add(limiterCleanupInterval),
	}
}

// Acquire takes a slot for the given IP. On rejection it returns the reason
// and leaves no counters to roll back.
func (l *ConnectionLimits) Acquire(ip string) (bool, LimitReason) {
	if !l.allowRate(ip) {
		return false, LimitReasonRate
	}

	if !l.acquireGlobal() {
		return false, LimitReasonGlobal
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.perIP[ip] >= l.perIPMax {
		l.globalCurrent.Add(-1)
		return false, LimitReasonPerIP
	}
	l.perIP[ip]++

	return true, ""
}

// Release returns the slots taken by Acquire.
func (l *ConnectionLimits) Release(ip string) {
	l.mu.Lock()
	if count := l.perIP[ip]; count > 1 {
		l.perIP[ip] = count - 1
	} else if count == 1 {
		delete(l.perIP, ip)
	}
	l.mu.Unlock()

	l.globalCurrent.Add(-1)
}

// Current returns the number of connections counted against the global cap.
func (l *ConnectionLimits) Current() int64 {
	return l.globalCurrent.Load()
}

func (l *ConnectionLimits) acquireGlobal() bool {
	for {
		current := l.globalCurrent.Load()
		if current >= l.globalMax {
			return false
		}
		if l.globalCurrent.CompareAndSwap(current, current+1) {
			return true
		}
	}
}

func (l *ConnectionLimits) allowRate(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.After(l.cleanupAt) {
		cutoff := now.Add(-2 * limiterCleanupInterval)
		for addr, bucket := range l.buckets {
			if bucket.lastSeen.Before(cutoff) {
				delete(l.buckets, addr)
			}
		}
		l.cleanupAt = now.Add(limiterCleanupInterval)
	}

	bucket, ok := l.buckets[ip]
	if !ok {
		bucket = &ipBucket{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.buckets[ip] = bucket
	}
	bucket.lastSeen = now

	return bucket.limiter.Allow()
}
