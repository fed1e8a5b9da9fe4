// Package source describes where adapter data came from and why a live read
// was not used.
package source

import (
	"errors"

	"github.com/rotisserie/eris"
)

// Origin identifies the provenance of a result.
type Origin string

const (
	OriginLive     Origin = "live"
	OriginFallback Origin = "fallback"
)

var (
	// ErrUnconfigured means the adapter has no connection settings and made
	// no network call.
	ErrUnconfigured = errors.New("source not configured")
	// ErrNotFound means a by-id lookup matched nothing, live or fallback.
	ErrNotFound = errors.New("not found")
	// ErrEmpty means a configured call succeeded but returned nothing where a
	// record was required.
	ErrEmpty = errors.New("empty result")
)

// FailureKind classifies why a fallback was taken.
type FailureKind string

const (
	KindNone         FailureKind = ""
	KindUnconfigured FailureKind = "unconfigured"
	KindTransport    FailureKind = "transport"
	KindStatus       FailureKind = "status"
	KindDecode       FailureKind = "decode"
	KindUpstream     FailureKind = "upstream"
	KindEmpty        FailureKind = "empty"
)

// StatusCoder is implemented by client errors that carry an HTTP status.
type StatusCoder interface {
	StatusCode() int
}

// UpstreamError is implemented by client errors reporting application-level
// failures in an otherwise successful response (e.g. GraphQL errors).
type UpstreamError interface {
	Upstream() bool
}

// DecodeError is implemented by client errors raised while parsing a body.
type DecodeError interface {
	Decode() bool
}

// Classify maps an adapter error to a FailureKind.
func Classify(err error) FailureKind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, ErrUnconfigured) {
		return KindUnconfigured
	}
	if errors.Is(err, ErrEmpty) || errors.Is(err, ErrNotFound) {
		return KindEmpty
	}

	var sc StatusCoder
	if errors.As(err, &sc) {
		return KindStatus
	}
	var ue UpstreamError
	if errors.As(err, &ue) && ue.Upstream() {
		return KindUpstream
	}
	var de DecodeError
	if errors.As(err, &de) && de.Decode() {
		return KindDecode
	}

	// Network errors, timeouts and cancellations.
	return KindTransport
}

// Result carries a value plus its provenance. A fallback result always has a
// non-nil Reason.
type Result[T any] struct {
	Value  T
	Origin Origin
	Reason error
}

// Live wraps a value read from the remote source.
func Live[T any](v T) Result[T] {
	return Result[T]{Value: v, Origin: OriginLive}
}

// Fallback wraps a value served from the static dataset.
func Fallback[T any](v T, reason error) Result[T] {
	if reason == nil {
		reason = eris.New("fallback without reason")
	}
	return Result[T]{Value: v, Origin: OriginFallback, Reason: reason}
}

// IsLive reports whether the value came from the remote source.
func (r Result[T]) IsLive() bool {
	return r.Origin == OriginLive
}

// Kind classifies the fallback reason. Live results report KindNone.
func (r Result[T]) Kind() FailureKind {
	if r.IsLive() {
		return KindNone
	}
	return Classify(r.Reason)
}

// Map converts the value while keeping provenance.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	return Result[U]{Value: fn(r.Value), Origin: r.Origin, Reason: r.Reason}
}

// Merge combines two origins. Any fallback makes the combination a fallback.
func Merge(a, b Origin) Origin {
	if a == OriginFallback || b == OriginFallback {
		return OriginFallback
	}
	return OriginLive
}
