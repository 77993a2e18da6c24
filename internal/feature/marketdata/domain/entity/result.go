package entity

// Origin tells which path produced a Result.
type Origin string

const (
	// OriginSynthetic marks data produced by the synthetic generator in mock mode.
	OriginSynthetic Origin = "synthetic"
	// OriginRemote marks data returned by the remote quote provider.
	OriginRemote Origin = "remote"
	// OriginFallback marks synthetic data substituted after the remote provider failed.
	OriginFallback Origin = "fallback"
)

// Result carries normalized data together with the path that produced it.
// Reason is set only when Origin is OriginFallback.
type Result[T any] struct {
	Data   T
	Origin Origin
	Reason error
}

// FellBack reports whether the data is a substitute for a failed remote call.
func (r Result[T]) FellBack() bool {
	return r.Origin == OriginFallback
}
