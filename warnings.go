package geocrs

// LogHook is the host-supplied sink for non-fatal warnings, e.g.
// an unknown-but-optional parameter such as two competing scale factors
// being given at once. Warnings never fail the operation that raised them.
//
// Like ParameterMap, logging itself is explicitly out of scope for the core
//; this interface is the seam a host application plugs a real
// logger into.
type LogHook interface {
	Warnf(format string, args ...any)
}

// discardHook is used wherever no LogHook was supplied, so the core never
// needs a nil check at every warning call site.
type discardHook struct{}

func (discardHook) Warnf(string, ...any) {}

var noopLogHook LogHook = discardHook{}
