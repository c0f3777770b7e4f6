package metrics

type NoopMetrics struct{}

func (n NoopMetrics) RecordUp() {}

func (n NoopMetrics) RecordInvocation(operation string, outcome string) {}

func (n NoopMetrics) RecordUnauthorized() {}

func (n NoopMetrics) RecordDispatch() (onDone func(err error)) {
	return func(err error) {}
}

var _ Metricer = NoopMetrics{}
