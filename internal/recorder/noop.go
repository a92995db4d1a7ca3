package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordScore(_ *ScoreSnapshot) error          { return nil }
func (n *NoopRecorder) RecordEmptySeries(_ *EmptySeriesEvent) error { return nil }
func (n *NoopRecorder) Close() error                                { return nil }
