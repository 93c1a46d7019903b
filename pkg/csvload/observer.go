package csvload

// Observer receives progress events during a run.
// Implementations must be safe for concurrent use when Workers > 1.
type Observer interface {
	// FileStarted is called once the file has been decoded.
	FileStarted(file SourceFile, rows int)

	// TableProvisioned is called after the create-if-absent statement succeeded.
	TableProvisioned(file SourceFile, columns []ColumnDescriptor)

	// BatchCommitted is called after each committed batch with the running total.
	BatchCommitted(file SourceFile, batch int, rowsCommitted int, rowsTotal int)

	// FileFinished is called exactly once per located file.
	FileFinished(outcome FileOutcome)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) FileStarted(SourceFile, int)                    {}
func (NopObserver) TableProvisioned(SourceFile, []ColumnDescriptor) {}
func (NopObserver) BatchCommitted(SourceFile, int, int, int)        {}
func (NopObserver) FileFinished(FileOutcome)                        {}

var _ Observer = NopObserver{}
