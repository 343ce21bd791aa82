package core

type (
	// SummaryRow is one calendar day of the monthly pivot. Cells holds the
	// per-category sums for categories that had spending that day; a
	// category absent from Cells renders as a blank value on the wire.
	SummaryRow struct {
		Date  string
		Cells map[string]float64
		Total float64
	}

	// MonthSummary is the dense day-by-category spending matrix for one
	// month. Categories is the full column vocabulary, drawn from every
	// expense ever recorded, in first-seen order. Rows covers every
	// calendar day of the month in ascending order, whether or not any
	// expense occurred.
	MonthSummary struct {
		Categories []string
		Rows       []SummaryRow
	}
)
