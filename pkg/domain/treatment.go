package domain

// Treatment is a completed course of care with its billing state.
type Treatment struct {
	ID          int64   `json:"id"`
	PatientID   int64   `json:"patient_id"`
	PatientName string  `json:"patient_name,omitempty"`
	ServiceName string  `json:"service_name,omitempty"`
	Total       float64 `json:"total"`
	Paid        float64 `json:"paid"`
	Date        string  `json:"date,omitempty"`
}

// Debt returns the outstanding balance, never negative.
func (t Treatment) Debt() float64 {
	if d := t.Total - t.Paid; d > 0 {
		return d
	}
	return 0
}

// DebtEntry is one row from the debts report endpoint.
type DebtEntry struct {
	PatientID   int64   `json:"patient_id"`
	PatientName string  `json:"patient_name"`
	Phone       string  `json:"phone,omitempty"`
	Amount      float64 `json:"amount"`
}
