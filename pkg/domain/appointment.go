package domain

// Appointment statuses as the backend reports them.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment is a scheduled patient visit.
type Appointment struct {
	ID          int64  `json:"id"`
	PatientID   int64  `json:"patient_id"`
	PatientName string `json:"patient_name,omitempty"`
	DoctorID    int64  `json:"doctor_id,omitempty"`
	DoctorName  string `json:"doctor_name,omitempty"`
	ServiceID   int64  `json:"service_id,omitempty"`
	ServiceName string `json:"service_name,omitempty"`
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time,omitempty"`
	Status      string `json:"status"`
}
