package models

// StudentRecord is one roster row. ClassNo may be empty.
type StudentRecord struct {
	Day      string `csv:"Day" json:"day"`           // Weekday label, compared verbatim
	Name     string `csv:"Name" json:"name"`         // Student name
	Class    string `csv:"Class" json:"class"`       // Class label, e.g. "1A"
	ClassNo  string `csv:"ClassNo" json:"classNo"`   // Seat number within the class, kept as text
	Activity string `csv:"Activity" json:"activity"` // Activity the student attends that day
}

// Selection holds the values of the filter controls.
type Selection struct {
	Day     string `json:"day"`
	Class   string `json:"class"`
	ClassNo string `json:"classNo"`
}

// Display describes what the result table currently shows.
// Rendered=false means an empty table body; Rendered with no rows means the
// "no data" placeholder row.
type Display struct {
	Rendered bool            `json:"rendered"`
	Rows     []StudentRecord `json:"rows"`
}
