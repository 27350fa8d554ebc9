package school

// Class and Subject are reference data: seeded once at startup and
// treated as immutable for the lifetime of the store.

type Class struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Subject struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Student is seeded at startup and read-only thereafter.
type Student struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	RollNumber      string  `json:"rollNumber"`
	AdmissionNumber string  `json:"admissionNumber"`
	PhotoURL        *string `json:"photoUrl"`
	ClassID         int     `json:"classId"`
}
