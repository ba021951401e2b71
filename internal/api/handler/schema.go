package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"     form:"email"     validate:"required,email"`
	Password string `json:"password"  form:"password"  validate:"required,min=6"`
	FullName string `json:"full_name" form:"full_name" validate:"max=120"`
	Role     string `json:"role"      form:"role"      validate:"omitempty,role"`
}

type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	FullName string `json:"full_name,omitempty"`
}

type authResponse struct {
	Token string        `json:"token,omitempty"`
	User  *userResponse `json:"user,omitempty"`
}

// --- Availability ---

// slotRequest accepts both the HTML form field names and a JSON body.
type slotRequest struct {
	Date      string `json:"date"       form:"date"`
	StartTime string `json:"start_time" form:"start_time"`
	EndTime   string `json:"end_time"   form:"end_time"`
}

type slotResponse struct {
	ID        string    `json:"id"`
	DoctorID  string    `json:"doctor_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	IsBooked  bool      `json:"is_booked"`
}

// submissionResponse is the rendered result of an availability submission.
type submissionResponse struct {
	Message string        `json:"message"`
	Error   bool          `json:"error,omitempty"`
	Slot    *slotResponse `json:"slot,omitempty"`
}

type availabilityListResponse struct {
	Slots []slotResponse `json:"slots"`
}

// --- Assistant ---

type triageRequest struct {
	Symptoms string `json:"symptoms" form:"symptoms"`
}

type triageResponse struct {
	Specialties []string `json:"specialties"`
}

type summaryRequest struct {
	Concerns string `json:"concerns" form:"concerns"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}
