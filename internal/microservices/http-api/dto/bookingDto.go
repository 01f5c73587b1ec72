package dto

// CreateBookingDTO used for POST /api/v1/bookings. Student identity comes
// from the token; name, email and phone are contact details.
type CreateBookingDTO struct {
	CounsellorID  string  `json:"counsellorId" binding:"required,max=100"`
	StudentName   string  `json:"studentName" binding:"required,max=200"`
	StudentEmail  string  `json:"studentEmail" binding:"required,email"`
	StudentPhone  string  `json:"studentPhone" binding:"omitempty,max=30"`
	RequestedDate string  `json:"requestedDate" binding:"required,datetime=2006-01-02"`
	RequestedTime string  `json:"requestedTime" binding:"required,datetime=15:04"`
	Duration      int     `json:"duration" binding:"omitempty,min=15,max=240"`
	SessionType   string  `json:"sessionType" binding:"required,max=100"`
	Notes         *string `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// DecideBookingDTO used for PATCH /api/v1/bookings/:id/decision.
// The action is checked by the service.
type DecideBookingDTO struct {
	Action string `json:"action" binding:"required"`
}
