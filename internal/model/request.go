package model

// Boundary payloads. Validation tags cover shape only; business constraints
// (lengths, enums, ranges) are enforced in the services so violations can be
// reported together.

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role"`
}

type RequestOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
	User        User   `json:"user"`
}

type UpsertBookRequest struct {
	Title           string  `json:"title" validate:"required"`
	Author          string  `json:"author" validate:"required"`
	AvailableCopies int     `json:"availableCopies" validate:"gte=0"`
	Language        string  `json:"language"`
	Description     *string `json:"description"`
	ImageURL        *string `json:"imageUrl"`
	FileURL         *string `json:"fileUrl"`
}

type IssueBookRequest struct {
	BookID int `json:"bookId" validate:"required"`
}

type ReturnBookRequest struct {
	LoanUID string `json:"loanUid" validate:"required,uuid"`
}

type CreateBookRequestRequest struct {
	BookID  int    `json:"bookId" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type RespondBookRequestRequest struct {
	Status        RequestStatus `json:"status" validate:"required"`
	AdminResponse *string       `json:"adminResponse"`
}

type CreateIssueRequest struct {
	Subject  string        `json:"subject"`
	Message  string        `json:"message"`
	Category IssueCategory `json:"category"`
	Urgency  IssueUrgency  `json:"urgency"`
}

type RespondIssueRequest struct {
	Status        IssueStatus `json:"status" validate:"required"`
	AdminResponse *string     `json:"adminResponse"`
}

type RateBookRequest struct {
	BookID int `json:"bookId" validate:"required"`
	Rating int `json:"rating" validate:"required"`
}

type AddCommentRequest struct {
	BookID  int    `json:"bookId" validate:"required"`
	Comment string `json:"comment" validate:"required"`
}

type UpdateCommentRequest struct {
	Comment string `json:"comment" validate:"required"`
}
