package model

import (
	"time"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Book struct {
	ID              int       `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Author          string    `json:"author" db:"author"`
	AvailableCopies int       `json:"availableCopies" db:"available_copies"`
	Language        string    `json:"language" db:"language"`
	Description     *string   `json:"description,omitempty" db:"description"`
	ImageURL        *string   `json:"imageUrl,omitempty" db:"image_url"`
	FileURL         *string   `json:"fileUrl,omitempty" db:"file_url"`
	AverageRating   float64   `json:"averageRating" db:"average_rating"`
	RatingCount     int       `json:"ratingCount" db:"rating_count"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

type Loan struct {
	ID         int        `json:"id" db:"id"`
	LoanUID    string     `json:"loanUid" db:"loan_uid"`
	UserID     int        `json:"userId" db:"user_id"`
	BookID     int        `json:"bookId" db:"book_id"`
	IssuedAt   time.Time  `json:"issuedAt" db:"issued_at"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty" db:"returned_at"`
}

// LoanDetail is the listing projection joined with book and holder info.
type LoanDetail struct {
	Loan
	BookTitle  string  `json:"bookTitle" db:"book_title"`
	BookAuthor string  `json:"bookAuthor" db:"book_author"`
	BookImage  *string `json:"bookImage,omitempty" db:"book_image"`
	UserName   *string `json:"userName,omitempty" db:"user_name"`
	UserEmail  *string `json:"userEmail,omitempty" db:"user_email"`
}

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestFulfilled RequestStatus = "fulfilled"
)

// Terminal reports whether no further transitions are allowed.
func (s RequestStatus) Terminal() bool {
	return s == RequestApproved || s == RequestRejected || s == RequestFulfilled
}

type BookRequest struct {
	ID            int           `json:"id" db:"id"`
	RequestUID    string        `json:"requestUid" db:"request_uid"`
	UserID        int           `json:"userId" db:"user_id"`
	BookID        int           `json:"bookId" db:"book_id"`
	Message       string        `json:"message" db:"message"`
	Status        RequestStatus `json:"status" db:"status"`
	AdminResponse *string       `json:"adminResponse,omitempty" db:"admin_response"`
	RespondedBy   *int          `json:"respondedBy,omitempty" db:"responded_by"`
	RespondedAt   *time.Time    `json:"respondedAt,omitempty" db:"responded_at"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
}

type BookRequestDetail struct {
	BookRequest
	BookTitle  string  `json:"bookTitle" db:"book_title"`
	BookAuthor string  `json:"bookAuthor" db:"book_author"`
	BookImage  *string `json:"bookImage,omitempty" db:"book_image"`
	UserName   *string `json:"userName,omitempty" db:"user_name"`
	UserEmail  *string `json:"userEmail,omitempty" db:"user_email"`
	AdminName  *string `json:"adminName,omitempty" db:"admin_name"`
}

type RequestStats struct {
	Total     int `json:"total" db:"total"`
	Pending   int `json:"pending" db:"pending"`
	Approved  int `json:"approved" db:"approved"`
	Rejected  int `json:"rejected" db:"rejected"`
	Fulfilled int `json:"fulfilled" db:"fulfilled"`
}

type IssueStatus string

const (
	IssueOpen       IssueStatus = "open"
	IssueInProgress IssueStatus = "in_progress"
	IssueResolved   IssueStatus = "resolved"
	IssueClosed     IssueStatus = "closed"
)

func (s IssueStatus) Known() bool {
	switch s {
	case IssueOpen, IssueInProgress, IssueResolved, IssueClosed:
		return true
	}
	return false
}

type IssueCategory string

const (
	CategoryGeneral   IssueCategory = "general"
	CategoryTechnical IssueCategory = "technical"
	CategoryAccount   IssueCategory = "account"
	CategoryBook      IssueCategory = "book"
	CategoryOther     IssueCategory = "other"
)

func (c IssueCategory) Known() bool {
	switch c {
	case CategoryGeneral, CategoryTechnical, CategoryAccount, CategoryBook, CategoryOther:
		return true
	}
	return false
}

type IssueUrgency string

const (
	UrgencyLow    IssueUrgency = "low"
	UrgencyNormal IssueUrgency = "normal"
	UrgencyHigh   IssueUrgency = "high"
	UrgencyUrgent IssueUrgency = "urgent"
)

func (u IssueUrgency) Known() bool {
	switch u {
	case UrgencyLow, UrgencyNormal, UrgencyHigh, UrgencyUrgent:
		return true
	}
	return false
}

type IssueReport struct {
	ID            int           `json:"id" db:"id"`
	IssueUID      string        `json:"issueUid" db:"issue_uid"`
	UserID        int           `json:"userId" db:"user_id"`
	Subject       string        `json:"subject" db:"subject"`
	Message       string        `json:"message" db:"message"`
	Category      IssueCategory `json:"category" db:"category"`
	Urgency       IssueUrgency  `json:"urgency" db:"urgency"`
	Status        IssueStatus   `json:"status" db:"status"`
	AdminResponse *string       `json:"adminResponse,omitempty" db:"admin_response"`
	RespondedBy   *int          `json:"respondedBy,omitempty" db:"responded_by"`
	RespondedAt   *time.Time    `json:"respondedAt,omitempty" db:"responded_at"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
}

type IssueReportDetail struct {
	IssueReport
	UserName  *string `json:"userName,omitempty" db:"user_name"`
	UserEmail *string `json:"userEmail,omitempty" db:"user_email"`
	AdminName *string `json:"adminName,omitempty" db:"admin_name"`
}

type IssueStats struct {
	Total      int `json:"total" db:"total"`
	Open       int `json:"open" db:"open"`
	InProgress int `json:"inProgress" db:"in_progress"`
	Resolved   int `json:"resolved" db:"resolved"`
	Closed     int `json:"closed" db:"closed"`
}

type Rating struct {
	UserID    int       `json:"userId" db:"user_id"`
	BookID    int       `json:"bookId" db:"book_id"`
	Rating    int       `json:"rating" db:"rating"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type RatingDetail struct {
	Rating
	UserName string `json:"userName" db:"user_name"`
}

type BookRatings struct {
	Ratings       []RatingDetail `json:"ratings"`
	AverageRating float64        `json:"averageRating"`
	RatingCount   int            `json:"ratingCount"`
}

type Comment struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"userId" db:"user_id"`
	BookID    int       `json:"bookId" db:"book_id"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type CommentDetail struct {
	Comment
	UserName  string `json:"userName" db:"user_name"`
	UserEmail string `json:"userEmail" db:"user_email"`
}
