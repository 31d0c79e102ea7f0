package db

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type CaptureStatus string

const (
	CaptureStatusPending  CaptureStatus = "pending"
	CaptureStatusAnalyzed CaptureStatus = "analyzed"
	CaptureStatusFailed   CaptureStatus = "failed"
)

type CaptureSource string

const (
	CaptureSourceScheduled    CaptureSource = "scheduled"
	CaptureSourceInstant      CaptureSource = "instant"
	CaptureSourceDesktopAgent CaptureSource = "desktop-agent"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusCaptured RequestStatus = "captured"
	RequestStatusAnalyzed RequestStatus = "analyzed"
	RequestStatusFailed   RequestStatus = "failed"
	RequestStatusTimeout  RequestStatus = "timeout"
)

type RawCapture struct {
	ID           pgtype.UUID
	UserID       pgtype.UUID
	CapturedAt   pgtype.Timestamptz
	Source       CaptureSource
	ImageRef     string
	SizeBytes    int64
	Status       CaptureStatus
	Summary      pgtype.Text
	Productivity pgtype.Text
	Applications []string
	ContentTypes []string
	ErrorNote    pgtype.Text
	AnalyzedAt   pgtype.Timestamptz
	CreatedAt    pgtype.Timestamptz
}

type Session struct {
	ID                pgtype.UUID
	UserID            pgtype.UUID
	Day               pgtype.Date
	SessionNumber     int32
	CaptureRefs       []pgtype.UUID
	StartTime         pgtype.Timestamptz
	EndTime           pgtype.Timestamptz
	ScreenshotCount   int32
	IsLastOfDay       bool
	CheckoutTriggered bool
	IsAnalyzed        bool
	Score             pgtype.Float8
	Summary           pgtype.Text
	CreatedAt         pgtype.Timestamptz
}

type MonitoringRequest struct {
	ID              pgtype.UUID
	RequestedBy     pgtype.UUID
	RequestedByRole string
	TargetUser      pgtype.UUID
	Reason          pgtype.Text
	ConsentGiven    bool
	Status          RequestStatus
	CaptureID       pgtype.UUID
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

type AuthzAudit struct {
	ID            pgtype.UUID
	RequesterID   pgtype.UUID
	RequesterRole string
	TargetID      pgtype.UUID
	TargetRole    string
	Action        string
	Decision      string
	Reason        string
	DecidedAt     pgtype.Timestamptz
}

type Checkout struct {
	UserID     pgtype.UUID
	Day        pgtype.Date
	CheckoutAt pgtype.Timestamptz
}
