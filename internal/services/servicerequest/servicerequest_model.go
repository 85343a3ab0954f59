package servicerequest

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/google/uuid"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type Urgency string

const (
	UrgencyRoutine   Urgency = "routine"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyEmergency Urgency = "emergency"
)

var (
	ErrNotAssignee     = errors.New("not authorized for this job")
	ErrAlreadyAccepted = errors.New("job already accepted")
	ErrNotYetAccepted  = errors.New("job must be accepted before completion")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

// Attachment is the JSONB-stored metadata of an uploaded file
type Attachment struct {
	Filename string `json:"filename"`
	Mimetype string `json:"mimetype"`
	Size     int64  `json:"size"`
	URL      string `json:"url,omitempty"`
}

// Scan implements the sql.Scanner interface for database/sql
func (a *Attachment) Scan(value interface{}) error {
	if value == nil {
		*a = Attachment{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Attachment", value)
	}

	return json.Unmarshal(bytes, a)
}

// Value implements the driver.Valuer interface for database/sql
func (a Attachment) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Tags is a JSONB-backed list of labels
type Tags []string

// Scan implements the sql.Scanner interface for database/sql
func (t *Tags) Scan(value interface{}) error {
	if value == nil {
		*t = Tags{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Tags", value)
	}

	return json.Unmarshal(bytes, t)
}

// Value implements the driver.Valuer interface for database/sql
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(t)
}

type ServiceRequest struct {
	ID uuid.UUID `db:"id" json:"id"`

	Service       string  `db:"service" json:"service"`
	Description   *string `db:"description" json:"description"`
	PreferredDate *string `db:"preferred_date" json:"preferredDate"`
	PreferredTime *string `db:"preferred_time" json:"preferredTime"`
	Name          string  `db:"name" json:"name"`
	Phone         string  `db:"phone" json:"phone"`
	Email         *string `db:"email" json:"email"`
	Address       string  `db:"address" json:"address"`
	City          string  `db:"city" json:"city"`
	State         string  `db:"state" json:"state"`
	Zip           string  `db:"zip" json:"zip"`

	Attachment *Attachment `db:"attachment" json:"attachment"`

	Status   Status   `db:"status" json:"status"`
	Priority Priority `db:"priority" json:"priority"`

	ScheduledDate *string `db:"scheduled_date" json:"scheduledDate"`
	ScheduledTime *string `db:"scheduled_time" json:"scheduledTime"`
	EstimatedCost float64 `db:"estimated_cost" json:"estimatedCost"`
	ActualCost    float64 `db:"actual_cost" json:"actualCost"`

	CustomerName    *string `db:"customer_name" json:"customerName"`
	CustomerEmail   *string `db:"customer_email" json:"customerEmail"`
	CustomerPhone   *string `db:"customer_phone" json:"customerPhone"`
	ServiceType     *string `db:"service_type" json:"serviceType"`
	ServiceCategory string  `db:"service_category" json:"serviceCategory"`
	Urgency         Urgency `db:"urgency" json:"urgency"`

	CustomerNotes     string     `db:"customer_notes" json:"customerNotes"`
	AdminNotes        string     `db:"admin_notes" json:"adminNotes"`
	EstimatedDuration float64    `db:"estimated_duration" json:"estimatedDuration"`
	ActualDuration    float64    `db:"actual_duration" json:"actualDuration"`
	FollowUpRequired  bool       `db:"follow_up_required" json:"followUpRequired"`
	FollowUpDate      *time.Time `db:"follow_up_date" json:"followUpDate"`
	CustomerRating    *int       `db:"customer_rating" json:"customerRating"`
	CustomerFeedback  string     `db:"customer_feedback" json:"customerFeedback"`

	AssignedEmployee   *uuid.UUID `db:"assigned_employee" json:"assignedEmployee"`
	EmployeeAccepted   bool       `db:"employee_accepted" json:"employeeAccepted"`
	EmployeeAcceptedAt *time.Time `db:"employee_accepted_at" json:"employeeAcceptedAt"`
	EmployeeRemarks    string     `db:"employee_remarks" json:"employeeRemarks"`
	CompletedAt        *time.Time `db:"completed_at" json:"completedAt"`
	CompletionNotes    string     `db:"completion_notes" json:"completionNotes"`

	LastUpdatedBy     *uuid.UUID `db:"last_updated_by" json:"lastUpdatedBy"`
	Source            string     `db:"source" json:"source"`
	Tags              Tags       `db:"tags" json:"tags"`
	IsRecurring       bool       `db:"is_recurring" json:"isRecurring"`
	RecurringPattern  *string    `db:"recurring_pattern" json:"recurringPattern"`
	NextScheduledDate *time.Time `db:"next_scheduled_date" json:"nextScheduledDate"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// isAssignee reports whether the given profile currently holds the job
func (sr *ServiceRequest) isAssignee(profileID uuid.UUID) bool {
	return sr.AssignedEmployee != nil && *sr.AssignedEmployee == profileID
}

// Accept marks the job as taken by its assignee and moves it in-progress.
// Only the assigned employee may accept, and only once.
func (sr *ServiceRequest) Accept(profileID uuid.UUID, now time.Time) error {
	if !sr.isAssignee(profileID) {
		return ErrNotAssignee
	}
	if sr.EmployeeAccepted {
		return ErrAlreadyAccepted
	}

	sr.EmployeeAccepted = true
	sr.EmployeeAcceptedAt = &now
	sr.Status = StatusInProgress
	return nil
}

// Complete closes out an accepted job. Completion requires prior acceptance.
func (sr *ServiceRequest) Complete(profileID uuid.UUID, notes string, now time.Time) error {
	if !sr.isAssignee(profileID) {
		return ErrNotAssignee
	}
	if !sr.EmployeeAccepted {
		return ErrNotYetAccepted
	}

	sr.Status = StatusCompleted
	sr.CompletedAt = &now
	if notes != "" {
		sr.CompletionNotes = notes
	}
	return nil
}

// SetRemarks overwrites the assignee's working notes
func (sr *ServiceRequest) SetRemarks(profileID uuid.UUID, remarks string) error {
	if !sr.isAssignee(profileID) {
		return ErrNotAssignee
	}

	sr.EmployeeRemarks = remarks
	return nil
}

// Rate records the customer's score and optional feedback. There is no status
// precondition; a rating may land before completion.
func (sr *ServiceRequest) Rate(rating int, feedback string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	sr.CustomerRating = &rating
	if feedback != "" {
		sr.CustomerFeedback = feedback
	}
	return nil
}

// AssignTo hands the job to an employee and resets it to pending so the new
// assignee can accept. Prior acceptance flags are left untouched.
func (sr *ServiceRequest) AssignTo(profileID uuid.UUID) {
	sr.AssignedEmployee = &profileID
	sr.Status = StatusPending
}

// CreateServiceRequestRequest is the intake payload
type CreateServiceRequestRequest struct {
	Service       string  `json:"service"`
	Description   *string `json:"description"`
	PreferredDate *string `json:"preferredDate"`
	PreferredTime *string `json:"preferredTime"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Email         *string `json:"email"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Zip           string  `json:"zip"`

	AssignedEmployee  *uuid.UUID `json:"assignedEmployee"`
	ServiceCategory   string     `json:"serviceCategory"`
	Urgency           string     `json:"urgency"`
	CustomerNotes     string     `json:"customerNotes"`
	EstimatedCost     float64    `json:"estimatedCost"`
	EstimatedDuration float64    `json:"estimatedDuration"`
	Source            string     `json:"source"`
	Tags              Tags       `json:"tags"`
	IsRecurring       bool       `json:"isRecurring"`
	RecurringPattern  *string    `json:"recurringPattern"`

	Attachment *Attachment `json:"-"`
}

// Validate checks the intake required fields
func (r *CreateServiceRequestRequest) Validate() error {
	if r.Service == "" || r.Name == "" || r.Phone == "" || r.Address == "" ||
		r.City == "" || r.State == "" || r.Zip == "" {
		return errors.New("missing required fields")
	}
	return nil
}

// UpdateServiceRequestRequest is the generic partial update payload. Pointer
// fields distinguish absent from zero.
type UpdateServiceRequestRequest struct {
	Service       *string `json:"service"`
	Description   *string `json:"description"`
	PreferredDate *string `json:"preferredDate"`
	PreferredTime *string `json:"preferredTime"`
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	Zip           *string `json:"zip"`

	Status   *Status   `json:"status"`
	Priority *Priority `json:"priority"`

	ScheduledDate *string  `json:"scheduledDate"`
	ScheduledTime *string  `json:"scheduledTime"`
	EstimatedCost *float64 `json:"estimatedCost"`
	ActualCost    *float64 `json:"actualCost"`

	ServiceCategory *string `json:"serviceCategory"`
	Urgency         *string `json:"urgency"`

	CustomerNotes     *string  `json:"customerNotes"`
	AdminNotes        *string  `json:"adminNotes"`
	EstimatedDuration *float64 `json:"estimatedDuration"`
	ActualDuration    *float64 `json:"actualDuration"`
	FollowUpRequired  *bool    `json:"followUpRequired"`

	AssignedEmployee *uuid.UUID `json:"assignedEmployee"`
	LastUpdatedBy    *uuid.UUID `json:"lastUpdatedBy"`
	Source           *string    `json:"source"`
	Tags             *Tags      `json:"tags"`

	Attachment *Attachment `json:"-"`
}

// HasUpdates reports whether any field is set
func (r *UpdateServiceRequestRequest) HasUpdates() bool {
	return r.Service != nil || r.Description != nil || r.PreferredDate != nil ||
		r.PreferredTime != nil || r.Name != nil || r.Phone != nil || r.Email != nil ||
		r.Address != nil || r.City != nil || r.State != nil || r.Zip != nil ||
		r.Status != nil || r.Priority != nil || r.ScheduledDate != nil ||
		r.ScheduledTime != nil || r.EstimatedCost != nil || r.ActualCost != nil ||
		r.ServiceCategory != nil || r.Urgency != nil || r.CustomerNotes != nil ||
		r.AdminNotes != nil || r.EstimatedDuration != nil || r.ActualDuration != nil ||
		r.FollowUpRequired != nil || r.AssignedEmployee != nil || r.LastUpdatedBy != nil ||
		r.Source != nil || r.Tags != nil || r.Attachment != nil
}
