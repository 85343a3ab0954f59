package servicerequest

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrEmptyBulkIDs  = errors.New("IDs array is required")
	ErrEmptyUpdates  = errors.New("updates object is required")
)

type ServiceRequestService struct {
	repo *ServiceRequestRepo
}

func NewServiceRequestService(repo *ServiceRequestRepo) *ServiceRequestService {
	return &ServiceRequestService{repo: repo}
}

// Create validates the intake payload and persists the request
func (s *ServiceRequestService) Create(ctx context.Context, req *CreateServiceRequestRequest) (*ServiceRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, ErrMissingFields
	}
	return s.repo.Create(ctx, req)
}

// ListResult carries a request page plus the global rollups the listing
// endpoints attach
type ListResult struct {
	Items          []*ServiceRequest
	Total          int
	Page           int
	Limit          int
	CountsByStatus map[string]int
	Analytics      *ListingAnalytics
}

// List returns a filtered page with the global status histogram and
// cost/duration rollup. The rollups deliberately ignore the filter.
func (s *ServiceRequestService) List(ctx context.Context, filter *Filter, sortBy, sortOrder string, page Page) (*ListResult, error) {
	page = page.Normalize()

	items, err := s.repo.List(ctx, filter, sortBy, sortOrder, page)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.CountsByStatus(ctx)
	if err != nil {
		return nil, err
	}

	analytics, err := s.repo.GetListingAnalytics(ctx)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Items:          items,
		Total:          total,
		Page:           page.Number,
		Limit:          page.Limit,
		CountsByStatus: counts,
		Analytics:      analytics,
	}, nil
}

// Search runs the same listing query without the global rollups
func (s *ServiceRequestService) Search(ctx context.Context, filter *Filter, sortBy, sortOrder string, page Page) (*ListResult, error) {
	page = page.Normalize()

	items, err := s.repo.List(ctx, filter, sortBy, sortOrder, page)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Items: items,
		Total: total,
		Page:  page.Number,
		Limit: page.Limit,
	}, nil
}

func (s *ServiceRequestService) Get(ctx context.Context, id uuid.UUID) (*ServiceRequest, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a generic partial update. Status changes are checked against
// the transition table before anything is written.
func (s *ServiceRequestService) Update(ctx context.Context, id uuid.UUID, req *UpdateServiceRequestRequest) (*ServiceRequest, error) {
	if !req.HasUpdates() {
		return s.repo.GetByID(ctx, id)
	}

	if req.Status != nil {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !canTransition(current.Status, *req.Status) {
			return nil, ErrInvalidTransition
		}
	}

	return s.repo.Update(ctx, id, req)
}

func (s *ServiceRequestService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Summary is the compact status overview
type Summary struct {
	Total          int            `json:"total"`
	CountsByStatus map[string]int `json:"countsByStatus"`
}

func (s *ServiceRequestService) Summary(ctx context.Context) (*Summary, error) {
	total, err := s.repo.Count(ctx, &Filter{})
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.CountsByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &Summary{Total: total, CountsByStatus: counts}, nil
}

// EmployeeJobs lists an assignee's jobs, optionally narrowed by status
func (s *ServiceRequestService) EmployeeJobs(ctx context.Context, profileID uuid.UUID, status string) ([]*ServiceRequest, error) {
	return s.repo.ListByEmployee(ctx, profileID, status)
}

// Accept marks a job taken by its assignee
func (s *ServiceRequestService) Accept(ctx context.Context, id, profileID uuid.UUID) (*ServiceRequest, error) {
	sr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sr.Accept(profileID, time.Now()); err != nil {
		return nil, err
	}

	return s.repo.SaveLifecycle(ctx, sr)
}

// Complete closes out an accepted job
func (s *ServiceRequestService) Complete(ctx context.Context, id, profileID uuid.UUID, notes string) (*ServiceRequest, error) {
	sr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sr.Complete(profileID, notes, time.Now()); err != nil {
		return nil, err
	}

	return s.repo.SaveLifecycle(ctx, sr)
}

// SetRemarks overwrites the assignee's working notes
func (s *ServiceRequestService) SetRemarks(ctx context.Context, id, profileID uuid.UUID, remarks string) (*ServiceRequest, error) {
	sr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sr.SetRemarks(profileID, remarks); err != nil {
		return nil, err
	}

	return s.repo.SaveLifecycle(ctx, sr)
}

// Assign hands the job to an employee and resets it to pending
func (s *ServiceRequestService) Assign(ctx context.Context, id, profileID uuid.UUID) (*ServiceRequest, error) {
	sr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sr.AssignTo(profileID)

	return s.repo.SaveLifecycle(ctx, sr)
}

// SetAssignedEmployee swaps or clears the assignee without touching status
func (s *ServiceRequestService) SetAssignedEmployee(ctx context.Context, id uuid.UUID, profileID *uuid.UUID) (*ServiceRequest, error) {
	if profileID == nil {
		return s.repo.ClearAssignedEmployee(ctx, id)
	}
	return s.repo.Update(ctx, id, &UpdateServiceRequestRequest{AssignedEmployee: profileID})
}

// Rate records the customer's score and feedback
func (s *ServiceRequestService) Rate(ctx context.Context, id uuid.UUID, rating int, feedback string) (*ServiceRequest, error) {
	sr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sr.Rate(rating, feedback); err != nil {
		return nil, err
	}

	return s.repo.SaveLifecycle(ctx, sr)
}

// SetAdminNotes overwrites the admin notes, recording who touched them
func (s *ServiceRequestService) SetAdminNotes(ctx context.Context, id uuid.UUID, notes string, updatedBy *uuid.UUID) (*ServiceRequest, error) {
	req := &UpdateServiceRequestRequest{AdminNotes: &notes}
	if updatedBy != nil {
		req.LastUpdatedBy = updatedBy
	}
	return s.repo.Update(ctx, id, req)
}

// Analytics is the full period report
type Analytics struct {
	Summary              *AnalyticsSummary `json:"summary"`
	StatusDistribution   []StatusCount     `json:"statusDistribution"`
	CategoryDistribution []CategoryCount   `json:"categoryDistribution"`
	MonthlyTrends        []MonthlyTrend    `json:"monthlyTrends"`
	Period               string            `json:"period"`
}

// periodCutoff maps an analytics period to its start instant. Unknown periods
// fall back to 30 days.
func periodCutoff(period string, now time.Time) time.Time {
	switch period {
	case "7d":
		return now.AddDate(0, 0, -7)
	case "30d":
		return now.AddDate(0, 0, -30)
	case "90d":
		return now.AddDate(0, 0, -90)
	case "1y":
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, 0, -30)
	}
}

// GetAnalytics builds the period report
func (s *ServiceRequestService) GetAnalytics(ctx context.Context, period string) (*Analytics, error) {
	if period == "" {
		period = "30d"
	}
	since := periodCutoff(period, time.Now())

	summary, err := s.repo.GetAnalyticsSummary(ctx, since)
	if err != nil {
		return nil, err
	}

	statusDist, err := s.repo.GetStatusDistribution(ctx, since)
	if err != nil {
		return nil, err
	}

	categoryDist, err := s.repo.GetCategoryDistribution(ctx, since)
	if err != nil {
		return nil, err
	}

	trends, err := s.repo.GetMonthlyTrends(ctx, since)
	if err != nil {
		return nil, err
	}

	return &Analytics{
		Summary:              summary,
		StatusDistribution:   statusDist,
		CategoryDistribution: categoryDist,
		MonthlyTrends:        trends,
		Period:               period,
	}, nil
}

// BulkUpdate applies the same partial update across many requests
func (s *ServiceRequestService) BulkUpdate(ctx context.Context, ids []uuid.UUID, req *UpdateServiceRequestRequest) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrEmptyBulkIDs
	}
	if req == nil || !req.HasUpdates() {
		return 0, ErrEmptyUpdates
	}
	return s.repo.BulkUpdate(ctx, ids, req)
}
