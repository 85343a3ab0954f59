package dashboard

import (
	"context"
	"errors"
	"math"

	"github.com/fieldserve/backoffice/internal/services/profile"
	"github.com/fieldserve/backoffice/internal/services/servicerequest"
	"github.com/google/uuid"
)

// Stats is the admin landing-page rollup
type Stats struct {
	TotalServiceRequests int `json:"totalServiceRequests"`
	UrgentRequests       int `json:"urgentRequests"`
	CompletedToday       int `json:"completedToday"`
	PendingRequests      int `json:"pendingRequests"`
	EmployeeApplications int `json:"employeeApplications"`
	ActiveEmployees      int `json:"activeEmployees"`
}

// EmployeeStats is the per-employee view of workload and history
type EmployeeStats struct {
	ProfileCompletion  int      `json:"profileCompletion"`
	ActiveJobs         int      `json:"activeJobs"`
	SuccessRate        int      `json:"successRate"`
	TotalCompletedJobs int      `json:"totalCompletedJobs"`
	MissingFields      []string `json:"missingFields"`
}

// Overview bundles the stats with the two recent-activity lists
type Overview struct {
	Stats              *Stats                           `json:"stats"`
	RecentRequests     []*servicerequest.ServiceRequest `json:"recentRequests"`
	RecentApplications []*profile.Profile               `json:"recentApplications"`
}

type DashboardService struct {
	requests *servicerequest.ServiceRequestRepo
	profiles *profile.ProfileRepo
}

func NewDashboardService(requests *servicerequest.ServiceRequestRepo, profiles *profile.ProfileRepo) *DashboardService {
	return &DashboardService{requests: requests, profiles: profiles}
}

// GetStats computes the admin landing-page rollup
func (s *DashboardService) GetStats(ctx context.Context) (*Stats, error) {
	total, err := s.requests.Count(ctx, &servicerequest.Filter{})
	if err != nil {
		return nil, err
	}

	urgent, err := s.requests.CountUrgentOpen(ctx)
	if err != nil {
		return nil, err
	}

	completedToday, err := s.requests.CountCompletedToday(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.requests.CountsByStatus(ctx)
	if err != nil {
		return nil, err
	}

	applications, err := s.profiles.CountByVerificationStatus(ctx, profile.VerificationPending)
	if err != nil {
		return nil, err
	}

	active, err := s.profiles.CountByVerificationStatus(ctx, profile.VerificationApproved)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalServiceRequests: total,
		UrgentRequests:       urgent,
		CompletedToday:       completedToday,
		PendingRequests:      counts[string(servicerequest.StatusPending)],
		EmployeeApplications: applications,
		ActiveEmployees:      active,
	}, nil
}

// GetRecentRequests returns the newest intake, defaulting to 4
func (s *DashboardService) GetRecentRequests(ctx context.Context, limit int) ([]*servicerequest.ServiceRequest, error) {
	if limit < 1 {
		limit = 4
	}
	return s.requests.ListRecent(ctx, limit)
}

// GetRecentApplications returns the newest profiles, defaulting to 3
func (s *DashboardService) GetRecentApplications(ctx context.Context, limit int) ([]*profile.Profile, error) {
	if limit < 1 {
		limit = 3
	}
	return s.profiles.ListRecent(ctx, limit)
}

// GetOverview bundles stats and both recent lists in one call
func (s *DashboardService) GetOverview(ctx context.Context) (*Overview, error) {
	stats, err := s.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.GetRecentRequests(ctx, 4)
	if err != nil {
		return nil, err
	}

	applications, err := s.GetRecentApplications(ctx, 3)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Stats:              stats,
		RecentRequests:     requests,
		RecentApplications: applications,
	}, nil
}

var liveJobStatuses = []string{
	string(servicerequest.StatusPending),
	string(servicerequest.StatusInProcess),
	string(servicerequest.StatusInProgress),
}

// GetEmployeeStats computes the caller's workload view. Jobs are keyed by the
// caller's profile ID, which is what assignments reference.
func (s *DashboardService) GetEmployeeStats(ctx context.Context, userID uuid.UUID) (*EmployeeStats, error) {
	stats := &EmployeeStats{MissingFields: []string{}}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, profile.ErrProfileNotFound) {
			return nil, err
		}
		completion := profile.ComputeCompletion(nil)
		stats.ProfileCompletion = completion.Completion
		return stats, nil
	}

	completion := profile.ComputeCompletion(p)
	stats.ProfileCompletion = completion.Completion
	stats.MissingFields = completion.MissingFields

	active, err := s.requests.CountByAssigneeAndStatuses(ctx, p.ID, liveJobStatuses)
	if err != nil {
		return nil, err
	}
	stats.ActiveJobs = active

	completed, err := s.requests.CountByAssigneeAndStatuses(ctx, p.ID, []string{string(servicerequest.StatusCompleted)})
	if err != nil {
		return nil, err
	}
	stats.TotalCompletedJobs = completed

	if total := active + completed; total > 0 {
		stats.SuccessRate = int(math.Round(float64(completed) / float64(total) * 100))
	}

	return stats, nil
}
