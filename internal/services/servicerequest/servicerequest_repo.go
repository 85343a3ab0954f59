package servicerequest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrRequestNotFound = errors.New("service request not found")

const requestColumns = `id, service, description, preferred_date, preferred_time, name, phone, email,
		address, city, state, zip, attachment, status, priority, scheduled_date, scheduled_time,
		estimated_cost, actual_cost, customer_name, customer_email, customer_phone, service_type,
		service_category, urgency, customer_notes, admin_notes, estimated_duration, actual_duration,
		follow_up_required, follow_up_date, customer_rating, customer_feedback, assigned_employee,
		employee_accepted, employee_accepted_at, employee_remarks, completed_at, completion_notes,
		last_updated_by, source, tags, is_recurring, recurring_pattern, next_scheduled_date,
		created_at, updated_at`

// ServiceRequestRepo handles database operations for service requests
type ServiceRequestRepo struct {
	db *sqlx.DB
}

// NewServiceRequestRepo creates a new service request repository
func NewServiceRequestRepo(db *sqlx.DB) *ServiceRequestRepo {
	return &ServiceRequestRepo{db: db}
}

// Create inserts a new request from the intake payload
func (r *ServiceRequestRepo) Create(ctx context.Context, req *CreateServiceRequestRequest) (*ServiceRequest, error) {
	serviceCategory := req.ServiceCategory
	if serviceCategory == "" {
		serviceCategory = "other"
	}
	urgency := req.Urgency
	if urgency == "" {
		urgency = string(UrgencyRoutine)
	}
	source := req.Source
	if source == "" {
		source = "website"
	}

	query := `
		INSERT INTO service_requests (
			service, description, preferred_date, preferred_time, name, phone, email,
			address, city, state, zip, attachment, assigned_employee, service_category,
			urgency, customer_notes, estimated_cost, estimated_duration, source, tags,
			is_recurring, recurring_pattern
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING ` + requestColumns + `
	`

	var sr ServiceRequest
	err := r.db.GetContext(ctx, &sr, query,
		req.Service, req.Description, req.PreferredDate, req.PreferredTime,
		req.Name, req.Phone, req.Email, req.Address, req.City, req.State, req.Zip,
		req.Attachment, req.AssignedEmployee, serviceCategory, urgency,
		req.CustomerNotes, req.EstimatedCost, req.EstimatedDuration, source,
		req.Tags, req.IsRecurring, req.RecurringPattern,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create service request: %w", err)
	}
	return &sr, nil
}

func (r *ServiceRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*ServiceRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM service_requests
		WHERE id = $1
	`
	var sr ServiceRequest
	err := r.db.GetContext(ctx, &sr, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get service request: %w", err)
	}
	return &sr, nil
}

// List retrieves a filtered, sorted page of requests
func (r *ServiceRequestRepo) List(ctx context.Context, filter *Filter, sortBy, sortOrder string, page Page) ([]*ServiceRequest, error) {
	where, args := filter.Where()
	page = page.Normalize()

	query := fmt.Sprintf(`
		SELECT %s
		FROM service_requests
		%s
		%s
		LIMIT %d OFFSET %d
	`, requestColumns, where, OrderBy(sortBy, sortOrder), page.Limit, page.Offset())

	var requests []*ServiceRequest
	err := r.db.SelectContext(ctx, &requests, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list service requests: %w", err)
	}
	return requests, nil
}

// Count returns the number of requests matching the filter
func (r *ServiceRequestRepo) Count(ctx context.Context, filter *Filter) (int, error) {
	where, args := filter.Where()

	var count int
	err := r.db.GetContext(ctx, &count, fmt.Sprintf(`SELECT COUNT(*) FROM service_requests %s`, where), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count service requests: %w", err)
	}
	return count, nil
}

// StatusCount is one bucket of a status histogram
type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

// CountsByStatus returns the global status histogram as a map
func (r *ServiceRequestRepo) CountsByStatus(ctx context.Context) (map[string]int, error) {
	var rows []StatusCount
	err := r.db.SelectContext(ctx, &rows, `
		SELECT status, COUNT(*) AS count
		FROM service_requests
		GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := map[string]int{}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// ListingAnalytics is the cost and duration rollup attached to listings
type ListingAnalytics struct {
	TotalCost      float64 `db:"total_cost" json:"totalCost"`
	AvgCost        float64 `db:"avg_cost" json:"avgCost"`
	TotalDuration  float64 `db:"total_duration" json:"totalDuration"`
	AvgDuration    float64 `db:"avg_duration" json:"avgDuration"`
	UrgentCount    int     `db:"urgent_count" json:"urgentCount"`
	EmergencyCount int     `db:"emergency_count" json:"emergencyCount"`
}

// GetListingAnalytics computes the global cost/duration rollup
func (r *ServiceRequestRepo) GetListingAnalytics(ctx context.Context) (*ListingAnalytics, error) {
	var a ListingAnalytics
	err := r.db.GetContext(ctx, &a, `
		SELECT
			COALESCE(SUM(estimated_cost), 0) AS total_cost,
			COALESCE(AVG(estimated_cost), 0) AS avg_cost,
			COALESCE(SUM(estimated_duration), 0) AS total_duration,
			COALESCE(AVG(estimated_duration), 0) AS avg_duration,
			COUNT(*) FILTER (WHERE urgency = 'urgent') AS urgent_count,
			COUNT(*) FILTER (WHERE urgency = 'emergency') AS emergency_count
		FROM service_requests
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing analytics: %w", err)
	}
	return &a, nil
}

// Update applies a partial update
func (r *ServiceRequestRepo) Update(ctx context.Context, id uuid.UUID, req *UpdateServiceRequestRequest) (*ServiceRequest, error) {
	setParts, args, argIndex := buildUpdateSet(req)

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE service_requests
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setParts, ", "), argIndex, requestColumns)

	var sr ServiceRequest
	err := r.db.GetContext(ctx, &sr, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to update service request: %w", err)
	}
	return &sr, nil
}

func buildUpdateSet(req *UpdateServiceRequestRequest) ([]string, []interface{}, int) {
	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argIndex := 1

	addField := func(column string, value interface{}) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if req.Service != nil {
		addField("service", *req.Service)
	}
	if req.Description != nil {
		addField("description", *req.Description)
	}
	if req.PreferredDate != nil {
		addField("preferred_date", *req.PreferredDate)
	}
	if req.PreferredTime != nil {
		addField("preferred_time", *req.PreferredTime)
	}
	if req.Name != nil {
		addField("name", *req.Name)
	}
	if req.Phone != nil {
		addField("phone", *req.Phone)
	}
	if req.Email != nil {
		addField("email", *req.Email)
	}
	if req.Address != nil {
		addField("address", *req.Address)
	}
	if req.City != nil {
		addField("city", *req.City)
	}
	if req.State != nil {
		addField("state", *req.State)
	}
	if req.Zip != nil {
		addField("zip", *req.Zip)
	}
	if req.Status != nil {
		addField("status", *req.Status)
	}
	if req.Priority != nil {
		addField("priority", *req.Priority)
	}
	if req.ScheduledDate != nil {
		addField("scheduled_date", *req.ScheduledDate)
	}
	if req.ScheduledTime != nil {
		addField("scheduled_time", *req.ScheduledTime)
	}
	if req.EstimatedCost != nil {
		addField("estimated_cost", *req.EstimatedCost)
	}
	if req.ActualCost != nil {
		addField("actual_cost", *req.ActualCost)
	}
	if req.ServiceCategory != nil {
		addField("service_category", *req.ServiceCategory)
	}
	if req.Urgency != nil {
		addField("urgency", *req.Urgency)
	}
	if req.CustomerNotes != nil {
		addField("customer_notes", *req.CustomerNotes)
	}
	if req.AdminNotes != nil {
		addField("admin_notes", *req.AdminNotes)
	}
	if req.EstimatedDuration != nil {
		addField("estimated_duration", *req.EstimatedDuration)
	}
	if req.ActualDuration != nil {
		addField("actual_duration", *req.ActualDuration)
	}
	if req.FollowUpRequired != nil {
		addField("follow_up_required", *req.FollowUpRequired)
	}
	if req.AssignedEmployee != nil {
		addField("assigned_employee", *req.AssignedEmployee)
	}
	if req.LastUpdatedBy != nil {
		addField("last_updated_by", *req.LastUpdatedBy)
	}
	if req.Source != nil {
		addField("source", *req.Source)
	}
	if req.Tags != nil {
		addField("tags", *req.Tags)
	}
	if req.Attachment != nil {
		addField("attachment", *req.Attachment)
	}

	return setParts, args, argIndex
}

// ClearAssignedEmployee removes the assignee without touching anything else
func (r *ServiceRequestRepo) ClearAssignedEmployee(ctx context.Context, id uuid.UUID) (*ServiceRequest, error) {
	query := `
		UPDATE service_requests
		SET assigned_employee = NULL, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + requestColumns + `
	`
	var sr ServiceRequest
	err := r.db.GetContext(ctx, &sr, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to clear assignee: %w", err)
	}
	return &sr, nil
}

// SaveLifecycle persists the columns the lifecycle guards mutate
func (r *ServiceRequestRepo) SaveLifecycle(ctx context.Context, sr *ServiceRequest) (*ServiceRequest, error) {
	query := `
		UPDATE service_requests
		SET status = $1,
			employee_accepted = $2,
			employee_accepted_at = $3,
			employee_remarks = $4,
			completed_at = $5,
			completion_notes = $6,
			customer_rating = $7,
			customer_feedback = $8,
			assigned_employee = $9,
			updated_at = NOW()
		WHERE id = $10
		RETURNING ` + requestColumns + `
	`
	var updated ServiceRequest
	err := r.db.GetContext(ctx, &updated, query,
		sr.Status, sr.EmployeeAccepted, sr.EmployeeAcceptedAt, sr.EmployeeRemarks,
		sr.CompletedAt, sr.CompletionNotes, sr.CustomerRating, sr.CustomerFeedback,
		sr.AssignedEmployee, sr.ID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to save service request: %w", err)
	}
	return &updated, nil
}

func (r *ServiceRequestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM service_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service request: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// ListByEmployee retrieves an assignee's jobs, optionally filtered by status
func (r *ServiceRequestRepo) ListByEmployee(ctx context.Context, profileID uuid.UUID, status string) ([]*ServiceRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM service_requests
		WHERE assigned_employee = $1
	`
	args := []interface{}{profileID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	var requests []*ServiceRequest
	err := r.db.SelectContext(ctx, &requests, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee jobs: %w", err)
	}
	return requests, nil
}

// ListRecent retrieves the newest requests up to limit
func (r *ServiceRequestRepo) ListRecent(ctx context.Context, limit int) ([]*ServiceRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM service_requests
		ORDER BY created_at DESC
		LIMIT $1
	`
	var requests []*ServiceRequest
	err := r.db.SelectContext(ctx, &requests, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent requests: %w", err)
	}
	return requests, nil
}

// AnalyticsSummary is the period rollup for the analytics endpoint
type AnalyticsSummary struct {
	TotalRequests     int     `db:"total_requests" json:"totalRequests"`
	TotalCost         float64 `db:"total_cost" json:"totalCost"`
	AvgCost           float64 `db:"avg_cost" json:"avgCost"`
	TotalDuration     float64 `db:"total_duration" json:"totalDuration"`
	AvgDuration       float64 `db:"avg_duration" json:"avgDuration"`
	CompletedRequests int     `db:"completed_requests" json:"completedRequests"`
	UrgentRequests    int     `db:"urgent_requests" json:"urgentRequests"`
	EmergencyRequests int     `db:"emergency_requests" json:"emergencyRequests"`
	AvgRating         float64 `db:"avg_rating" json:"avgRating"`
}

// GetAnalyticsSummary computes the rollup over requests created since the cutoff
func (r *ServiceRequestRepo) GetAnalyticsSummary(ctx context.Context, since time.Time) (*AnalyticsSummary, error) {
	var a AnalyticsSummary
	err := r.db.GetContext(ctx, &a, `
		SELECT
			COUNT(*) AS total_requests,
			COALESCE(SUM(estimated_cost), 0) AS total_cost,
			COALESCE(AVG(estimated_cost), 0) AS avg_cost,
			COALESCE(SUM(estimated_duration), 0) AS total_duration,
			COALESCE(AVG(estimated_duration), 0) AS avg_duration,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed_requests,
			COUNT(*) FILTER (WHERE urgency = 'urgent') AS urgent_requests,
			COUNT(*) FILTER (WHERE urgency = 'emergency') AS emergency_requests,
			COALESCE(AVG(customer_rating), 0) AS avg_rating
		FROM service_requests
		WHERE created_at >= $1
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get analytics summary: %w", err)
	}
	return &a, nil
}

// GetStatusDistribution buckets requests created since the cutoff by status
func (r *ServiceRequestRepo) GetStatusDistribution(ctx context.Context, since time.Time) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.SelectContext(ctx, &rows, `
		SELECT status, COUNT(*) AS count
		FROM service_requests
		WHERE created_at >= $1
		GROUP BY status
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get status distribution: %w", err)
	}
	return rows, nil
}

// CategoryCount is one bucket of the category histogram
type CategoryCount struct {
	Category string `db:"service_category" json:"category"`
	Count    int    `db:"count" json:"count"`
}

// GetCategoryDistribution buckets requests created since the cutoff by category
func (r *ServiceRequestRepo) GetCategoryDistribution(ctx context.Context, since time.Time) ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.SelectContext(ctx, &rows, `
		SELECT service_category, COUNT(*) AS count
		FROM service_requests
		WHERE created_at >= $1
		GROUP BY service_category
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get category distribution: %w", err)
	}
	return rows, nil
}

// MonthlyTrend is one month's volume and cost
type MonthlyTrend struct {
	Month     time.Time `db:"month" json:"month"`
	Count     int       `db:"count" json:"count"`
	TotalCost float64   `db:"total_cost" json:"totalCost"`
}

// GetMonthlyTrends buckets requests created since the cutoff by month
func (r *ServiceRequestRepo) GetMonthlyTrends(ctx context.Context, since time.Time) ([]MonthlyTrend, error) {
	var rows []MonthlyTrend
	err := r.db.SelectContext(ctx, &rows, `
		SELECT date_trunc('month', created_at) AS month,
			COUNT(*) AS count,
			COALESCE(SUM(estimated_cost), 0) AS total_cost
		FROM service_requests
		WHERE created_at >= $1
		GROUP BY date_trunc('month', created_at)
		ORDER BY month ASC
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly trends: %w", err)
	}
	return rows, nil
}

// BulkUpdate applies the same partial update to every listed request and
// returns how many rows changed
func (r *ServiceRequestRepo) BulkUpdate(ctx context.Context, ids []uuid.UUID, req *UpdateServiceRequestRequest) (int64, error) {
	setParts, args, argIndex := buildUpdateSet(req)

	args = append(args, pq.Array(ids))
	query := fmt.Sprintf(`
		UPDATE service_requests
		SET %s
		WHERE id = ANY($%d)
	`, strings.Join(setParts, ", "), argIndex)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk update service requests: %w", err)
	}

	modified, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return modified, nil
}

// CountUrgentOpen counts high-priority requests still awaiting work
func (r *ServiceRequestRepo) CountUrgentOpen(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM service_requests
		WHERE priority IN ('high', 'urgent') AND status IN ('pending', 'in-progress')
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to count urgent requests: %w", err)
	}
	return count, nil
}

// CountCompletedToday counts requests completed within the current day
func (r *ServiceRequestRepo) CountCompletedToday(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM service_requests
		WHERE status = 'completed'
			AND updated_at >= date_trunc('day', NOW())
			AND updated_at < date_trunc('day', NOW()) + INTERVAL '1 day'
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed today: %w", err)
	}
	return count, nil
}

// CountByAssigneeAndStatuses counts an assignee's jobs in the given states
func (r *ServiceRequestRepo) CountByAssigneeAndStatuses(ctx context.Context, profileID uuid.UUID, statuses []string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM service_requests
		WHERE assigned_employee = $1 AND status = ANY($2)
	`, profileID, pq.Array(statuses))
	if err != nil {
		return 0, fmt.Errorf("failed to count assignee jobs: %w", err)
	}
	return count, nil
}
