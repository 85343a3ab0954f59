package servicerequest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Filter narrows a request listing. Zero values mean no constraint.
type Filter struct {
	Status           string     `json:"status"`
	Priority         string     `json:"priority"`
	ServiceCategory  string     `json:"serviceCategory"`
	Urgency          string     `json:"urgency"`
	AssignedEmployee *uuid.UUID `json:"assignedEmployee"`
	Source           string     `json:"source"`
	Search           string     `json:"search"`
	DateFrom         *time.Time `json:"dateFrom"`
	DateTo           *time.Time `json:"dateTo"`
	CostMin          *float64   `json:"costMin"`
	CostMax          *float64   `json:"costMax"`
}

// Where compiles the filter into a WHERE clause with positional parameters.
// Every value travels as an argument; nothing is interpolated into the SQL.
func (f *Filter) Where() (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	addCondition := func(cond string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argIndex))
		args = append(args, value)
		argIndex++
	}

	if f.Status != "" {
		addCondition("status = $%d", f.Status)
	}
	if f.Priority != "" {
		addCondition("priority = $%d", f.Priority)
	}
	if f.ServiceCategory != "" {
		addCondition("service_category = $%d", f.ServiceCategory)
	}
	if f.Urgency != "" {
		addCondition("urgency = $%d", f.Urgency)
	}
	if f.AssignedEmployee != nil {
		addCondition("assigned_employee = $%d", *f.AssignedEmployee)
	}
	if f.Source != "" {
		addCondition("source = $%d", f.Source)
	}
	if f.DateFrom != nil {
		addCondition("created_at >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		addCondition("created_at <= $%d", *f.DateTo)
	}
	if f.CostMin != nil {
		addCondition("estimated_cost >= $%d", *f.CostMin)
	}
	if f.CostMax != nil {
		addCondition("estimated_cost <= $%d", *f.CostMax)
	}

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		or := fmt.Sprintf(`(name ILIKE $%d OR service ILIKE $%d OR description ILIKE $%d
			OR phone ILIKE $%d OR email ILIKE $%d OR address ILIKE $%d OR tags::text ILIKE $%d)`,
			argIndex, argIndex, argIndex, argIndex, argIndex, argIndex, argIndex)
		conditions = append(conditions, or)
		args = append(args, pattern)
		argIndex++
	}

	if len(conditions) == 0 {
		return "", args
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// sortColumns whitelists the API sort keys against real columns. Anything not
// listed falls back to created_at.
var sortColumns = map[string]string{
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
	"status":        "status",
	"priority":      "priority",
	"urgency":       "urgency",
	"name":          "name",
	"service":       "service",
	"estimatedCost": "estimated_cost",
	"scheduledDate": "scheduled_date",
}

// OrderBy resolves a sort key and direction to a safe ORDER BY clause
func OrderBy(sortBy, sortOrder string) string {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = "created_at"
	}

	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}

	return fmt.Sprintf("ORDER BY %s %s", column, direction)
}

// Page normalizes pagination inputs
type Page struct {
	Number int `json:"page"`
	Limit  int `json:"limit"`
}

// Normalize clamps the page to sane bounds, defaulting to page 1 of 20
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

// Offset is the row offset for the normalized page
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}
