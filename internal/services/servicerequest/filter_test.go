package servicerequest

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterWhere_Empty(t *testing.T) {
	where, args := (&Filter{}).Where()

	assert.Equal(t, "", where)
	assert.Empty(t, args)
}

func TestFilterWhere_SingleCondition(t *testing.T) {
	where, args := (&Filter{Status: "pending"}).Where()

	assert.Equal(t, "WHERE status = $1", where)
	assert.Equal(t, []interface{}{"pending"}, args)
}

func TestFilterWhere_CombinesConditions(t *testing.T) {
	employee := uuid.New()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	min := 100.0

	f := &Filter{
		Status:           "pending",
		Priority:         "high",
		AssignedEmployee: &employee,
		DateFrom:         &from,
		CostMin:          &min,
	}

	where, args := f.Where()

	assert.True(t, strings.HasPrefix(where, "WHERE "))
	assert.Contains(t, where, "status = $1")
	assert.Contains(t, where, "priority = $2")
	assert.Contains(t, where, "assigned_employee = $3")
	assert.Contains(t, where, "created_at >= $4")
	assert.Contains(t, where, "estimated_cost >= $5")
	require.Len(t, args, 5)
	assert.Equal(t, "pending", args[0])
	assert.Equal(t, employee, args[2])
}

func TestFilterWhere_SearchIsParameterized(t *testing.T) {
	// a hostile search term must travel as an argument, never inline
	f := &Filter{Search: "'; DROP TABLE service_requests; --"}

	where, args := f.Where()

	assert.NotContains(t, where, "DROP TABLE")
	require.Len(t, args, 1)
	assert.Equal(t, "%'; DROP TABLE service_requests; --%", args[0])
	assert.Contains(t, where, "name ILIKE $1")
	assert.Contains(t, where, "tags::text ILIKE $1")
}

func TestFilterWhere_SearchAfterFiltersUsesNextIndex(t *testing.T) {
	f := &Filter{Status: "pending", Search: "leak"}

	where, args := f.Where()

	assert.Contains(t, where, "status = $1")
	assert.Contains(t, where, "name ILIKE $2")
	require.Len(t, args, 2)
	assert.Equal(t, "%leak%", args[1])
}

func TestOrderBy_Whitelist(t *testing.T) {
	assert.Equal(t, "ORDER BY created_at DESC", OrderBy("createdAt", "desc"))
	assert.Equal(t, "ORDER BY estimated_cost ASC", OrderBy("estimatedCost", "asc"))
	assert.Equal(t, "ORDER BY priority DESC", OrderBy("priority", ""))
}

func TestOrderBy_UnknownColumnFallsBack(t *testing.T) {
	assert.Equal(t, "ORDER BY created_at DESC", OrderBy("password_hash; --", "desc"))
	assert.Equal(t, "ORDER BY created_at ASC", OrderBy("", "asc"))
}

func TestPageNormalize(t *testing.T) {
	p := Page{}.Normalize()
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset())

	p = Page{Number: 3, Limit: 10}.Normalize()
	assert.Equal(t, 20, p.Offset())

	p = Page{Number: -5, Limit: 1000}.Normalize()
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 100, p.Limit)
}
