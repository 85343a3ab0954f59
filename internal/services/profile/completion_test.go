package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestComputeCompletion_NilProfile(t *testing.T) {
	got := ComputeCompletion(nil)

	assert.Equal(t, 0, got.Completion)
	assert.Empty(t, got.MissingFields)
	assert.False(t, got.ProfileComplete)
}

func TestComputeCompletion_EmptyProfile(t *testing.T) {
	got := ComputeCompletion(&Profile{})

	assert.Equal(t, 0, got.Completion)
	assert.ElementsMatch(t, []string{"fullName", "email", "phone", "city", "level", "skills"}, got.MissingFields)
	assert.False(t, got.ProfileComplete)
}

func TestComputeCompletion_FullProfile(t *testing.T) {
	p := &Profile{
		FullName: strPtr("Dana Smith"),
		Email:    strPtr("dana@example.com"),
		Phone:    strPtr("555-0100"),
		City:     strPtr("Austin"),
		Level:    strPtr("Expert"),
		Skills:   StringList{"plumbing"},
	}

	got := ComputeCompletion(p)

	assert.Equal(t, 100, got.Completion)
	assert.Empty(t, got.MissingFields)
	assert.True(t, got.ProfileComplete)
}

func TestComputeCompletion_CompleteAtFiveOfSix(t *testing.T) {
	// 5/6 rounds to 83, which clears the 80 percent bar.
	p := &Profile{
		FullName: strPtr("Dana Smith"),
		Email:    strPtr("dana@example.com"),
		Phone:    strPtr("555-0100"),
		City:     strPtr("Austin"),
		Level:    strPtr("Expert"),
	}

	got := ComputeCompletion(p)

	assert.Equal(t, 83, got.Completion)
	assert.Equal(t, []string{"skills"}, got.MissingFields)
	assert.True(t, got.ProfileComplete)
}

func TestComputeCompletion_IncompleteAtFourOfSix(t *testing.T) {
	p := &Profile{
		FullName: strPtr("Dana Smith"),
		Email:    strPtr("dana@example.com"),
		Phone:    strPtr("555-0100"),
		City:     strPtr("Austin"),
	}

	got := ComputeCompletion(p)

	assert.Equal(t, 67, got.Completion)
	assert.ElementsMatch(t, []string{"level", "skills"}, got.MissingFields)
	assert.False(t, got.ProfileComplete)
}

func TestComputeCompletion_EmptyStringsDoNotCount(t *testing.T) {
	p := &Profile{
		FullName: strPtr(""),
		Skills:   StringList{},
	}

	got := ComputeCompletion(p)

	assert.Contains(t, got.MissingFields, "fullName")
	assert.Contains(t, got.MissingFields, "skills")
}
