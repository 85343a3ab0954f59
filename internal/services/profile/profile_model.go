package profile

import (
	"database/sql/driver"
	"fmt"
	"math"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/google/uuid"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

func (v VerificationStatus) Valid() bool {
	return v == VerificationPending || v == VerificationApproved || v == VerificationRejected
}

// StringList is a JSONB-backed list of strings
type StringList []string

// Scan implements the sql.Scanner interface for database/sql
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	return json.Unmarshal(bytes, l)
}

// Value implements the driver.Valuer interface for database/sql
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(l)
}

// Certification is an uploaded credential document
type Certification struct {
	Name       string    `json:"name"`
	FileURL    string    `json:"fileUrl"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Certifications is a JSONB-backed list of certifications
type Certifications []Certification

// Scan implements the sql.Scanner interface for database/sql
func (c *Certifications) Scan(value interface{}) error {
	if value == nil {
		*c = Certifications{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Certifications", value)
	}

	return json.Unmarshal(bytes, c)
}

// Value implements the driver.Valuer interface for database/sql
func (c Certifications) Value() (driver.Value, error) {
	if c == nil {
		return json.Marshal([]Certification{})
	}
	return json.Marshal(c)
}

// WorkExperience is one past engagement on a profile
type WorkExperience struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// WorkExperiences is a JSONB-backed list of work experiences
type WorkExperiences []WorkExperience

// Scan implements the sql.Scanner interface for database/sql
func (w *WorkExperiences) Scan(value interface{}) error {
	if value == nil {
		*w = WorkExperiences{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into WorkExperiences", value)
	}

	return json.Unmarshal(bytes, w)
}

// Value implements the driver.Valuer interface for database/sql
func (w WorkExperiences) Value() (driver.Value, error) {
	if w == nil {
		return json.Marshal([]WorkExperience{})
	}
	return json.Marshal(w)
}

type Profile struct {
	ID     uuid.UUID `db:"id" json:"id"`
	UserID uuid.UUID `db:"user_id" json:"userId"`

	FullName     *string `db:"full_name" json:"fullName"`
	Email        *string `db:"email" json:"email"`
	Phone        *string `db:"phone" json:"phone"`
	City         *string `db:"city" json:"city"`
	AddressLine1 *string `db:"address_line1" json:"addressLine1"`
	AddressLine2 *string `db:"address_line2" json:"addressLine2"`
	State        *string `db:"state" json:"state"`
	PostalCode   *string `db:"postal_code" json:"postalCode"`
	Country      *string `db:"country" json:"country"`
	AvatarURL    *string `db:"avatar_url" json:"avatarUrl"`
	Bio          *string `db:"bio" json:"bio"`

	Designation    *string  `db:"designation" json:"designation"`
	Level          *string  `db:"level" json:"level"`
	ExpectedSalary *float64 `db:"expected_salary" json:"expectedSalary"`

	Skills         StringList      `db:"skills" json:"skills"`
	Certifications Certifications  `db:"certifications" json:"certifications"`
	WorkExperience WorkExperiences `db:"work_experience" json:"workExperience"`

	Verified           bool               `db:"verified" json:"verified"`
	VerificationStatus VerificationStatus `db:"verification_status" json:"verificationStatus"`
	VerificationNotes  *string            `db:"verification_notes" json:"verificationNotes"`

	ProfileComplete bool       `db:"profile_complete" json:"profileComplete"`
	Rating          float64    `db:"rating" json:"rating"`
	TotalJobs       int        `db:"total_jobs" json:"totalJobs"`
	AppliedDate     *time.Time `db:"applied_date" json:"appliedDate"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// UpdateProfileRequest is the PATCH payload for self-service profile edits.
// Name/Email/Password flow through to the account; everything else lands on
// the profile row. Pointer fields distinguish absent from empty.
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`

	FullName     *string `json:"fullName"`
	Phone        *string `json:"phone"`
	City         *string `json:"city"`
	AddressLine1 *string `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2"`
	State        *string `json:"state"`
	PostalCode   *string `json:"postalCode"`
	Country      *string `json:"country"`
	AvatarURL    *string `json:"avatarUrl"`
	Bio          *string `json:"bio"`

	Designation    *string  `json:"designation"`
	Level          *string  `json:"level"`
	ExpectedSalary *float64 `json:"expectedSalary"`

	Skills         *StringList      `json:"skills"`
	WorkExperience *WorkExperiences `json:"workExperience"`
}

// EmployeeApplication is the admin-facing projection of a profile
type EmployeeApplication struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Skills           StringList `json:"skills"`
	ExperienceLevel  string     `json:"experienceLevel"`
	Rating           float64    `json:"rating"`
	PreviousJobCount int        `json:"previousJobCount"`
	Certifications   []string   `json:"certifications"`
	ExpectedSalary   float64    `json:"expectedSalary"`
	Status           string     `json:"status"`
	AppliedDate      time.Time  `json:"appliedDate"`
	Location         string     `json:"location"`
	AvatarURL        *string    `json:"avatarUrl"`
	Bio              *string    `json:"bio"`
	Verified         bool       `json:"verified"`
}

// Completion summarizes how filled-in a profile is
type Completion struct {
	Completion      int      `json:"completion"`
	MissingFields   []string `json:"missingFields"`
	ProfileComplete bool     `json:"profileComplete"`
}

// completionFields are the attributes a profile needs before an employee can
// be put on jobs.
var completionFields = []string{"fullName", "email", "phone", "city", "level", "skills"}

// ComputeCompletion scores the profile against the required field set.
// A nil profile scores zero. Complete means at least 80 percent filled.
func ComputeCompletion(p *Profile) Completion {
	if p == nil {
		return Completion{Completion: 0, MissingFields: []string{}, ProfileComplete: false}
	}

	missing := []string{}
	for _, field := range completionFields {
		if !p.hasField(field) {
			missing = append(missing, field)
		}
	}

	total := len(completionFields)
	completion := int(math.Round(float64(total-len(missing)) / float64(total) * 100))

	return Completion{
		Completion:      completion,
		MissingFields:   missing,
		ProfileComplete: completion >= 80,
	}
}

func (p *Profile) hasField(field string) bool {
	switch field {
	case "fullName":
		return p.FullName != nil && *p.FullName != ""
	case "email":
		return p.Email != nil && *p.Email != ""
	case "phone":
		return p.Phone != nil && *p.Phone != ""
	case "city":
		return p.City != nil && *p.City != ""
	case "level":
		return p.Level != nil && *p.Level != ""
	case "skills":
		return len(p.Skills) > 0
	default:
		return false
	}
}
