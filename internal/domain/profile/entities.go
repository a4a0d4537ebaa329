package profile

import (
	"errors"
	"time"

	"instantcredit-backend/internal/domain/application"
)

var ErrNotFound = errors.New("customer profile not found")

// CustomerProfile is one-to-one with a customer user. CreditScore and
// RiskLevel mirror the most recent scoring result; the engine reads the
// profile as context but does not feed it back into the score.
type CustomerProfile struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// FK to users.user_id (public 32-char hex id)
	UserID           string                `gorm:"column:user_id;type:char(32);not null;uniqueIndex:ux_profiles_user_id" json:"user_id"`
	DateOfBirth      *time.Time            `gorm:"column:date_of_birth" json:"date_of_birth,omitempty"`
	Address          string                `gorm:"column:address;type:text" json:"address,omitempty"`
	EmploymentStatus string                `gorm:"column:employment_status;size:64" json:"employment_status,omitempty"`
	EmployerName     string                `gorm:"column:employer_name;size:255" json:"employer_name,omitempty"`
	AnnualIncome     float64               `gorm:"column:annual_income;type:decimal(18,2)" json:"annual_income"`
	WorkExperience   int                   `gorm:"column:work_experience" json:"work_experience"`
	CreditScore      int                   `gorm:"column:credit_score;default:0" json:"credit_score"`
	RiskLevel        application.RiskLevel `gorm:"column:risk_level;size:16;default:'unknown'" json:"risk_level"`
	CreatedAt        time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CustomerProfile) TableName() string { return "customer_profiles" }
