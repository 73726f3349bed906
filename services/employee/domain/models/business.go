package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	employeedomain "github.com/ghuser/bizdesk/services/employee/domain"
)

// Plan is a subscription plan.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanBasic      Plan = "basic"
	PlanPremium    Plan = "premium"
	PlanEnterprise Plan = "enterprise"
)

// UnlimitedEmployees marks a plan without an employee ceiling.
const UnlimitedEmployees = -1

var planEmployeeLimits = map[Plan]int{
	PlanFree:       5,
	PlanBasic:      25,
	PlanPremium:    100,
	PlanEnterprise: UnlimitedEmployees,
}

// Industry is the vertical a business operates in.
type Industry string

const (
	IndustryRestaurant Industry = "restaurant"
	IndustryHealthcare Industry = "healthcare"
	IndustryRetail     Industry = "retail"
	IndustryOther      Industry = "other"
)

// Features are the product modules enabled for a business.
type Features struct {
	PointOfSale  bool
	Tables       bool
	Inventory    bool
	Patients     bool
	Appointments bool
	TimeClock    bool
}

// FeaturesFor returns the modules an industry gets by default. Every industry has the time clock.
func FeaturesFor(industry Industry) Features {
	f := Features{TimeClock: true}
	switch industry {
	case IndustryRestaurant:
		f.PointOfSale, f.Tables = true, true
	case IndustryHealthcare:
		f.Patients, f.Appointments = true, true
	case IndustryRetail:
		f.PointOfSale, f.Inventory = true, true
	}
	return f
}

// Business is the tenant as seen from the time-clock context (read-only here).
type Business struct {
	ID            uuid.UUID
	Name          string
	Industry      Industry
	Plan          Plan
	EmployeeLimit int
	Features      Features
}

// NewBusiness computes the derived fields (employee limit, features) from plan and industry.
func NewBusiness(id uuid.UUID, name string, industry Industry, plan Plan) (*Business, error) {
	plan = Plan(strings.ToLower(string(plan)))
	limit, ok := planEmployeeLimits[plan]
	if !ok {
		return nil, fmt.Errorf("%w: %q", employeedomain.ErrInvalidPlan, plan)
	}
	industry = Industry(strings.ToLower(string(industry)))
	if industry == "" {
		industry = IndustryOther
	}
	return &Business{
		ID:            id,
		Name:          name,
		Industry:      industry,
		Plan:          plan,
		EmployeeLimit: limit,
		Features:      FeaturesFor(industry),
	}, nil
}

// Unlimited reports whether the plan has no employee ceiling.
func (b *Business) Unlimited() bool {
	return b.EmployeeLimit == UnlimitedEmployees
}
