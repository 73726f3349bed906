package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ghuser/bizdesk/pkg/database"
	employeedomain "github.com/ghuser/bizdesk/services/employee/domain"
	"github.com/ghuser/bizdesk/services/employee/domain/models"
)

const getBusinessSQL = `SELECT id, name, industry, plan FROM businesses WHERE id = $1`

// BusinessRepository reads businesses. Derived fields come from models.NewBusiness.
type BusinessRepository struct {
	pool database.Queryer
}

// NewBusinessRepository returns a BusinessRepository backed by the given pool.
func NewBusinessRepository(pool database.Queryer) *BusinessRepository {
	return &BusinessRepository{pool: pool}
}

// GetByID returns ErrBusinessNotFound when no business has the given id.
func (r *BusinessRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	exec := database.QueryerFromContext(ctx, r.pool)

	var (
		businessID uuid.UUID
		name       string
		industry   string
		plan       string
	)
	if err := exec.QueryRow(ctx, getBusinessSQL, id).Scan(&businessID, &name, &industry, &plan); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employeedomain.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("query business: %w", err)
	}

	b, err := models.NewBusiness(businessID, name, models.Industry(industry), models.Plan(plan))
	if err != nil {
		return nil, fmt.Errorf("business %s: %w", businessID, err)
	}
	return b, nil
}
