package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/bizdesk/pkg/database"
	employeedomain "github.com/ghuser/bizdesk/services/employee/domain"
	"github.com/ghuser/bizdesk/services/employee/domain/models"
)

const uniqueViolationCode = "23505"

const employeeColumns = `id, business_id, employee_id, name, position, email, avatar, is_active,
       currently_checked_in, last_check_in, last_check_out, created_at, updated_at`

// The WHERE clause is the transition guard: the row only changes if it is
// still in the action's source state when the update runs. GREATEST keeps a
// new stamp from preceding the opposite one (NULLs are ignored).
const applyClockTransitionSQL = `
    UPDATE employees
       SET currently_checked_in = $3::boolean,
           last_check_in  = CASE WHEN $3::boolean THEN GREATEST($4::timestamptz, last_check_out) ELSE last_check_in END,
           last_check_out = CASE WHEN $3::boolean THEN last_check_out ELSE GREATEST($4::timestamptz, last_check_in) END,
           updated_at     = $4::timestamptz
     WHERE business_id = $1
       AND employee_id = $2
       AND is_active
       AND currently_checked_in <> $3::boolean
       AND ($5::timestamptz IS NULL OR last_check_in = $5::timestamptz)
    RETURNING ` + employeeColumns

const getActiveEmployeeSQL = `
    SELECT ` + employeeColumns + `
      FROM employees
     WHERE business_id = $1 AND employee_id = $2 AND is_active
     LIMIT 1`

const listActiveEmployeesSQL = `
    SELECT ` + employeeColumns + `
      FROM employees
     WHERE business_id = $1 AND is_active
     ORDER BY name, employee_id`

const countActiveEmployeesSQL = `SELECT COUNT(*) FROM employees WHERE business_id = $1 AND is_active`

const nextEmployeeSequenceSQL = `SELECT COUNT(*) + 1 FROM employees WHERE business_id = $1`

const lockBusinessSQL = `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`

const insertEmployeeSQL = `
    INSERT INTO employees (id, business_id, employee_id, name, position, email, avatar, is_active,
                           currently_checked_in, last_check_in, last_check_out, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

// EmployeeRepository implements repositories.EmployeeRepository against PostgreSQL.
type EmployeeRepository struct {
	pool database.Queryer
}

// NewEmployeeRepository returns an EmployeeRepository backed by the given pool.
// Calls made with a context carrying a transaction run inside it.
func NewEmployeeRepository(pool database.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// ApplyClockTransition runs the guarded UPDATE. When it touches no row, a
// follow-up read tells a missing employee apart from a rejected transition.
func (r *EmployeeRepository) ApplyClockTransition(ctx context.Context, t models.ClockTransition) (*models.Employee, error) {
	exec := database.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, applyClockTransitionSQL,
		t.BusinessID,
		t.EmployeeID,
		t.Action == models.ActionIn,
		t.At,
		nullableTime(t.SessionStart),
	)

	updated, err := scanEmployee(row)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, employeedomain.ErrEmployeeNotFound) {
		return nil, fmt.Errorf("apply clock transition: %w", err)
	}

	current, err := r.GetActive(ctx, t.BusinessID, t.EmployeeID)
	if err != nil {
		return nil, err
	}
	if current.State() == t.Action.Target() {
		return nil, fmt.Errorf("%w: employee %s is already %s",
			employeedomain.ErrInvalidTransition, t.EmployeeID, t.Action.Past())
	}
	return nil, fmt.Errorf("%w: clock session of employee %s changed",
		employeedomain.ErrInvalidTransition, t.EmployeeID)
}

// GetActive retrieves an active employee by kiosk id. Returns ErrEmployeeNotFound if absent.
func (r *EmployeeRepository) GetActive(ctx context.Context, businessID uuid.UUID, employeeID string) (*models.Employee, error) {
	exec := database.QueryerFromContext(ctx, r.pool)
	e, err := scanEmployee(exec.QueryRow(ctx, getActiveEmployeeSQL, businessID, employeeID))
	if err != nil {
		if errors.Is(err, employeedomain.ErrEmployeeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("query employee: %w", err)
	}
	return e, nil
}

// ListActive returns the active employees of a business.
func (r *EmployeeRepository) ListActive(ctx context.Context, businessID uuid.UUID) ([]*models.Employee, error) {
	exec := database.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, listActiveEmployeesSQL, businessID)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	employees := make([]*models.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return employees, nil
}

// CountActive returns the number of active employees of a business.
func (r *EmployeeRepository) CountActive(ctx context.Context, businessID uuid.UUID) (int, error) {
	exec := database.QueryerFromContext(ctx, r.pool)
	var n int
	if err := exec.QueryRow(ctx, countActiveEmployeesSQL, businessID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return n, nil
}

// NextSequence returns one more than the number of employees ever created for the business.
func (r *EmployeeRepository) NextSequence(ctx context.Context, businessID uuid.UUID) (int, error) {
	exec := database.QueryerFromContext(ctx, r.pool)
	var n int
	if err := exec.QueryRow(ctx, nextEmployeeSequenceSQL, businessID).Scan(&n); err != nil {
		return 0, fmt.Errorf("next employee sequence: %w", err)
	}
	return n, nil
}

// LockBusiness takes a transaction-scoped advisory lock keyed by business ID.
// It must be called inside a transaction.
func (r *EmployeeRepository) LockBusiness(ctx context.Context, businessID uuid.UUID) error {
	exec := database.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, lockBusinessSQL, businessID.String()); err != nil {
		return fmt.Errorf("lock business: %w", err)
	}
	return nil
}

// Save inserts a new employee. Returns ErrEmployeeAlreadyExists on unique constraint violations.
func (r *EmployeeRepository) Save(ctx context.Context, e *models.Employee) error {
	exec := database.QueryerFromContext(ctx, r.pool)
	_, err := exec.Exec(ctx, insertEmployeeSQL,
		e.ID,
		e.BusinessID,
		e.EmployeeID,
		e.Name.String(),
		e.Position,
		e.Email,
		e.Avatar,
		e.IsActive,
		e.CurrentlyCheckedIn,
		nullableTime(e.LastCheckIn),
		nullableTime(e.LastCheckOut),
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: %s", employeedomain.ErrEmployeeAlreadyExists, e.EmployeeID)
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	var (
		e            models.Employee
		name         string
		lastCheckIn  sql.NullTime
		lastCheckOut sql.NullTime
	)
	if err := row.Scan(
		&e.ID,
		&e.BusinessID,
		&e.EmployeeID,
		&name,
		&e.Position,
		&e.Email,
		&e.Avatar,
		&e.IsActive,
		&e.CurrentlyCheckedIn,
		&lastCheckIn,
		&lastCheckOut,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employeedomain.ErrEmployeeNotFound
		}
		return nil, err
	}

	e.Name = models.EmployeeName(name)
	e.LastCheckIn = timePtr(lastCheckIn)
	e.LastCheckOut = timePtr(lastCheckOut)
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return &e, nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
