package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"

	employeedomain "github.com/ghuser/bizdesk/services/employee/domain"
	"github.com/ghuser/bizdesk/services/employee/domain/models"
)

func TestBusinessRepository_GetByID(t *testing.T) {
	mock := newMockPool(t)
	repo := NewBusinessRepository(mock)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(getBusinessSQL)).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "industry", "plan"}).
			AddRow(id, "Acme Diner", "restaurant", "basic"))

	b, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Plan != models.PlanBasic || b.EmployeeLimit != 25 {
		t.Errorf("unexpected plan/limit: %s/%d", b.Plan, b.EmployeeLimit)
	}
	if !b.Features.Tables {
		t.Error("restaurant businesses must get table features")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestBusinessRepository_GetByID_Errors(t *testing.T) {
	id := uuid.New()

	t.Run("not found", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta(getBusinessSQL)).
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "industry", "plan"}))

		_, err := NewBusinessRepository(mock).GetByID(context.Background(), id)
		if !errors.Is(err, employeedomain.ErrBusinessNotFound) {
			t.Fatalf("expected ErrBusinessNotFound, got %v", err)
		}
	})

	t.Run("unknown plan", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta(getBusinessSQL)).
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "industry", "plan"}).
				AddRow(id, "Acme", "retail", "platinum"))

		_, err := NewBusinessRepository(mock).GetByID(context.Background(), id)
		if !errors.Is(err, employeedomain.ErrInvalidPlan) {
			t.Fatalf("expected ErrInvalidPlan, got %v", err)
		}
	})
}
