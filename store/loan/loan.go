package loan

import (
	"context"
	"time"

	"levra/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type loanStore struct {
	db *db.DB
}

// New new loan store
func New(db *db.DB) core.LoanStore {
	return &loanStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Loan{})
		if err := tx.AutoMigrate(core.Loan{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *loanStore) Create(ctx context.Context, tx *db.DB, loan *core.Loan) error {
	return tx.Update().Create(loan).Error
}

func (s *loanStore) Find(ctx context.Context, id uint64) (*core.Loan, error) {
	var loan core.Loan
	if err := s.db.View().Where("id=?", id).First(&loan).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrLoanNotFound
		}
		return nil, err
	}

	return &loan, nil
}

func (s *loanStore) FindByBorrower(ctx context.Context, borrower string) ([]*core.Loan, error) {
	var loans []*core.Loan
	if err := s.db.View().Where("borrower=?", borrower).Order("id").Find(&loans).Error; err != nil {
		return nil, err
	}
	return loans, nil
}

// FindActiveByBorrower returns nil without error when the borrower has no
// active loan
func (s *loanStore) FindActiveByBorrower(ctx context.Context, borrower string) (*core.Loan, error) {
	var loan core.Loan
	err := s.db.View().
		Where("borrower=? and status=?", borrower, core.LoanStatusActive).
		First(&loan).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}

	return &loan, nil
}

func (s *loanStore) ListOverdue(ctx context.Context, since, deadline time.Time, limit int) ([]*core.Loan, error) {
	var loans []*core.Loan
	err := s.db.View().
		Where("status=? and due_date>? and due_date<?", core.LoanStatusActive, since, deadline).
		Order("due_date").
		Limit(limit).
		Find(&loans).Error
	if err != nil {
		return nil, err
	}

	return loans, nil
}

func (s *loanStore) Update(ctx context.Context, tx *db.DB, loan *core.Loan) error {
	version := loan.Version
	loan.Version++

	updated := tx.Update().Model(core.Loan{}).
		Where("id=? and version=?", loan.ID, version).
		Updates(map[string]interface{}{
			"repaid_amount": loan.RepaidAmount,
			"status":        loan.Status,
			"version":       loan.Version,
		})
	if updated.Error != nil {
		return updated.Error
	}

	if updated.RowsAffected == 0 {
		return core.ErrVersionConflict
	}

	return nil
}

func (s *loanStore) CountByStatus(ctx context.Context, status core.LoanStatus) (int64, error) {
	var count int64
	if err := s.db.View().Model(core.Loan{}).Where("status=?", status).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *loanStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.View().Model(core.Loan{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
