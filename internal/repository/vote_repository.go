package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kpione/internal/model"
)

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// InTx runs fn against a repository bound to one transaction, committing on
// nil and rolling back on error or panic.
func (r *VoteRepository) InTx(fn func(txRepo *VoteRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&VoteRepository{db: tx})
	})
}

func (r *VoteRepository) Get(postID, userID uint) (*model.Vote, error) {
	var vote model.Vote
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query vote failed: %w", err)
	}
	return &vote, nil
}

// Create inserts the vote row. Constraint violations pass through untranslated
// so the service can map a racing duplicate insert to a conflict.
func (r *VoteRepository) Create(vote *model.Vote) error {
	if err := r.db.Create(vote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
			return err
		}
		return fmt.Errorf("create vote failed: %w", err)
	}
	return nil
}

func (r *VoteRepository) Delete(postID, userID uint) error {
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&model.Vote{}).Error
	if err != nil {
		return fmt.Errorf("delete vote failed: %w", err)
	}
	return nil
}

func (r *VoteRepository) CountForPost(postID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Vote{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count votes failed: %w", err)
	}
	return count, nil
}
