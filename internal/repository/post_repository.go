package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kpione/internal/model"
)

// PostWithVotes is a post row joined with its vote count. Posts nobody has
// voted on appear with Votes == 0 (left join).
type PostWithVotes struct {
	Post  model.Post `gorm:"embedded" json:"post"`
	Votes int64      `json:"votes"`
}

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// InTx runs fn against a repository bound to one transaction. The transaction
// commits when fn returns nil and rolls back on error or panic, so the
// database handle is released on every exit path.
func (r *PostRepository) InTx(fn func(txRepo *PostRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&PostRepository{db: tx})
	})
}

func (r *PostRepository) Create(post *model.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("create post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post by id failed: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) GetWithVotes(id uint) (*PostWithVotes, error) {
	var row PostWithVotes
	err := r.db.Model(&model.Post{}).
		Select("posts.*, count(votes.post_id) AS votes").
		Joins("LEFT JOIN votes ON votes.post_id = posts.id").
		Where("posts.id = ?", id).
		Group("posts.id").
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post with votes failed: %w", err)
	}
	return &row, nil
}

// ListWithVotes filters by substring match on title and paginates.
func (r *PostRepository) ListWithVotes(search string, limit, offset int) ([]PostWithVotes, error) {
	rows := make([]PostWithVotes, 0, limit)
	err := r.db.Model(&model.Post{}).
		Select("posts.*, count(votes.post_id) AS votes").
		Joins("LEFT JOIN votes ON votes.post_id = posts.id").
		Where("posts.title LIKE ?", "%"+search+"%").
		Group("posts.id").
		Order("posts.id").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list posts failed: %w", err)
	}
	return rows, nil
}

func (r *PostRepository) Save(post *model.Post) error {
	if err := r.db.Save(post).Error; err != nil {
		return fmt.Errorf("save post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Post{}, id).Error; err != nil {
		return fmt.Errorf("delete post failed: %w", err)
	}
	return nil
}

// DeleteVotesForPost clears the vote rows for a post inside the same
// transaction as the post delete. The ON DELETE CASCADE constraint covers
// the same rows at the schema level.
func (r *PostRepository) DeleteVotesForPost(postID uint) error {
	if err := r.db.Where("post_id = ?", postID).Delete(&model.Vote{}).Error; err != nil {
		return fmt.Errorf("delete votes for post failed: %w", err)
	}
	return nil
}
