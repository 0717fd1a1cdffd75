package app

import (
	"errors"

	"gorm.io/gorm"

	"kpione/internal/model"
	"kpione/internal/repository"
)

var (
	ErrAlreadyVoted   = errors.New("user has already voted on this post")
	ErrNoVoteToRemove = errors.New("no vote found to remove")
)

// VoteService enforces the one-vote-per-user-per-post invariant. Each (user,
// post) pair is a two-state toggle: direction=1 casts, direction=0 retracts,
// and both transitions demand their precondition instead of being idempotent.
type VoteService struct {
	voteRepo *repository.VoteRepository
	postRepo *repository.PostRepository
}

func NewVoteService(voteRepo *repository.VoteRepository, postRepo *repository.PostRepository) *VoteService {
	return &VoteService{voteRepo: voteRepo, postRepo: postRepo}
}

// Cast records a vote by requester on the post. The existence check and the
// insert run in one transaction; if a concurrent request slips past the check,
// the composite primary key rejects the insert and that rejection is reported
// as the same conflict.
func (s *VoteService) Cast(requester *model.User, postID uint) (*model.Vote, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	var vote *model.Vote
	err = s.voteRepo.InTx(func(txRepo *repository.VoteRepository) error {
		existing, err := txRepo.Get(postID, requester.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrAlreadyVoted
		}

		v := &model.Vote{PostID: postID, UserID: requester.ID}
		if err := txRepo.Create(v); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyVoted
			}
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return ErrPostNotFound
			}
			return err
		}
		vote = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vote, nil
}

// Retract removes the requester's vote on the post, failing when no vote exists.
func (s *VoteService) Retract(requester *model.User, postID uint) (*model.Vote, error) {
	var removed *model.Vote
	err := s.voteRepo.InTx(func(txRepo *repository.VoteRepository) error {
		existing, err := txRepo.Get(postID, requester.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrNoVoteToRemove
		}

		if err := txRepo.Delete(postID, requester.ID); err != nil {
			return err
		}
		removed = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}
