package app

import (
	"errors"
	"strings"

	"kpione/internal/model"
	"kpione/internal/repository"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("not the owner of this post")
)

const defaultListLimit = 10

type PostService struct {
	postRepo *repository.PostRepository
}

type CreatePostInput struct {
	Title     string
	Content   string
	Published bool
}

type UpdatePostInput struct {
	Title     string
	Content   string
	Published bool
}

type ListPostsInput struct {
	Search string
	Limit  int
	Skip   int
}

func NewPostService(postRepo *repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) Create(requester *model.User, input CreatePostInput) (*model.Post, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, ErrInvalidInput
	}

	post := &model.Post{
		OwnerID:   requester.ID,
		Title:     input.Title,
		Content:   input.Content,
		Published: input.Published,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Get(id uint) (*repository.PostWithVotes, error) {
	row, err := s.postRepo.GetWithVotes(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrPostNotFound
	}
	return row, nil
}

func (s *PostService) List(input ListPostsInput) ([]repository.PostWithVotes, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	skip := input.Skip
	if skip < 0 {
		skip = 0
	}
	return s.postRepo.ListWithVotes(input.Search, limit, skip)
}

// Update applies title, content and published after the ownership check.
// The owner is immutable after creation; there is no path that writes
// OwnerID on an existing post.
func (s *PostService) Update(requester *model.User, id uint, input UpdatePostInput) (*model.Post, error) {
	var updated *model.Post
	err := s.postRepo.InTx(func(txRepo *repository.PostRepository) error {
		post, err := txRepo.GetByID(id)
		if err != nil {
			return err
		}
		if post == nil {
			return ErrPostNotFound
		}
		if post.OwnerID != requester.ID {
			return ErrNotPostOwner
		}

		post.Title = input.Title
		post.Content = input.Content
		post.Published = input.Published
		if err := txRepo.Save(post); err != nil {
			return err
		}
		updated = post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the post and its vote rows in one transaction.
func (s *PostService) Delete(requester *model.User, id uint) error {
	return s.postRepo.InTx(func(txRepo *repository.PostRepository) error {
		post, err := txRepo.GetByID(id)
		if err != nil {
			return err
		}
		if post == nil {
			return ErrPostNotFound
		}
		if post.OwnerID != requester.ID {
			return ErrNotPostOwner
		}

		if err := txRepo.DeleteVotesForPost(id); err != nil {
			return err
		}
		return txRepo.Delete(id)
	})
}
