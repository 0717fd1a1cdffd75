package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kpione/internal/model"
	"kpione/internal/repository"
)

type postFixture struct {
	db       *gorm.DB
	posts    *PostService
	votes    *VoteService
	alice    *model.User
	bob      *model.User
	voteRepo *repository.VoteRepository
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	db := newTestDB(t)

	postRepo := repository.NewPostRepository(db)
	voteRepo := repository.NewVoteRepository(db)

	alice := &model.User{Username: "alice", Email: "a@x.com", PasswordHash: "h"}
	bob := &model.User{Username: "bob", Email: "b@x.com", PasswordHash: "h"}
	require.NoError(t, db.Create(alice).Error)
	require.NoError(t, db.Create(bob).Error)

	return &postFixture{
		db:       db,
		posts:    NewPostService(postRepo),
		votes:    NewVoteService(voteRepo, postRepo),
		alice:    alice,
		bob:      bob,
		voteRepo: voteRepo,
	}
}

func TestPostService_Create(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.posts.Create(f.alice, CreatePostInput{Title: "T", Content: "C", Published: true})
	require.NoError(t, err)
	require.NotZero(t, post.ID)
	assert.Equal(t, f.alice.ID, post.OwnerID)
	assert.True(t, post.Published)
	assert.False(t, post.Date.IsZero())

	_, err = f.posts.Create(f.alice, CreatePostInput{Title: "", Content: "C"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPostService_CreateUnpublished(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.posts.Create(f.alice, CreatePostInput{Title: "draft", Content: "C", Published: false})
	require.NoError(t, err)

	loaded, err := f.posts.Get(post.ID)
	require.NoError(t, err)
	assert.False(t, loaded.Post.Published)
}

func TestPostService_GetAbsent(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.posts.Get(99)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostService_ListDefaults(t *testing.T) {
	f := newPostFixture(t)

	for i := 0; i < 12; i++ {
		_, err := f.posts.Create(f.alice, CreatePostInput{Title: "post", Content: "C", Published: true})
		require.NoError(t, err)
	}

	// Limit defaults to 10 when unset.
	rows, err := f.posts.List(ListPostsInput{})
	require.NoError(t, err)
	assert.Len(t, rows, 10)

	rest, err := f.posts.List(ListPostsInput{Skip: 10})
	require.NoError(t, err)
	assert.Len(t, rest, 2)
}

func TestPostService_UpdateOwnership(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.posts.Create(f.alice, CreatePostInput{Title: "T", Content: "C", Published: true})
	require.NoError(t, err)

	_, err = f.posts.Update(f.bob, post.ID, UpdatePostInput{Title: "X", Content: "Y", Published: false})
	assert.ErrorIs(t, err, ErrNotPostOwner)

	updated, err := f.posts.Update(f.alice, post.ID, UpdatePostInput{Title: "T2", Content: "C2", Published: false})
	require.NoError(t, err)
	assert.Equal(t, "T2", updated.Title)
	assert.Equal(t, "C2", updated.Content)
	assert.False(t, updated.Published)
	// Ownership never moves on update.
	assert.Equal(t, f.alice.ID, updated.OwnerID)

	_, err = f.posts.Update(f.alice, post.ID+99, UpdatePostInput{Title: "X", Content: "Y", Published: true})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostService_DeleteOwnership(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.posts.Create(f.alice, CreatePostInput{Title: "T", Content: "C", Published: true})
	require.NoError(t, err)

	err = f.posts.Delete(f.bob, post.ID)
	assert.ErrorIs(t, err, ErrNotPostOwner)

	require.NoError(t, f.posts.Delete(f.alice, post.ID))

	_, err = f.posts.Get(post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	err = f.posts.Delete(f.alice, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostService_DeleteRemovesVotes(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.posts.Create(f.alice, CreatePostInput{Title: "T", Content: "C", Published: true})
	require.NoError(t, err)

	_, err = f.votes.Cast(f.alice, post.ID)
	require.NoError(t, err)
	_, err = f.votes.Cast(f.bob, post.ID)
	require.NoError(t, err)

	require.NoError(t, f.posts.Delete(f.alice, post.ID))

	count, err := f.voteRepo.CountForPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
