package services

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/cinematik/backend/internal/domain"
	"github.com/cinematik/backend/internal/dto"
	"github.com/cinematik/backend/internal/helper"
	"github.com/cinematik/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*domain.User{}}
}

func (f *fakeUserRepo) CreateUser(user *domain.User) (*domain.User, error) {
	if _, ok := f.byEmail[user.Email]; ok {
		return nil, repository.ErrConflict
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	f.byEmail[user.Email] = user
	return user, nil
}

func (f *fakeUserRepo) FindUserByEmail(email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindUserByID(userID string) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) SaveUser(user *domain.User) error {
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) UpdatePasswordHash(userID, passwordHash string) error {
	u, err := f.FindUserByID(userID)
	if err != nil {
		return err
	}
	hash := passwordHash
	u.PasswordHash = &hash
	return nil
}

func (f *fakeUserRepo) DeleteUser(userID string) error {
	u, err := f.FindUserByID(userID)
	if err != nil {
		return err
	}
	delete(f.byEmail, u.Email)
	return nil
}

type fakeResetRepo struct {
	tokens []*domain.PasswordResetToken
	nextID int
}

func (f *fakeResetRepo) Create(token *domain.PasswordResetToken) error {
	for _, t := range f.tokens {
		if t.UserID == token.UserID && !t.Used {
			return repository.ErrConflict
		}
	}
	f.nextID++
	token.ID = fmt.Sprintf("reset-%d", f.nextID)
	f.tokens = append(f.tokens, token)
	return nil
}

func (f *fakeResetRepo) FindValid(token string) (*domain.PasswordResetToken, error) {
	for _, t := range f.tokens {
		if t.Token == token && !t.Used && t.ExpiresAt.After(time.Now()) {
			return t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeResetRepo) FindActiveByUser(userID string) (*domain.PasswordResetToken, error) {
	for _, t := range f.tokens {
		if t.UserID == userID && !t.Used && t.ExpiresAt.After(time.Now()) {
			return t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeResetRepo) MarkUsed(tokenID string) error {
	for _, t := range f.tokens {
		if t.ID == tokenID {
			t.Used = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeResetRepo) PurgeStaleForUser(userID string) error {
	kept := f.tokens[:0]
	for _, t := range f.tokens {
		if t.UserID == userID && (t.Used || !t.ExpiresAt.After(time.Now())) {
			continue
		}
		kept = append(kept, t)
	}
	f.tokens = kept
	return nil
}

func (f *fakeResetRepo) DeleteExpired() (int64, error) {
	var n int64
	kept := f.tokens[:0]
	for _, t := range f.tokens {
		if !t.ExpiresAt.After(time.Now()) {
			n++
			continue
		}
		kept = append(kept, t)
	}
	f.tokens = kept
	return n, nil
}

// stubReviewRepo reports no review for anyone; enough for the is_left_review
// field on auth responses.
type stubReviewRepo struct{}

func (stubReviewRepo) CreateReview(review *domain.Review) (*domain.Review, error) {
	return review, nil
}
func (stubReviewRepo) FindReviewByID(string) (*domain.Review, error) {
	return nil, repository.ErrNotFound
}
func (stubReviewRepo) FindReviewByUser(string) (*dto.ReviewWithUser, error) {
	return nil, repository.ErrNotFound
}
func (stubReviewRepo) ListReviews(int, int) ([]dto.ReviewWithUser, error) { return nil, nil }
func (stubReviewRepo) ListReviewsExcludingUser(string, int, int) ([]dto.ReviewWithUser, error) {
	return nil, nil
}
func (stubReviewRepo) CountReviews() (int64, error)                    { return 0, nil }
func (stubReviewRepo) CountReviewsExcludingUser(string) (int64, error) { return 0, nil }
func (stubReviewRepo) SaveReview(*domain.Review) error                 { return nil }
func (stubReviewRepo) DeleteReview(string) error                       { return nil }

type fakeProducer struct {
	keys   []string
	values [][]byte
}

func (f *fakeProducer) PublishMessage(key, value []byte) error {
	f.keys = append(f.keys, string(key))
	f.values = append(f.values, value)
	return nil
}

func newAuthFixture() (AuthService, *fakeUserRepo, *fakeResetRepo, *fakeProducer) {
	users := newFakeUserRepo()
	resets := &fakeResetRepo{}
	producer := &fakeProducer{}
	auth := helper.SetupAuth("test-secret", 60)
	svc := NewAuthService(users, resets, stubReviewRepo{}, auth, producer)
	return svc, users, resets, producer
}

func TestSignUp(t *testing.T) {
	svc, users, _, _ := newAuthFixture()

	data, err := svc.SignUp(dto.SignUpRequest{Name: "alice", Email: "Alice@Example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", data.User.Name)
	assert.Equal(t, "alice@example.com", data.User.Email)
	assert.False(t, data.User.IsLeftReview)
	assert.NotEmpty(t, data.Tokens.AccessToken)
	assert.NotEmpty(t, data.Tokens.RefreshToken)

	stored := users.byEmail["alice@example.com"]
	require.NotNil(t, stored)
	require.NotNil(t, stored.PasswordHash)
	assert.NotEqual(t, "s3cret", *stored.PasswordHash)

	_, err = svc.SignUp(dto.SignUpRequest{Name: "alice2", Email: "alice@example.com", Password: "other"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestSignIn(t *testing.T) {
	svc, users, _, _ := newAuthFixture()

	_, err := svc.SignUp(dto.SignUpRequest{Name: "alice", Email: "alice@example.com", Password: "s3cret"})
	require.NoError(t, err)

	data, err := svc.SignIn(dto.SignInRequest{Email: "alice@example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", data.User.Name)

	_, err = svc.SignIn(dto.SignInRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(dto.SignInRequest{Email: "nobody@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// A social-only account has no password to sign in with.
	social, err := users.CreateUser(&domain.User{Name: "bob", Email: "bob@example.com"})
	require.NoError(t, err)
	_, err = svc.SignIn(dto.SignInRequest{Email: social.Email, Password: "anything"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSocialLogin(t *testing.T) {
	svc, users, _, _ := newAuthFixture()

	data, err := svc.SocialLogin(dto.SocialLoginRequest{Name: "carol", Email: "carol@example.com", Picture: "https://cdn/pic.png"})
	require.NoError(t, err)
	assert.Equal(t, "carol", data.User.Name)
	require.NotNil(t, data.User.Picture)
	assert.Equal(t, "https://cdn/pic.png", *data.User.Picture)
	assert.Nil(t, users.byEmail["carol@example.com"].PasswordHash)

	// Second login must reuse the account, not create another one.
	again, err := svc.SocialLogin(dto.SocialLoginRequest{Name: "carol", Email: "carol@example.com"})
	require.NoError(t, err)
	assert.Equal(t, data.User.ID, again.User.ID)
	assert.Len(t, users.byEmail, 1)
}

func TestRefreshAccessToken(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	data, err := svc.SignUp(dto.SignUpRequest{Name: "alice", Email: "alice@example.com", Password: "s3cret"})
	require.NoError(t, err)

	tokens, err := svc.RefreshAccessToken(data.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Empty(t, tokens.RefreshToken)

	auth := helper.SetupAuth("test-secret", 60)
	claims, err := auth.VerifyToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)

	_, err = svc.RefreshAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestForgotPassword(t *testing.T) {
	svc, _, resets, producer := newAuthFixture()

	_, err := svc.SignUp(dto.SignUpRequest{Name: "alice", Email: "alice@example.com", Password: "s3cret"})
	require.NoError(t, err)

	// Unknown emails still report success and leave no trace.
	require.NoError(t, svc.ForgotPassword("nobody@example.com"))
	assert.Empty(t, resets.tokens)
	assert.Empty(t, producer.values)

	require.NoError(t, svc.ForgotPassword("alice@example.com"))
	require.Len(t, resets.tokens, 1)
	require.Len(t, producer.values, 1)
	assert.Equal(t, "user.reset_password", producer.keys[0])

	var event dto.PasswordResetEvent
	require.NoError(t, json.Unmarshal(producer.values[0], &event))
	assert.Equal(t, "alice@example.com", event.Email)
	assert.Equal(t, resets.tokens[0].Token, event.Token)

	// A second request within the window is refused.
	assert.ErrorIs(t, svc.ForgotPassword("alice@example.com"), ErrResetPending)
	assert.Len(t, resets.tokens, 1)

	// Once the pending token expires a new one can be issued.
	resets.tokens[0].ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, svc.ForgotPassword("alice@example.com"))
	require.Len(t, resets.tokens, 1)
	assert.NotEqual(t, event.Token, resets.tokens[0].Token)
}

func TestResetPassword(t *testing.T) {
	svc, _, resets, _ := newAuthFixture()

	_, err := svc.SignUp(dto.SignUpRequest{Name: "alice", Email: "alice@example.com", Password: "old-pass"})
	require.NoError(t, err)
	require.NoError(t, svc.ForgotPassword("alice@example.com"))
	token := resets.tokens[0].Token

	require.NoError(t, svc.ResetPassword(token, "new-pass"))

	_, err = svc.SignIn(dto.SignInRequest{Email: "alice@example.com", Password: "new-pass"})
	assert.NoError(t, err)
	_, err = svc.SignIn(dto.SignInRequest{Email: "alice@example.com", Password: "old-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Single use.
	assert.ErrorIs(t, svc.ResetPassword(token, "another-pass"), ErrResetTokenInvalid)
	assert.ErrorIs(t, svc.ResetPassword("unknown-token", "pass"), ErrResetTokenInvalid)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, _, resets, _ := newAuthFixture()

	_, err := svc.SignUp(dto.SignUpRequest{Name: "alice", Email: "alice@example.com", Password: "old-pass"})
	require.NoError(t, err)
	require.NoError(t, svc.ForgotPassword("alice@example.com"))

	resets.tokens[0].ExpiresAt = time.Now().Add(-time.Minute)
	assert.ErrorIs(t, svc.ResetPassword(resets.tokens[0].Token, "new-pass"), ErrResetTokenInvalid)
}

func TestCleanupExpiredTokens(t *testing.T) {
	svc, _, resets, _ := newAuthFixture()

	resets.tokens = []*domain.PasswordResetToken{
		{ID: "a", UserID: "u1", Token: "t1", ExpiresAt: time.Now().Add(-time.Hour)},
		{ID: "b", UserID: "u2", Token: "t2", ExpiresAt: time.Now().Add(time.Hour)},
	}

	svc.CleanupExpiredTokens()

	require.Len(t, resets.tokens, 1)
	assert.Equal(t, "b", resets.tokens[0].ID)
}
