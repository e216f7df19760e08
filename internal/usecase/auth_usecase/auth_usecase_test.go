package auth_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
	auth "app/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

var _ repository.UserRepository = (*MockUserRepo)(nil)

// テスト用の固定issuer
type stubIssuer struct{}

func (s *stubIssuer) Issue(userID int64, now time.Time) (string, time.Time, error) {
	return "stub-token", now.Add(time.Hour), nil
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func newRegisterUC(userRepo repository.UserRepository) *auth.RegisterUserUsecase {
	return auth.NewRegisterUserUsecase(
		userRepo,
		auth.NewBcryptPasswordHasher(bcrypt.MinCost),
		&stubIssuer{},
		&fixedClock{now: time.Unix(1700000000, 0)},
	)
}

// =====================
// Register
// =====================

// 正常：ハッシュを保存してトークンを返す
func TestRegister_Success(t *testing.T) {
	userRepo := new(MockUserRepo)
	userRepo.On("FindByEmail", mock.Anything, "albert@test.com").Return(nil, nil)
	userRepo.On("FindByUsername", mock.Anything, "albert").Return(nil, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			u := args.Get(1).(*model.User)
			u.ID = 7 // DBの採番を模す
		}).
		Return(nil)

	uc := newRegisterUC(userRepo)

	out, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Username: "albert",
		Email:    "albert@test.com",
		Password: "correct-horse-battery",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.User.ID)
	assert.Equal(t, "stub-token", out.Token.AccessToken)
	assert.Equal(t, 3600, out.Token.ExpiresIn)

	//平文では保存しない
	assert.NotEqual(t, "correct-horse-battery", out.User.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(out.User.PasswordHash), []byte("correct-horse-battery")))

	userRepo.AssertExpectations(t)
}

// email重複 => 409系エラー
func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepo)
	userRepo.On("FindByEmail", mock.Anything, "albert@test.com").
		Return(&model.User{ID: 1, Email: "albert@test.com"}, nil)

	uc := newRegisterUC(userRepo)

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Username: "albert",
		Email:    "albert@test.com",
		Password: "correct-horse-battery",
	})
	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)

	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 短すぎるパスワード => エラー、ストアには触らない
func TestRegister_ShortPassword(t *testing.T) {
	userRepo := new(MockUserRepo)

	uc := newRegisterUC(userRepo)

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Username: "albert",
		Email:    "albert@test.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)

	userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

// =====================
// Login
// =====================

func newLoginUC(userRepo repository.UserRepository) *auth.LoginUsecase {
	return auth.NewLoginUsecase(
		userRepo,
		auth.NewBcryptPasswordVerifier(),
		&stubIssuer{},
		&fixedClock{now: time.Unix(1700000000, 0)},
	)
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	return string(h)
}

// 正常：トークンを返す
func TestLogin_Success(t *testing.T) {
	userRepo := new(MockUserRepo)
	userRepo.On("FindByEmail", mock.Anything, "albert@test.com").Return(&model.User{
		ID:           7,
		Username:     "albert",
		Email:        "albert@test.com",
		PasswordHash: mustHash(t, "correct-horse-battery"),
	}, nil)

	uc := newLoginUC(userRepo)

	out, err := uc.Execute(context.Background(), auth.LoginInput{
		Email:    "albert@test.com",
		Password: "correct-horse-battery",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.User.ID)
	assert.Equal(t, "stub-token", out.Token.AccessToken)
}

// パスワード違い => ErrInvalidCredentials
func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepo)
	userRepo.On("FindByEmail", mock.Anything, "albert@test.com").Return(&model.User{
		ID:           7,
		Email:        "albert@test.com",
		PasswordHash: mustHash(t, "correct-horse-battery"),
	}, nil)

	uc := newLoginUC(userRepo)

	_, err := uc.Execute(context.Background(), auth.LoginInput{
		Email:    "albert@test.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

// 未知のemailでも同じエラー（どちらが違ったかは教えない）
func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepo)
	userRepo.On("FindByEmail", mock.Anything, "ghost@test.com").Return(nil, nil)

	uc := newLoginUC(userRepo)

	_, err := uc.Execute(context.Background(), auth.LoginInput{
		Email:    "ghost@test.com",
		Password: "whatever-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
