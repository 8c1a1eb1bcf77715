package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printops/inkwell/internal/user/domain"
	"github.com/printops/inkwell/internal/user/usecase/command"
	"github.com/printops/inkwell/pkg/auth"
)

type fakeUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*domain.User)}
}

func (r *fakeUserRepo) Create(user *domain.User) error {
	r.nextID++
	user.ID = r.nextID
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindAll(limit, offset int) ([]domain.User, error) {
	var out []domain.User
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

func (r *fakeUserRepo) FindByRole(role string, limit, offset int) ([]domain.User, error) {
	var out []domain.User
	for _, user := range r.users {
		if user.Role == role {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(id uint) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Count() (int64, error) {
	return int64(len(r.users)), nil
}

func registerUser(t *testing.T, repo *fakeUserRepo, username, role string) *domain.User {
	t.Helper()
	handler := command.NewRegisterUserHandler(repo)
	user, err := handler.Handle(command.RegisterUserCommand{
		Username: username,
		Email:    username + "@printops.example",
		Password: "hunter22",
		FullName: "Test User",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func TestRegisterUser(t *testing.T) {
	repo := newFakeUserRepo()
	user := registerUser(t, repo, "alice", "employee")

	assert.NotZero(t, user.ID)
	assert.Equal(t, domain.RoleEmployee, user.Role)
	assert.True(t, user.IsActive)
	// Stored password is a bcrypt hash, not the plaintext
	assert.NotEqual(t, "hunter22", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "hunter22"))
}

func TestRegisterUser_DefaultsToEmployee(t *testing.T) {
	repo := newFakeUserRepo()
	user := registerUser(t, repo, "bob", "")
	assert.Equal(t, domain.RoleEmployee, user.Role)
}

func TestRegisterUser_RejectsUnknownRole(t *testing.T) {
	repo := newFakeUserRepo()
	handler := command.NewRegisterUserHandler(repo)

	_, err := handler.Handle(command.RegisterUserCommand{
		Username: "carol",
		Email:    "carol@printops.example",
		Password: "hunter22",
		FullName: "Carol",
		Role:     "superuser",
	})
	assert.Error(t, err)
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	registerUser(t, repo, "alice", "employee")
	handler := command.NewRegisterUserHandler(repo)

	_, err := handler.Handle(command.RegisterUserCommand{
		Username: "alice",
		Email:    "other@printops.example",
		Password: "hunter22",
		FullName: "Other Alice",
	})
	assert.Error(t, err)
}

func TestLoginUser(t *testing.T) {
	repo := newFakeUserRepo()
	registerUser(t, repo, "alice", "supervisor")
	handler := command.NewLoginUserHandler(repo)

	response, err := handler.Handle(command.LoginUserCommand{
		Username: "alice",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, response.Token)

	claims, err := auth.ValidateToken(response.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, domain.RoleSupervisor, claims.Role)
}

func TestLoginUser_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	registerUser(t, repo, "alice", "employee")
	handler := command.NewLoginUserHandler(repo)

	_, err := handler.Handle(command.LoginUserCommand{
		Username: "alice",
		Password: "wrong",
	})
	assert.Error(t, err)
}

func TestLoginUser_DeactivatedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	user := registerUser(t, repo, "alice", "employee")

	stored := repo.users[user.ID]
	stored.IsActive = false

	handler := command.NewLoginUserHandler(repo)
	_, err := handler.Handle(command.LoginUserCommand{
		Username: "alice",
		Password: "hunter22",
	})
	assert.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	user := registerUser(t, repo, "alice", "employee")
	handler := command.NewChangePasswordHandler(repo)

	err := handler.Handle(command.ChangePasswordCommand{
		UserID:          user.ID,
		OldPassword:     "hunter22",
		NewPassword:     "correcthorse",
		ConfirmPassword: "correcthorse",
	})
	require.NoError(t, err)

	assert.True(t, auth.CheckPassword(repo.users[user.ID].Password, "correcthorse"))
}

func TestChangePassword_MismatchedConfirmation(t *testing.T) {
	repo := newFakeUserRepo()
	user := registerUser(t, repo, "alice", "employee")
	handler := command.NewChangePasswordHandler(repo)

	err := handler.Handle(command.ChangePasswordCommand{
		UserID:          user.ID,
		OldPassword:     "hunter22",
		NewPassword:     "correcthorse",
		ConfirmPassword: "correchtorse",
	})
	assert.Error(t, err)
}
