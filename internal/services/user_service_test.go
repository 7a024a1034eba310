package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/bikebay/server/internal/apperr"
	"github.com/bikebay/server/internal/helpers"
	"github.com/bikebay/server/internal/models"
	"github.com/bikebay/server/internal/services"
	"github.com/google/uuid"
)

type userRepoMock struct {
	mu    map[uuid.UUID]*models.User
	email map[string]*models.User
}

func newUserRepoMock() *userRepoMock {
	return &userRepoMock{
		mu:    make(map[uuid.UUID]*models.User),
		email: make(map[string]*models.User),
	}
}

func (m *userRepoMock) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if _, exists := m.email[user.Email]; exists {
		return nil, apperr.New(apperr.CodeInvalid, "user already exists")
	}
	m.mu[user.ID] = user
	m.email[user.Email] = user
	return user, nil
}

func (m *userRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := m.email[email]
	if !ok {
		return nil, apperr.New(apperr.CodeNotFound, "user not found")
	}
	return user, nil
}

func (m *userRepoMock) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := m.mu[id]
	if !ok {
		return nil, apperr.New(apperr.CodeNotFound, "user not found")
	}
	return user, nil
}

func (m *userRepoMock) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	user, ok := m.mu[id]
	if !ok {
		return apperr.New(apperr.CodeNotFound, "user not found")
	}
	user.Password = hash
	return nil
}

type mailerMock struct {
	lastTo  string
	lastURL string
}

func (m *mailerMock) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	m.lastTo = to
	m.lastURL = resetURL
	return nil
}

func newUserService(t *testing.T) (*services.UserService, *userRepoMock, *mailerMock, *helpers.TokenSigner) {
	t.Helper()
	repo := newUserRepoMock()
	mail := &mailerMock{}
	signer := helpers.NewTokenSigner("test-secret")
	return services.NewUserService(repo, mail, signer, "https://bikebay.example"), repo, mail, signer
}

func TestRegister(t *testing.T) {
	s, _, _, signer := newUserService(t)

	user, token, err := s.Register(context.Background(), "Alice", "alice@example.com", "Sup3rSecret", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("role = %s, want default user", user.Role)
	}
	if user.Password == "Sup3rSecret" {
		t.Error("password must be stored hashed")
	}
	if token == "" {
		t.Error("register should return an access token")
	}

	claims, err := signer.ValidateToken(token)
	if err != nil {
		t.Fatalf("returned token does not validate: %v", err)
	}
	if claims.Subject != user.ID.String() {
		t.Errorf("token subject = %s, want %s", claims.Subject, user.ID)
	}
}

func TestRegister_Rejections(t *testing.T) {
	s, _, _, _ := newUserService(t)

	cases := []struct {
		name     string
		userName string
		email    string
		password string
		role     string
	}{
		{"bad email", "Bob", "not-an-email", "Sup3rSecret", ""},
		{"empty name", "", "bob@example.com", "Sup3rSecret", ""},
		{"weak password", "Bob", "bob@example.com", "weak", ""},
		{"admin role not allowed", "Bob", "bob@example.com", "Sup3rSecret", models.RoleAdmin},
		{"unknown role", "Bob", "bob@example.com", "Sup3rSecret", "superuser"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := s.Register(context.Background(), tc.userName, tc.email, tc.password, tc.role)
			if apperr.CodeOf(err) != apperr.CodeInvalid {
				t.Fatalf("got %v, want Invalid", err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s, _, _, _ := newUserService(t)

	if _, _, err := s.Register(context.Background(), "Alice", "alice@example.com", "Sup3rSecret", models.RoleHoster); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, _, err := s.Register(context.Background(), "Other Alice", "alice@example.com", "Sup3rSecret", "")
	if apperr.CodeOf(err) != apperr.CodeInvalid {
		t.Fatalf("got %v, want Invalid", err)
	}
}

func TestLogin(t *testing.T) {
	s, _, _, _ := newUserService(t)
	if _, _, err := s.Register(context.Background(), "Alice", "alice@example.com", "Sup3rSecret", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, err := s.Login(context.Background(), "alice@example.com", "Sup3rSecret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "alice@example.com" || token == "" {
		t.Fatal("login should return the user and a token")
	}

	// Wrong password and unknown email both come back as the same Invalid,
	// so callers cannot probe which accounts exist.
	_, _, err = s.Login(context.Background(), "alice@example.com", "WrongPass1")
	if apperr.CodeOf(err) != apperr.CodeInvalid {
		t.Fatalf("wrong password: got %v, want Invalid", err)
	}
	_, _, err = s.Login(context.Background(), "nobody@example.com", "Sup3rSecret")
	if apperr.CodeOf(err) != apperr.CodeInvalid {
		t.Fatalf("unknown email: got %v, want Invalid", err)
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	s, repo, mail, _ := newUserService(t)
	user, _, err := s.Register(context.Background(), "Alice", "alice@example.com", "Sup3rSecret", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := s.ForgotPassword(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("forgot-password failed: %v", err)
	}
	if mail.lastTo != "alice@example.com" {
		t.Errorf("mail sent to %s", mail.lastTo)
	}
	if !strings.HasPrefix(mail.lastURL, "https://bikebay.example/reset-password?token=") {
		t.Fatalf("unexpected reset URL: %s", mail.lastURL)
	}

	token := strings.TrimPrefix(mail.lastURL, "https://bikebay.example/reset-password?token=")
	if err := s.ResetPassword(context.Background(), token, "N3wPassword"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	stored, _ := repo.GetUserByID(context.Background(), user.ID)
	if !helpers.ComparePassword(stored.Password, "N3wPassword") {
		t.Error("new password should be stored")
	}
	if helpers.ComparePassword(stored.Password, "Sup3rSecret") {
		t.Error("old password should no longer match")
	}
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	s, _, mail, _ := newUserService(t)

	err := s.ForgotPassword(context.Background(), "nobody@example.com")
	if apperr.CodeOf(err) != apperr.CodeNotFound {
		t.Fatalf("got %v, want NotFound", err)
	}
	if mail.lastTo != "" {
		t.Error("no mail should be sent for unknown emails")
	}
}

func TestResetPassword_RejectsAccessToken(t *testing.T) {
	s, _, _, _ := newUserService(t)
	_, accessToken, err := s.Register(context.Background(), "Alice", "alice@example.com", "Sup3rSecret", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// An access token has no password_reset scope and must not reset anything.
	err = s.ResetPassword(context.Background(), accessToken, "N3wPassword")
	if apperr.CodeOf(err) != apperr.CodeInvalid {
		t.Fatalf("got %v, want Invalid", err)
	}
}

func TestResetPassword_BadInputs(t *testing.T) {
	s, _, _, signer := newUserService(t)
	user, _, err := s.Register(context.Background(), "Alice", "alice@example.com", "Sup3rSecret", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := s.ResetPassword(context.Background(), "garbage", "N3wPassword"); apperr.CodeOf(err) != apperr.CodeInvalid {
		t.Fatalf("garbage token: got %v, want Invalid", err)
	}

	resetToken, err := signer.SignResetToken(user.ID)
	if err != nil {
		t.Fatalf("sign reset token failed: %v", err)
	}
	if err := s.ResetPassword(context.Background(), resetToken, "weak"); apperr.CodeOf(err) != apperr.CodeInvalid {
		t.Fatalf("weak password: got %v, want Invalid", err)
	}
}
