package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yourusername/todo-api/internal/domain"
)

type stubCodec struct{}

func (stubCodec) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (stubCodec) Verify(password, secret string) bool  { return secret == "hashed:"+password }

type failingCodec struct{}

func (failingCodec) Hash(string) (string, error) { return "", errors.New("hash failure") }
func (failingCodec) Verify(string, string) bool  { return false }

// fakeUserRepo は一意制約付きのインメモリ UserRepo です。
type fakeUserRepo struct {
	users  map[string]domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User), nextID: 1}
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Create(_ context.Context, username, passwordSecret string) (domain.User, error) {
	if _, ok := r.users[username]; ok {
		return domain.User{}, domain.ErrUsernameTaken
	}
	u := domain.User{ID: r.nextID, Username: username, Password: passwordSecret}
	r.nextID++
	r.users[username] = u
	return u, nil
}

func TestRegisterSuccess(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), stubCodec{})

	u, err := svc.Register(context.Background(), "alice", "Passw0rd!")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if u.Username != "alice" {
		t.Fatalf("username = %q, want alice", u.Username)
	}
	if u.Password != "hashed:Passw0rd!" {
		t.Fatalf("stored secret must be the derived credential, got %q", u.Password)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), stubCodec{})

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"short username", "ab", "Passw0rd!"},
		{"bad username charset", "alice!", "Passw0rd!"},
		{"short password", "alice", "P0d!"},
		{"no uppercase", "alice", "passw0rd!"},
		{"no lowercase", "alice", "PASSW0RD!"},
		{"no digit", "alice", "Password!"},
		{"no symbol", "alice", "Passw0rd1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.username, tc.password)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(verr.Messages) == 0 {
				t.Fatal("ValidationError must carry at least one message")
			}
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, stubCodec{})

	if _, err := svc.Register(context.Background(), "alice", "Passw0rd!"); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "Passw0rd!"); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegisterHashFailureIsInternal(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), failingCodec{})

	_, err := svc.Register(context.Background(), "alice", "Passw0rd!")
	if err == nil {
		t.Fatal("expected error from failing codec")
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Fatal("hash failure must not surface as a validation error")
	}
}

func TestAuthenticateSameErrorForUnknownUserAndWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, stubCodec{})
	if _, err := svc.Register(context.Background(), "alice", "Passw0rd!"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, unknownErr := svc.Authenticate(context.Background(), "nobody", "Passw0rd!")
	_, wrongErr := svc.Authenticate(context.Background(), "alice", "WrongPass1!")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatal("both failures must be indistinguishable to the caller")
	}
}

func TestAuthenticateSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, stubCodec{})
	registered, err := svc.Register(context.Background(), "alice", "Passw0rd!")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	u, err := svc.Authenticate(context.Background(), "alice", "Passw0rd!")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if u.ID != registered.ID {
		t.Fatalf("authenticated ID = %d, want %d", u.ID, registered.ID)
	}
}
