package identity

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type fakeStore struct {
	users  map[string]User // por username
	hashes map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]User{}, hashes: map[string]string{}}
}

func (f *fakeStore) Create(ctx context.Context, username, email, passwordHash string) (User, error) {
	if _, ok := f.users[username]; ok {
		return User{}, ErrUserExists
	}
	u := User{ID: "u-" + username, Username: username, Email: email, CreatedAt: time.Now()}
	f.users[username] = u
	f.hashes[username] = passwordHash
	return u, nil
}

func (f *fakeStore) GetByUsername(ctx context.Context, username string) (User, string, error) {
	u, ok := f.users[username]
	if !ok {
		return User{}, "", ErrUserNotFound
	}
	return u, f.hashes[username], nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func newTestService() *Service {
	return NewService(newFakeStore(), NewIssuer("test-secret", time.Hour))
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	user, token, err := s.Register(ctx, "maria", "maria@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected access token on register")
	}

	// Token deve resolver de volta pro mesmo usuário
	uid, err := s.Tokens.Verify(token)
	if err != nil || uid != user.ID {
		t.Fatalf("token does not verify to user: %v / %s", err, uid)
	}

	_, token, err = s.Login(ctx, "maria", "secret1")
	if err != nil || token == "" {
		t.Fatalf("Login failed: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	if _, _, err := s.Register(ctx, "", "a@b.c", "secret1"); err != ErrMissingFields {
		t.Errorf("missing username: got %v", err)
	}
	if _, _, err := s.Register(ctx, "ana", "a@b.c", "12345"); err != ErrWeakPassword {
		t.Errorf("short password: got %v", err)
	}

	if _, _, err := s.Register(ctx, "ana", "a@b.c", "123456"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := s.Register(ctx, "ana", "x@y.z", "123456"); err != ErrUserExists {
		t.Errorf("duplicate username: got %v", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	if _, _, err := s.Register(ctx, "joao", "j@x.c", "correct-horse"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := s.Login(ctx, "joao", "wrong"); err != ErrInvalidCredentials {
		t.Errorf("wrong password: got %v", err)
	}
	if _, _, err := s.Login(ctx, "nobody", "whatever"); err != ErrInvalidCredentials {
		t.Errorf("unknown user: got %v", err)
	}
}

func TestPasswordIsStoredHashed(t *testing.T) {
	store := newFakeStore()
	s := NewService(store, NewIssuer("k", time.Hour))

	if _, _, err := s.Register(context.Background(), "p", "p@x.c", "plaintext"); err != nil {
		t.Fatalf("register: %v", err)
	}
	hash := store.hashes["p"]
	if hash == "plaintext" {
		t.Fatal("password stored in clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("plaintext")) != nil {
		t.Fatal("stored hash does not match password")
	}
}

func TestIssuerRejectsExpiredAndForeignTokens(t *testing.T) {
	expired := NewIssuer("k1", -time.Minute)
	tok, err := expired.Issue("u1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := expired.Verify(tok); err != ErrInvalidToken {
		t.Errorf("expired token: got %v", err)
	}

	a := NewIssuer("k1", time.Hour)
	b := NewIssuer("k2", time.Hour)
	tok, _ = a.Issue("u1")
	if _, err := b.Verify(tok); err != ErrInvalidToken {
		t.Errorf("foreign signature: got %v", err)
	}
}
