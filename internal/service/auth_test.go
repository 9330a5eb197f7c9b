package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	pkgcrypto "github.com/godslighthouse/gsp-server/internal/crypto"
	"github.com/godslighthouse/gsp-server/internal/errs"
	"github.com/godslighthouse/gsp-server/internal/model"
	"github.com/godslighthouse/gsp-server/internal/repository"
	"github.com/godslighthouse/gsp-server/internal/token"
)

type fakeUsers struct {
	byID map[string]*model.User

	createErr error
	getErr    error
	updateErr error
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.byID == nil {
		f.byID = map[string]*model.User{}
	}
	if _, exists := f.byID[u.Identifier]; exists {
		return errs.ErrAlreadyExists
	}
	cpy := *u
	f.byID[u.Identifier] = &cpy
	return nil
}

func (f *fakeUsers) GetByIdentifier(_ context.Context, identifier string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[identifier]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) UpdatePasswordHash(_ context.Context, identifier, hash string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	u, ok := f.byID[identifier]
	if !ok {
		return errs.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

type fakePurger struct {
	purged   []string
	purgeErr error
}

var _ repository.AccountPurger = (*fakePurger)(nil)

func (f *fakePurger) Purge(_ context.Context, identifier string) error {
	if f.purgeErr != nil {
		return f.purgeErr
	}
	f.purged = append(f.purged, identifier)
	return nil
}

func newAuthService(users *fakeUsers, accounts *fakePurger) (*AuthServiceImpl, *token.Service) {
	tokens := token.New([]byte("test-key"), time.Hour)
	return NewAuthService(users, accounts, tokens), tokens
}

func seedUser(t *testing.T, users *fakeUsers, identifier, password string) {
	t.Helper()
	hash, err := pkgcrypto.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &model.User{Identifier: identifier, PasswordHash: hash}))
}

func TestAuthService_Register(t *testing.T) {
	users := &fakeUsers{}
	svc, tokens := newAuthService(users, &fakePurger{})
	ctx := context.Background()

	access, err := svc.Register(ctx, "user@example.com", "Password123!")
	require.NoError(t, err)

	subject, err := tokens.Decode(access)
	require.NoError(t, err)
	require.Equal(t, "user@example.com", subject)

	// password never stored in plaintext
	u := users.byID["user@example.com"]
	require.NotEqual(t, "Password123!", u.PasswordHash)
	require.True(t, pkgcrypto.VerifyPassword("Password123!", u.PasswordHash))
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	users := &fakeUsers{}
	svc, _ := newAuthService(users, &fakePurger{})
	ctx := context.Background()

	_, err := svc.Register(ctx, "user@example.com", "Password123!")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "user@example.com", "OtherPassword!")
	require.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestAuthService_Register_EmptyInput(t *testing.T) {
	svc, _ := newAuthService(&fakeUsers{}, &fakePurger{})
	_, err := svc.Register(context.Background(), "", "p")
	require.Error(t, err)
	_, err = svc.Register(context.Background(), "u", "")
	require.Error(t, err)
}

func TestAuthService_Login(t *testing.T) {
	users := &fakeUsers{}
	svc, tokens := newAuthService(users, &fakePurger{})
	ctx := context.Background()
	seedUser(t, users, "user@example.com", "Password123!")

	access, err := svc.Login(ctx, "user@example.com", "Password123!")
	require.NoError(t, err)
	subject, err := tokens.Decode(access)
	require.NoError(t, err)
	require.Equal(t, "user@example.com", subject)
}

func TestAuthService_Login_WrongPasswordAndUnknownUserIndistinguishable(t *testing.T) {
	users := &fakeUsers{}
	svc, _ := newAuthService(users, &fakePurger{})
	ctx := context.Background()
	seedUser(t, users, "user@example.com", "Password123!")

	_, errWrongPw := svc.Login(ctx, "user@example.com", "WrongPassword!")
	_, errUnknown := svc.Login(ctx, "nobody@example.com", "Password123!")

	require.ErrorIs(t, errWrongPw, errs.ErrUnauthorized)
	require.ErrorIs(t, errUnknown, errs.ErrUnauthorized)
	require.Equal(t, errWrongPw, errUnknown)
}

func TestAuthService_ChangePassword(t *testing.T) {
	users := &fakeUsers{}
	svc, _ := newAuthService(users, &fakePurger{})
	ctx := context.Background()
	seedUser(t, users, "user@example.com", "OldPassword123!")

	require.NoError(t, svc.ChangePassword(ctx, "user@example.com", "OldPassword123!", "NewPassword123!"))
	require.True(t, pkgcrypto.VerifyPassword("NewPassword123!", users.byID["user@example.com"].PasswordHash))

	err := svc.ChangePassword(ctx, "user@example.com", "WrongOld!", "Another!")
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	err = svc.ChangePassword(ctx, "nobody@example.com", "OldPassword123!", "Another!")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestAuthService_DeleteAccount(t *testing.T) {
	users := &fakeUsers{}
	accounts := &fakePurger{}
	svc, _ := newAuthService(users, accounts)
	ctx := context.Background()
	seedUser(t, users, "user@example.com", "Password123!")

	err := svc.DeleteAccount(ctx, "user@example.com", "WrongPassword!")
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	require.Empty(t, accounts.purged)

	require.NoError(t, svc.DeleteAccount(ctx, "user@example.com", "Password123!"))
	require.Equal(t, []string{"user@example.com"}, accounts.purged)

	err = svc.DeleteAccount(ctx, "nobody@example.com", "Password123!")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestAuthService_Profile_StripsHash(t *testing.T) {
	users := &fakeUsers{}
	svc, _ := newAuthService(users, &fakePurger{})
	ctx := context.Background()
	seedUser(t, users, "user@example.com", "Password123!")

	u, err := svc.Profile(ctx, "user@example.com")
	require.NoError(t, err)
	require.Equal(t, "user@example.com", u.Identifier)
	require.Empty(t, u.PasswordHash)

	_, err = svc.Profile(ctx, "nobody@example.com")
	require.ErrorIs(t, err, errs.ErrNotFound)
}
