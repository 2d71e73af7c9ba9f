package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"serbburger/internal/usecase"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type issuerStub struct {
	token string
	err   error
}

func (s *issuerStub) Issue(now time.Time) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	return s.token, now.Add(time.Hour), nil
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	clock := &fixedClock{t: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	verifier := usecase.NewEnvPasswordVerifier("", "admin123")
	uc := usecase.NewAuthUsecase(verifier, &issuerStub{token: "signed-token"}, clock)

	out, err := uc.Login(context.Background(), "admin123")
	assert.NoError(t, err)
	assert.Equal(t, "signed-token", out.Token)
	assert.Equal(t, clock.t.Add(time.Hour), out.ExpiresAt)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	verifier := usecase.NewEnvPasswordVerifier("", "admin123")
	uc := usecase.NewAuthUsecase(verifier, &issuerStub{token: "signed-token"}, &fixedClock{t: time.Now()})

	_, err := uc.Login(context.Background(), "nope")
	he := assertHTTPStatus(t, err, http.StatusUnauthorized)
	assert.Equal(t, "Invalid password", he.Message)
}

func TestAuthUsecase_Login_IssuerFailure(t *testing.T) {
	verifier := usecase.NewEnvPasswordVerifier("", "admin123")
	uc := usecase.NewAuthUsecase(verifier, &issuerStub{err: errors.New("boom")}, &fixedClock{t: time.Now()})

	_, err := uc.Login(context.Background(), "admin123")
	assertHTTPStatus(t, err, http.StatusInternalServerError)
}

// ハッシュが設定されていれば平文設定は無視してbcryptで照合する
func TestEnvPasswordVerifier_PrefersHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	assert.NoError(t, err)

	v := usecase.NewEnvPasswordVerifier(string(hash), "other")
	assert.True(t, v.Verify("secret"))
	assert.False(t, v.Verify("other"))
}

func TestEnvPasswordVerifier_EmptyConfigRejectsAll(t *testing.T) {
	v := usecase.NewEnvPasswordVerifier("", "")
	assert.False(t, v.Verify(""))
	assert.False(t, v.Verify("anything"))
}
