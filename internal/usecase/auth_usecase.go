package usecase

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// admin_tokenクッキー用JWTを発行する約束
type AdminTokenIssuer interface {
	Issue(now time.Time) (token string, expiresAt time.Time, err error)
}

// 入力パスワードを共有シークレットと比べる約束
type PasswordVerifier interface {
	Verify(plain string) bool
}

// bcryptハッシュ優先、無ければ平文比較（開発用）。
type EnvPasswordVerifier struct {
	hash  string
	plain string
}

func NewEnvPasswordVerifier(hash string, plain string) *EnvPasswordVerifier {
	return &EnvPasswordVerifier{hash: hash, plain: plain}
}

func (v *EnvPasswordVerifier) Verify(input string) bool {
	if v.hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(v.hash), []byte(input)) == nil
	}
	if v.plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(v.plain), []byte(input)) == 1
}

type AuthUsecase struct {
	verifier PasswordVerifier
	issuer   AdminTokenIssuer
	clock    Clock
}

func NewAuthUsecase(verifier PasswordVerifier, issuer AdminTokenIssuer, clock Clock) *AuthUsecase {
	return &AuthUsecase{verifier: verifier, issuer: issuer, clock: clock}
}

type LoginOutput struct {
	Token     string
	ExpiresAt time.Time
}

// Login は管理画面の共有パスワードを検証してセッションJWTを返す。
func (u *AuthUsecase) Login(ctx context.Context, password string) (LoginOutput, error) {
	if !u.verifier.Verify(password) {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "Invalid password")
	}

	token, expiresAt, err := u.issuer.Issue(u.clock.Now())
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	return LoginOutput{Token: token, ExpiresAt: expiresAt}, nil
}
