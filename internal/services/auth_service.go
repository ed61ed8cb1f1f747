package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"bookmarket/internal/domain"
	"bookmarket/internal/repos"
)

var (
	ErrBadCreds         = errors.New("invalid email or password")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrEmailTaken       = errors.New("user already exists")
)

const tokenTTL = 2 * time.Hour

type AuthService struct {
	Users  *repos.UserRepo
	Secret []byte
}

func NewAuthService(users *repos.UserRepo, secret string) *AuthService {
	return &AuthService{Users: users, Secret: []byte(secret)}
}

func (s *AuthService) Signup(email, password, confirm string) (string, *domain.User, error) {
	if password != confirm {
		return "", nil, ErrPasswordMismatch
	}
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}
	u := &domain.User{Email: email, Hash: string(hash)}
	// Duplicate detection leans on the unique email index rather than a
	// lookup before the insert, so concurrent signups of the same address
	// both resolve to ErrEmailTaken.
	if err := s.Users.Create(u); err != nil {
		if isDuplicateEmail(err) {
			return "", nil, ErrEmailTaken
		}
		return "", nil, err
	}
	tok, err := s.issueToken(u)
	return tok, u, err
}

func isDuplicateEmail(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (s *AuthService) Login(email, password string) (string, *domain.User, error) {
	u, err := s.Users.ByEmail(strings.TrimSpace(email))
	if err != nil {
		return "", nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", nil, ErrBadCreds
	}
	tok, err := s.issueToken(u)
	return tok, u, err
}

func (s *AuthService) issueToken(u *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": u.ID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// VerifyToken checks a bearer token and resolves its user. Only HMAC
// signatures are accepted; anything else is treated as forged.
func (s *AuthService) VerifyToken(tokenStr string) (*domain.User, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("invalid claims")
	}
	return s.Users.ByID(sub)
}
