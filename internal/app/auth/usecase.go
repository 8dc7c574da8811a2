package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"rbcmap/internal/app/ports"
)

var (
	ErrInvalidRequest     = errors.New("invalid auth request")
	ErrInvalidCredentials = errors.New("invalid character credentials")
	ErrInvalidToken       = errors.New("invalid session token")
)

const defaultTokenTTL = 24 * time.Hour

// Claims is the JWT payload issued for a logged-in character.
type Claims struct {
	CharacterID string `json:"character_id"`
	Name        string `json:"name"`
	jwt.RegisteredClaims
}

// RegisterUseCase creates character accounts for this tool's API. The
// password guards only this companion service; game-site credentials
// are a separate concern and never pass through here.
type RegisterUseCase struct {
	Characters ports.CharacterRepository
	Secret     []byte
	TokenTTL   time.Duration
	Now        func() time.Time
}

type RegisterRequest struct {
	Name     string
	Password string
}

type RegisterResponse struct {
	CharacterID string `json:"character_id"`
	Name        string `json:"name"`
	Token       string `json:"token"`
	IssuedAt    string `json:"issued_at"`
}

func (u RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	name := strings.TrimSpace(req.Name)
	if u.Characters == nil || len(u.Secret) == 0 || name == "" || len(req.Password) < 6 {
		return RegisterResponse{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().UTC()

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return RegisterResponse{}, err
	}
	id, err := newCharacterID(now)
	if err != nil {
		return RegisterResponse{}, err
	}

	if err := u.Characters.Create(ctx, ports.CharacterRecord{
		ID:           id,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
	}); err != nil {
		return RegisterResponse{}, err
	}

	token, err := issueToken(u.Secret, u.TokenTTL, id, name, now)
	if err != nil {
		return RegisterResponse{}, err
	}
	return RegisterResponse{
		CharacterID: id,
		Name:        name,
		Token:       token,
		IssuedAt:    now.Format(time.RFC3339),
	}, nil
}

// LoginUseCase verifies a character's password and issues a fresh token.
type LoginUseCase struct {
	Characters ports.CharacterRepository
	Secret     []byte
	TokenTTL   time.Duration
	Now        func() time.Time
}

type LoginRequest struct {
	Name     string
	Password string
}

type LoginResponse struct {
	CharacterID string `json:"character_id"`
	Name        string `json:"name"`
	Token       string `json:"token"`
}

func (u LoginUseCase) Execute(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	name := strings.TrimSpace(req.Name)
	if u.Characters == nil || len(u.Secret) == 0 || name == "" || req.Password == "" {
		return LoginResponse{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	rec, err := u.Characters.GetByName(ctx, name)
	if errors.Is(err, ports.ErrNotFound) {
		return LoginResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResponse{}, err
	}
	if bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(req.Password)) != nil {
		return LoginResponse{}, ErrInvalidCredentials
	}

	token, err := issueToken(u.Secret, u.TokenTTL, rec.ID, rec.Name, nowFn().UTC())
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{CharacterID: rec.ID, Name: rec.Name, Token: token}, nil
}

// VerifyUseCase checks a bearer token and returns the character it was
// issued for.
type VerifyUseCase struct {
	Secret []byte
}

func (u VerifyUseCase) Execute(_ context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if len(u.Secret) == 0 || token == "" {
		return "", ErrInvalidToken
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return u.Secret, nil
	})
	if err != nil || !parsed.Valid || claims.CharacterID == "" {
		return "", ErrInvalidToken
	}
	return claims.CharacterID, nil
}

func issueToken(secret []byte, ttl time.Duration, characterID, name string, now time.Time) (string, error) {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	claims := &Claims{
		CharacterID: characterID,
		Name:        name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "rbcmap",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func newCharacterID(now time.Time) (string, error) {
	b := make([]byte, 9)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "chr_" + now.Format("20060102") + "_" + base64.RawURLEncoding.EncodeToString(b), nil
}
