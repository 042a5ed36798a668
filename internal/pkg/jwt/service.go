package jwt

import (
	"errors"
	"time"

	"skill-match/internal/domain/user"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const TokenTypeAccess = "access"

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims are issued by the account service. Only access tokens are accepted
// here.
type Claims struct {
	UserID    string `json:"user_id"`
	UserType  string `json:"user_type"`
	TokenType string `json:"token_type"`

	jwtlib.RegisteredClaims
}

func (c Claims) Actor() user.Actor {
	return user.Actor{ID: c.UserID, Type: user.Type(c.UserType)}
}

type Service interface {
	GenerateAccessToken(actor user.Actor) (string, error)
	ValidateToken(tokenString string) (Claims, error)
}

type HMACService struct {
	secret    []byte
	issuer    string
	expiresIn time.Duration

	now func() time.Time
}

// NewHMACService verifies HS256 tokens signed with secret. When issuer is set,
// tokens must carry it.
func NewHMACService(secret, issuer string, expiresIn time.Duration) *HMACService {
	return &HMACService{
		secret:    []byte(secret),
		issuer:    issuer,
		expiresIn: expiresIn,
		now:       time.Now,
	}
}

// GenerateAccessToken is used by tests and local tooling; production tokens
// come from the account service.
func (s *HMACService) GenerateAccessToken(actor user.Actor) (string, error) {
	if len(s.secret) == 0 || s.expiresIn <= 0 || actor.ID == "" || !actor.Type.Valid() {
		return "", ErrTokenInvalid
	}

	now := s.now().UTC()
	c := Claims{
		UserID:    actor.ID,
		UserType:  string(actor.Type),
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   actor.ID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.expiresIn)),
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(s.secret)
}

func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}

	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(s.issuer))
	}
	p := jwtlib.NewParser(opts...)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}

	if c.TokenType != TokenTypeAccess || c.UserID == "" || !user.Type(c.UserType).Valid() {
		return Claims{}, ErrTokenInvalid
	}

	return c, nil
}
