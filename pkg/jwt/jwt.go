package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenValidity is how long an issued session token stays valid. There is
// no server-side revocation; a token dies only by expiry or client discard.
const TokenValidity = 30 * 24 * time.Hour

type JWT struct {
	secretKey []byte
	validity  time.Duration
}

// Claims is the self-contained session credential carried by the client.
type Claims struct {
	UserID      string `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	IsOnboarded bool   `json:"isOnboarded"`
	jwt.RegisteredClaims
}

func NewJWT(secretKey string) *JWT {
	return &JWT{
		secretKey: []byte(secretKey),
		validity:  TokenValidity,
	}
}

func (j *JWT) Generate(userID, email, username string, isOnboarded bool) (string, error) {
	claims := &Claims{
		UserID:      userID,
		Email:       email,
		Username:    username,
		IsOnboarded: isOnboarded,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.validity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// Validate checks the signature and expiry of tokenString. Any failure,
// including malformed input, comes back as an error result.
func (j *JWT) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return j.secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
