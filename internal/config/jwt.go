package config

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// JWT verifies player tokens issued elsewhere. Only the public key is needed.
type JWT struct {
	publicKey     *rsa.PublicKey
	signingMethod jwt.SigningMethod
}

var ErrNoJWTKey = errors.New("no JWT_PUBLIC_KEY or JWT_PUBLIC_KEY_FILE env variable set")

func loadPublicKey() (*rsa.PublicKey, error) {
	publicKeyStr, ok := os.LookupEnv("JWT_PUBLIC_KEY")
	if ok {
		return jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyStr))
	}
	publicKeyPath, ok := os.LookupEnv("JWT_PUBLIC_KEY_FILE")
	if !ok {
		return nil, ErrNoJWTKey
	}
	publicKeyBytes, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read JWT public key: %w", err)
	}
	return jwt.ParseRSAPublicKeyFromPEM(publicKeyBytes)
}

func NewJWT() (*JWT, error) {
	publicKey, err := loadPublicKey()
	if err != nil {
		return nil, err
	}
	return NewJWTFromKey(publicKey), nil
}

func NewJWTFromKey(publicKey *rsa.PublicKey) *JWT {
	return &JWT{
		publicKey:     publicKey,
		signingMethod: jwt.SigningMethodRS256,
	}
}

func (j *JWT) ParseWithClaims(tokenString string, claims jwt.Claims) (*jwt.Token, error) {
	return jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return j.publicKey, nil
		},
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
	)
}
