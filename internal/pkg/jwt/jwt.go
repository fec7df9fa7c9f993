package jwt

import (
	"context"
	"crypto/rsa"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Bidex-03/ummah-connect/pkg/applogger"
)

// JSONWebToken verifies (and, when a private key is configured, signs)
// RS256 bearer tokens issued by the account service.
type JSONWebToken struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

func NewJSONWebToken(privateKeyPEM, publicKeyPEM string) *JSONWebToken {
	logger := applogger.GetLogrus()

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		logger.WithField("object", "jwt").Error(err)
		return nil
	}

	j := &JSONWebToken{
		publicKey: publicKey,
	}

	if privateKeyPEM != "" {
		privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
		if err != nil {
			logger.WithField("object", "jwt").Error(err)
			return nil
		}
		j.privateKey = privateKey
	}

	return j
}

func (j *JSONWebToken) Sign(ctx context.Context, claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)

	return token.SignedString(j.privateKey)
}

func (j *JSONWebToken) Parse(ctx context.Context, tokenString string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return j.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))

	return err
}
