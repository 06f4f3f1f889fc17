package identity

import (
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/soliva-social/soliva/internal/core/ports"
)

// JWTVerifier mappe le token du provider d'identité vers la clé utilisateur.
// Le provider signe en RS256 ; le sujet (sub) EST la clé, opaque pour le core.
type JWTVerifier struct {
	publicKey *rsa.PublicKey
}

func NewJWTVerifier(publicKeyPEM []byte) (*JWTVerifier, error) {
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	return &JWTVerifier{publicKey: pubKey}, nil
}

var _ ports.TokenVerifier = (*JWTVerifier)(nil)

func (v *JWTVerifier) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Vérifier que l'alg est bien RS256 : empêche de forcer "none"/"HS256".
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.publicKey, nil
	})
	if err != nil {
		return "", err // expiré ou signature invalide
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token claims")
	}
	return claims.Subject, nil
}

// PassthroughVerifier traite le bearer token comme la clé elle-même.
// Mode local/embedded uniquement : le contrat dit déjà que l'identité
// émise par le provider est opaque et de confiance.
type PassthroughVerifier struct{}

var _ ports.TokenVerifier = PassthroughVerifier{}

func (PassthroughVerifier) Verify(token string) (string, error) {
	if token == "" {
		return "", errors.New("empty token")
	}
	return token, nil
}
