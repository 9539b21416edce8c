package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"careerhub-api/config"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// The identity provider is consumed only at this boundary: a bearer token
// goes in, {uid, email} comes out on the gin context. Handlers never see
// raw tokens.

var oidcVerifier *oidc.IDTokenVerifier

// InitOIDC prepares issuer-based token verification when OIDC_ISSUER is
// configured (e.g. Firebase securetoken tokens). Without it, tokens are
// verified locally against JWT_SECRET.
func InitOIDC(ctx context.Context) {
	if config.OIDC_ISSUER == "" {
		return
	}
	provider, err := oidc.NewProvider(ctx, config.OIDC_ISSUER)
	if err != nil {
		log.Fatal().Err(err).Str("issuer", config.OIDC_ISSUER).Msg("Failed to discover OIDC issuer")
	}
	cfg := &oidc.Config{ClientID: config.OIDC_AUDIENCE}
	if config.OIDC_AUDIENCE == "" {
		cfg.SkipClientIDCheck = true
	}
	oidcVerifier = provider.Verifier(cfg)
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Authorization header missing"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Bearer token malformed"})
			c.Abort()
			return
		}

		var (
			uid, email string
			err        error
		)
		if oidcVerifier != nil {
			uid, email, err = verifyOIDCToken(c.Request.Context(), tokenString)
		} else {
			uid, email, err = verifyLocalToken(tokenString)
		}
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("uid", uid)
		c.Set("email", email)
		c.Next()
	}
}

func verifyLocalToken(tokenString string) (uid, email string, err error) {
	jwtKey := []byte(config.JWT_SECRET)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtKey, nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}

	uid, _ = claims["sub"].(string)
	if uid == "" {
		uid, _ = claims["uid"].(string)
	}
	if uid == "" {
		return "", "", errors.New("token missing subject")
	}
	email, _ = claims["email"].(string)
	return uid, email, nil
}

func verifyOIDCToken(ctx context.Context, tokenString string) (uid, email string, err error) {
	idToken, err := oidcVerifier.Verify(ctx, tokenString)
	if err != nil {
		return "", "", err
	}

	var claims struct {
		Email string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return "", "", err
	}
	return idToken.Subject, claims.Email, nil
}
