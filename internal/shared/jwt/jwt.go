package jwt

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	jw "github.com/golang-jwt/jwt/v5"
)

func secret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	// dev fallback; replace in prod
	return []byte("replace-this-with-a-strong-secret")
}

// Make issues an HS256 token with the user id as the subject.
func Make(userID uint64) (string, error) {
	claims := jw.MapClaims{
		"sub": strconv.FormatUint(userID, 10),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	return jw.NewWithClaims(jw.SigningMethodHS256, claims).SignedString(secret())
}

// Parse validates an HS256 JWT and returns the user id from the "sub" claim.
func Parse(tok string) (uint64, error) {
	t, err := jw.Parse(tok, func(t *jw.Token) (any, error) {
		if _, ok := t.Method.(*jw.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret(), nil
	})
	if err != nil || !t.Valid {
		return 0, errors.New("invalid token")
	}
	mc, ok := t.Claims.(jw.MapClaims)
	if !ok {
		return 0, errors.New("bad claims")
	}
	sub, _ := mc["sub"].(string)
	uid, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || uid == 0 {
		return 0, errors.New("no subject")
	}
	if exp, ok := mc["exp"].(float64); ok && time.Now().Unix() > int64(exp) {
		return 0, errors.New("token expired")
	}
	return uid, nil
}
