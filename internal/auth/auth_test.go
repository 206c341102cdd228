package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	id := uuid.New()
	token, err := NewAccessToken(id, "secret", time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	got, err := ParseAccessToken(token, "secret")
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if got != id {
		t.Errorf("user id = %s, want %s", got, id)
	}
}

func TestParseAccessTokenRejects(t *testing.T) {
	id := uuid.New()
	good, _ := NewAccessToken(id, "secret", time.Hour)
	expired, _ := NewAccessToken(id, "secret", -time.Minute)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"wrong secret", good, jwt.ErrTokenSignatureInvalid},
		{"expired", expired, jwt.ErrTokenExpired},
		{"garbage", "not-a-token", jwt.ErrTokenMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret := "secret"
			if tt.name == "wrong secret" {
				secret = "other"
			}
			_, err := ParseAccessToken(tt.token, secret)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPasswordHash("correct horse", hash) {
		t.Error("matching password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("wrong password accepted")
	}
	if CheckPasswordHash("correct horse", "not-a-bcrypt-hash") {
		t.Error("corrupt hash accepted")
	}
	if _, err := HashPassword(strings.Repeat("x", MaxPasswordBytes+1)); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("long password err = %v, want ErrPasswordTooLong", err)
	}
}

func TestContextUserID(t *testing.T) {
	if _, ok := GetUserIDFromContext(context.Background()); ok {
		t.Error("empty context reported a user")
	}
	id := uuid.New()
	got, ok := GetUserIDFromContext(WithUserID(context.Background(), id))
	if !ok || got != id {
		t.Errorf("GetUserIDFromContext = %s, %v", got, ok)
	}
}
