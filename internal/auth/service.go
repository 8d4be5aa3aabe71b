package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 30 * 24 * time.Hour

// Service pairs devices against a single access code and issues the JWT
// the mutating endpoints require. There are no user accounts, one code
// covers the installation.
type Service struct {
	secret   []byte
	codeHash []byte
}

type Claims struct {
	DeviceID string `json:"device_id"`
	jwt.RegisteredClaims
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	DeviceID    string `json:"device_id"`
}

func NewService(secret, accessCode string) (*Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(accessCode), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Service{secret: []byte(secret), codeHash: hash}, nil
}

// Pair checks the access code and hands back a long-lived device token.
func (s *Service) Pair(accessCode, deviceName string) (TokenResponse, error) {
	if err := bcrypt.CompareHashAndPassword(s.codeHash, []byte(accessCode)); err != nil {
		return TokenResponse{}, errors.New("invalid access code")
	}

	deviceID := uuid.NewString()
	if deviceName != "" {
		deviceID = deviceName + ":" + deviceID
	}

	token, err := s.signToken(deviceID)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(tokenTTL.Seconds()),
		DeviceID:    deviceID,
	}, nil
}

// ValidateToken returns the device id carried by a valid token.
func (s *Service) ValidateToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", errors.New("token invalid")
	}
	return claims.DeviceID, nil
}

func (s *Service) signToken(deviceID string) (string, error) {
	claims := Claims{
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
