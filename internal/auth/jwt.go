package auth

import (
	"errors"
	"fmt"
	"time"

	"restoran-kpi-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JWTCustomClaims struct {
	AdminID          uint   `json:"admin_id"`
	AdminName        string `json:"admin_name"` // models.Admin.AdminID
	DeviceID         uint   `json:"device_id"`
	DeviceApproved   bool   `json:"device_approved"`
	DeviceAuthorized bool   `json:"device_authorized"`
	YetkiliApproved  bool   `json:"yetkili_approved"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *TokenIssuer) Generate(admin *models.Admin, device *models.AdminDevice) (string, error) {
	now := i.now()
	claims := &JWTCustomClaims{
		AdminID:          admin.ID,
		AdminName:        admin.AdminID,
		DeviceID:         device.ID,
		DeviceApproved:   device.IsApproved,
		DeviceAuthorized: device.IsAuthorized,
		YetkiliApproved:  admin.YetkiliApproved,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   admin.AdminID,
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *TokenIssuer) Parse(tokenStr string) (*JWTCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("geçersiz imzalama yöntemi")
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("geçersiz token")
	}

	claims, ok := token.Claims.(*JWTCustomClaims)
	if !ok {
		return nil, errors.New("token çözümlenemedi")
	}
	return claims, nil
}
