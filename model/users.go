package model

import "time"

type User struct {
	UserID           string    `bson:"user_id" json:"user_id"`
	Email            string    `bson:"email" json:"email" validate:"required,email"`
	Password         string    `bson:"password" json:"-"` // argon2id hash
	TwoFactorSecret  string    `bson:"two_factor_secret,omitempty" json:"-"`
	TwoFactorEnabled bool      `bson:"two_factor_enabled" json:"two_factor_enabled"`
	RecoveryCodes    []string  `bson:"recovery_codes,omitempty" json:"-"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}

type LoginRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required"`
	TwoFactorCode string `json:"two_factor_code,omitempty"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,password"`
}
