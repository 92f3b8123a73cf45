package model

import (
	"time"
)

// User 用户模型
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionUser 专门用于 Session 存储的用户信息结构
type SessionUser struct {
	Username string
	LedgerID string // 本次登录的评分账本 ID
}

// LoginRequest 登录表单
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// RegisterRequest 注册表单
type RegisterRequest struct {
	Username        string `form:"username" binding:"required,min=2,max=32"`
	Password        string `form:"password" binding:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" binding:"required"`
}
