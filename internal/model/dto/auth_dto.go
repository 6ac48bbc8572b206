package dto

// RegisterRequest 管理员注册请求
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Password    string `json:"password" binding:"required,min=8,max=32"`
	DisplayName string `json:"display_name" binding:"max=100"`
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	StaffID int64 `json:"staff_id"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string     `json:"token"`
	Staff *StaffInfo `json:"staff"`
}

// StaffInfo 管理员信息（返回给前端）
type StaffInfo struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	CreatedAt   string `json:"created_at"`
}
