package domain

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

type User struct {
	ID           int64  `json:"id" gorm:"primaryKey;autoIncrement" dynamodbav:"id"`
	Username     string `json:"username" gorm:"not null;uniqueIndex" dynamodbav:"username"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null" dynamodbav:"passwordHash"`
	Role         Role   `json:"role" gorm:"not null" dynamodbav:"role"`
	CreatedAt    int64  `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime:milli" dynamodbav:"createdAt"`
}

func (User) TableName() string {
	return "users"
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}
