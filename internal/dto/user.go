package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
)

// CreateUserRequest defines the payload for registering an employee.
type CreateUserRequest struct {
	Nik      string `json:"nik" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=ADMIN CASHIER DRIVER"`
	Password string `json:"password" binding:"required,min=8"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// UserResponse is the transport shape of an employee record.
type UserResponse struct {
	Nik  string `json:"nik"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// ToUserResponse converts a domain User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		Nik:  u.Nik,
		Name: u.Name,
		Role: string(u.Role),
	}
}

// ListUsersResponse wraps a list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// UserBalanceResponse is the transport shape of a user's aggregate balances.
type UserBalanceResponse struct {
	UserNik         string          `json:"userNik"`
	BalanceCoin     decimal.Decimal `json:"balanceCoin"`
	BalanceBigMoney decimal.Decimal `json:"balanceBigMoney"`
}

// ToUserBalanceResponse converts a domain UserBalance to its response DTO.
func ToUserBalanceResponse(b *domain.UserBalance) UserBalanceResponse {
	return UserBalanceResponse{
		UserNik:         b.UserNik,
		BalanceCoin:     b.BalanceCoin,
		BalanceBigMoney: b.BalanceBigMoney,
	}
}
