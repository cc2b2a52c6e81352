package domain

import "time"

type UserRole string

const (
	UserRoleCustomer UserRole = "CUSTOMER"
	UserRoleVendor   UserRole = "VENDOR"
	UserRoleAdmin    UserRole = "ADMIN"
)

type User struct {
	ID            int32     `json:"id"`
	CompanyID     int32     `json:"company_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          UserRole  `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	CreatedOn     time.Time `json:"created_on"`
}
