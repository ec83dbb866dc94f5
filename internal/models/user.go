package models

// AdminUser is the single pre-provisioned account that can mutate portfolio
// content. It is never created through an exposed endpoint; the service seeds
// it on first startup when the users file is empty.
type AdminUser struct {
	ID           string `json:"id" bson:"_id,omitempty"`
	Username     string `json:"username" bson:"username"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"passwordHash" bson:"passwordHash"`
	Role         string `json:"role" bson:"role"`
	CreatedAt    string `json:"createdAt" bson:"createdAt"`
	LastLogin    string `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"`
}

// PublicUser is the credential-free view returned by the login endpoint.
type PublicUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
	LastLogin string `json:"lastLogin,omitempty"`
}

// Public strips the password hash from an AdminUser.
func (u *AdminUser) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}
